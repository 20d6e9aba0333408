// Package coupon valida códigos de descuento con las reglas del servidor.
package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CouponUseCase validación y administración de cupones.
type CouponUseCase struct {
	repo repository.CouponRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewCouponUseCase construye el caso de uso.
func NewCouponUseCase(repo repository.CouponRepository, log zerolog.Logger) *CouponUseCase {
	return &CouponUseCase{repo: repo, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *CouponUseCase) WithClock(now func() time.Time) *CouponUseCase {
	uc.now = now
	return uc
}

// NormalizeCode los códigos se comparan en mayúsculas y sin espacios.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate resuelve el código a un monto de descuento para orderTotal.
// Los rechazos envuelven domain.ErrCouponInvalid con un mensaje para el cliente.
func (uc *CouponUseCase) Validate(ctx context.Context, in dto.ValidateCouponRequest) (*dto.CouponDTO, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: ingresa un código", domain.ErrCouponInvalid)
	}
	if !in.OrderTotal.IsPositive() {
		return nil, fmt.Errorf("%w: el total del pedido debe ser mayor a cero", domain.ErrCouponInvalid)
	}
	c, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	amount, err := uc.discountFor(c, in.OrderTotal)
	if err != nil {
		uc.log.Info().Str("code", code).Err(err).Msg("cupón rechazado")
		return nil, err
	}
	return &dto.CouponDTO{Code: code, DiscountAmount: amount}, nil
}

func (uc *CouponUseCase) discountFor(c *entity.Coupon, total decimal.Decimal) (decimal.Decimal, error) {
	if c == nil || !c.Active {
		return decimal.Zero, fmt.Errorf("%w: el código no existe", domain.ErrCouponInvalid)
	}
	now := uc.now()
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return decimal.Zero, fmt.Errorf("%w: el código aún no está vigente", domain.ErrCouponInvalid)
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return decimal.Zero, fmt.Errorf("%w: el código expiró", domain.ErrCouponInvalid)
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return decimal.Zero, fmt.Errorf("%w: el código alcanzó su límite de usos", domain.ErrCouponInvalid)
	}
	if total.LessThan(c.MinOrderTotal) {
		return decimal.Zero, fmt.Errorf("%w: pedido mínimo de %s", domain.ErrCouponInvalid, c.MinOrderTotal.StringFixed(2))
	}

	var amount decimal.Decimal
	switch c.Type {
	case entity.CouponPercent:
		amount = total.Mul(c.Value).Div(hundred)
		if c.MaxDiscount.IsPositive() && amount.GreaterThan(c.MaxDiscount) {
			amount = c.MaxDiscount
		}
	default:
		amount = c.Value
	}
	if amount.GreaterThan(total) {
		amount = total
	}
	return amount.Round(2), nil
}

// Create registra un cupón (admin).
func (uc *CouponUseCase) Create(ctx context.Context, in dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: el código es obligatorio", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.CouponFlat:
	case entity.CouponPercent:
		if in.Value.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: el porcentaje no puede superar 100", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de cupón %q", domain.ErrInvalidInput, in.Type)
	}
	if !in.Value.IsPositive() {
		return nil, fmt.Errorf("%w: el valor debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.MinOrderTotal.IsNegative() || in.MaxDiscount.IsNegative() || in.UsageLimit < 0 {
		return nil, fmt.Errorf("%w: límites negativos", domain.ErrInvalidInput)
	}
	if in.ValidFrom != nil && in.ValidUntil != nil && in.ValidUntil.Before(*in.ValidFrom) {
		return nil, fmt.Errorf("%w: validUntil anterior a validFrom", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now()
	c := &entity.Coupon{
		ID:            uuid.New().String(),
		Code:          code,
		Type:          in.Type,
		Value:         in.Value,
		MinOrderTotal: in.MinOrderTotal,
		MaxDiscount:   in.MaxDiscount,
		ValidFrom:     in.ValidFrom,
		ValidUntil:    in.ValidUntil,
		Active:        active,
		UsageLimit:    in.UsageLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCouponResponse(c), nil
}

// List lista cupones (admin).
func (uc *CouponUseCase) List(ctx context.Context, limit, offset int) ([]dto.CouponResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CouponResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCouponResponse(c))
	}
	return out, nil
}

func toCouponResponse(c *entity.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		Type:          c.Type,
		Value:         c.Value,
		MinOrderTotal: c.MinOrderTotal,
		MaxDiscount:   c.MaxDiscount,
		ValidFrom:     c.ValidFrom,
		ValidUntil:    c.ValidUntil,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		Active:        c.Active,
	}
}
