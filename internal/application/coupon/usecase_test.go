package coupon_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/application/coupon"
	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

type fakeCoupons map[string]*entity.Coupon

func (f fakeCoupons) Create(_ context.Context, c *entity.Coupon) error {
	f[c.Code] = c
	return nil
}
func (f fakeCoupons) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	return f[code], nil
}
func (f fakeCoupons) List(context.Context, int, int) ([]*entity.Coupon, error) {
	out := make([]*entity.Coupon, 0, len(f))
	for _, c := range f {
		out = append(out, c)
	}
	return out, nil
}
func (f fakeCoupons) IncrementUsage(_ context.Context, code string) error {
	f[code].UsedCount++
	return nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newUC(repo fakeCoupons) *coupon.CouponUseCase {
	return coupon.NewCouponUseCase(repo, zerolog.Nop()).WithClock(func() time.Time { return now })
}

func TestValidate(t *testing.T) {
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)
	repo := fakeCoupons{
		"FLAT200":  {Code: "FLAT200", Type: entity.CouponFlat, Value: d("200"), Active: true},
		"DIWALI10": {Code: "DIWALI10", Type: entity.CouponPercent, Value: d("10"), MaxDiscount: d("500"), MinOrderTotal: d("1000"), Active: true},
		"OFF":      {Code: "OFF", Type: entity.CouponFlat, Value: d("50"), Active: false},
		"OLD":      {Code: "OLD", Type: entity.CouponFlat, Value: d("50"), Active: true, ValidUntil: &past},
		"SOON":     {Code: "SOON", Type: entity.CouponFlat, Value: d("50"), Active: true, ValidFrom: &future},
		"USED":     {Code: "USED", Type: entity.CouponFlat, Value: d("50"), Active: true, UsageLimit: 1, UsedCount: 1},
	}
	uc := newUC(repo)

	tests := []struct {
		name  string
		code  string
		total string
		want  string
		err   error
	}{
		{"flat", " flat200 ", "1000", "200", nil},
		{"flat no supera el total", "FLAT200", "150", "150", nil},
		{"porcentaje", "DIWALI10", "2000", "200", nil},
		{"porcentaje con tope", "DIWALI10", "9000", "500", nil},
		{"bajo el mínimo", "DIWALI10", "999", "", domain.ErrCouponInvalid},
		{"inexistente", "NOPE", "1000", "", domain.ErrCouponInvalid},
		{"inactivo", "OFF", "1000", "", domain.ErrCouponInvalid},
		{"expirado", "OLD", "1000", "", domain.ErrCouponInvalid},
		{"no vigente", "SOON", "1000", "", domain.ErrCouponInvalid},
		{"sin usos", "USED", "1000", "", domain.ErrCouponInvalid},
		{"total cero", "FLAT200", "0", "", domain.ErrCouponInvalid},
		{"vacío", "", "1000", "", domain.ErrCouponInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Validate(context.Background(), dto.ValidateCouponRequest{Code: tt.code, OrderTotal: d(tt.total)})
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, out.DiscountAmount.Equal(d(tt.want)), "descuento %s", out.DiscountAmount)
		})
	}
}

func TestCreate(t *testing.T) {
	repo := fakeCoupons{}
	uc := newUC(repo)
	out, err := uc.Create(context.Background(), dto.CreateCouponRequest{Code: "welcome", Type: entity.CouponPercent, Value: d("15")})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", out.Code)
	assert.True(t, out.Active)

	_, err = uc.Create(context.Background(), dto.CreateCouponRequest{Code: "WELCOME", Type: entity.CouponFlat, Value: d("1")})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(context.Background(), dto.CreateCouponRequest{Code: "X", Type: entity.CouponPercent, Value: d("101")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(context.Background(), dto.CreateCouponRequest{Code: "Y", Type: "bogo", Value: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
