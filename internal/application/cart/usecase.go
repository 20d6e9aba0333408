// Package cart implementa el carrito del lado servidor (/api/cart).
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	domaincart "github.com/jhoicas/Storefront-api/internal/domain/cart"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/pricing"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
	"github.com/jhoicas/Storefront-api/internal/domain/variation"
)

// CartUseCase operaciones sobre el carrito de un cliente.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	opts     domaincart.Options
	log      zerolog.Logger
}

// NewCartUseCase construye el caso de uso con las opciones fiscales de la tienda.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository, opts domaincart.Options, log zerolog.Logger) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, opts: opts, log: log}
}

// Get devuelve las líneas del carrito.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	lines, err := uc.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CartLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, toLineDTO(l))
	}
	return &dto.CartResponse{Success: true, Cart: out}, nil
}

// Add agrega la selección al carrito. Si ya existe una línea con el mismo
// producto, color y talla se suman las cantidades, sin pasar del stock.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	p, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	r := variation.Resolve(p.Pricing.FinalInvoiceValue, p.Variations, in.SelectedColor, in.SelectedSize)
	if err := variation.CheckAddToCart(r, in.Quantity); err != nil {
		return nil, err
	}

	existing, err := uc.carts.FindLine(ctx, userID, p.ID, in.SelectedColor, in.SelectedSize)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		qty := existing.Quantity + in.Quantity
		if qty > r.Stock {
			uc.log.Debug().Str("line", existing.ID).Int("requested", qty).Int("stock", r.Stock).Msg("cantidad recortada al stock")
			qty = r.Stock
		}
		if err := uc.carts.UpdateQuantity(ctx, userID, existing.ID, qty); err != nil {
			return nil, err
		}
		return uc.Get(ctx, userID)
	}

	now := time.Now()
	line := &entity.CartLine{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProductID:     p.ID,
		ProductName:   p.Name,
		SelectedColor: in.SelectedColor,
		SelectedSize:  in.SelectedSize,
		Quantity:      in.Quantity,
		UnitPrice:     r.UnitPrice,
		GSTPercent:    productGST(p),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if len(p.Images) > 0 {
		line.Image = p.Images[0]
	}
	if err := uc.carts.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// UpdateQuantity cambia la cantidad de una línea; se recorta al stock actual.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID string, in dto.UpdateCartRequest) (*dto.CartResponse, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	line, err := uc.carts.GetLine(ctx, userID, in.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.products.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	r := variation.Resolve(p.Pricing.FinalInvoiceValue, p.Variations, line.SelectedColor, line.SelectedSize)
	if r.Stock <= 0 {
		return nil, fmt.Errorf("%w: la combinación elegida no tiene stock", domain.ErrOutOfStock)
	}
	qty := in.Quantity
	if qty > r.Stock {
		qty = r.Stock
	}
	if err := uc.carts.UpdateQuantity(ctx, userID, line.ID, qty); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// Remove elimina una línea.
func (uc *CartUseCase) Remove(ctx context.Context, userID, lineID string) (*dto.CartResponse, error) {
	if lineID == "" {
		return nil, fmt.Errorf("%w: lineId es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.carts.DeleteLine(ctx, userID, lineID); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.carts.ClearByUser(ctx, userID)
}

// Totals calcula subtotal, reparto de GST y total final.
func (uc *CartUseCase) Totals(ctx context.Context, userID, buyerState string, discount decimal.Decimal) (*dto.CartTotalsResponse, error) {
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	lines, err := uc.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	vals := make([]entity.CartLine, 0, len(lines))
	for _, l := range lines {
		vals = append(vals, *l)
	}
	t := domaincart.Aggregate(vals, discount, buyerState, uc.opts)
	return &dto.CartTotalsResponse{Success: true, Totals: ToTotalsDTO(t)}, nil
}

// ToTotalsDTO proyecta los totales del agregador al DTO.
func ToTotalsDTO(t domaincart.Totals) dto.CartTotalsDTO {
	return dto.CartTotalsDTO{
		Subtotal:     t.Subtotal,
		Discount:     t.Discount,
		ShippingCost: t.ShippingCost,
		BaseAmount:   t.BaseAmount,
		TotalGST:     t.TotalGST,
		AvgGSTRate:   t.AvgGSTRate,
		IntraState:   t.IntraState,
		CGST:         t.CGST,
		SGST:         t.SGST,
		IGST:         t.IGST,
		CGSTRate:     t.CGSTRate,
		SGSTRate:     t.SGSTRate,
		IGSTRate:     t.IGSTRate,
		FinalTotal:   t.FinalTotal,
		DisplayTotal: pricing.RoundTotalPrice(t.FinalTotal),
		ItemCount:    t.ItemCount,
	}
}

// productGST tasa del producto para la línea; nil si no tiene (usa la de la tienda).
func productGST(p *entity.Product) *decimal.Decimal {
	if p.GSTPercent == "" {
		return nil
	}
	rate, ok := pricing.ParseGSTPercent(p.GSTPercent)
	if !ok {
		return nil
	}
	return &rate
}

func toLineDTO(l *entity.CartLine) dto.CartLineDTO {
	return dto.CartLineDTO{
		ID:            l.ID,
		ProductID:     l.ProductID,
		ProductName:   l.ProductName,
		Image:         l.Image,
		SelectedColor: l.SelectedColor,
		SelectedSize:  l.SelectedSize,
		Quantity:      l.Quantity,
		UnitPrice:     l.UnitPrice,
		GSTPercent:    l.GSTPercent,
		LineTotal:     l.LineTotal(),
	}
}
