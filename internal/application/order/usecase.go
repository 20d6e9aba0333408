// Package order crea pedidos a partir del checkout y administra su ciclo de vida.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
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

// Deps dependencias del caso de uso de pedidos.
type Deps struct {
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Tx       CheckoutTxRunner
	Coupons  CouponValidator
	Payments PaymentVerifier
	PDF      InvoicePDFGenerator
	Options  domaincart.Options
	Store    StoreInfo
}

// OrderUseCase checkout y gestión de pedidos.
type OrderUseCase struct {
	Deps
	log zerolog.Logger
	now func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(deps Deps, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{Deps: deps, log: log, now: time.Now}
}

// NewOrderNumber número visible del pedido, ordenable por fecha de creación.
func NewOrderNumber() string {
	return "ORD-" + ulid.Make().String()
}

// Create valida el checkout, congela precios y líneas y persiste el pedido.
// En una sola transacción descuenta stock, guarda el pedido, suma el uso del
// cupón y vacía el carrito: si algo falla no queda nada a medias.
//
// Un pago online verificado cuyo pedido no puede cumplirse (sin stock, monto
// distinto al total) queda registrado como pedido cancelado con pago
// refund_pending para que un admin lo reembolse.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	online := in.PaymentMethod == entity.PaymentMethodOnline
	if online {
		if uc.Payments == nil {
			return nil, fmt.Errorf("%w: pagos online no configurados", domain.ErrPaymentVerification)
		}
		if err := uc.Payments.Verify(ctx, dto.VerifyPaymentRequest{
			RazorpayOrderID:   in.RazorpayOrderID,
			RazorpayPaymentID: in.RazorpayPaymentID,
			RazorpaySignature: in.RazorpaySignature,
		}); err != nil {
			return nil, err
		}
	}

	o, err := uc.build(ctx, userID, in)
	if err != nil {
		if online {
			return nil, uc.holdPayment(ctx, userID, in, nil, err)
		}
		return nil, err
	}
	if online {
		if err := uc.Payments.CheckAmount(ctx, in.RazorpayOrderID, o.Total); err != nil {
			return nil, uc.holdPayment(ctx, userID, in, o, err)
		}
		o.PaymentStatus = entity.PaymentStatusCompleted
	}

	err = uc.Tx.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
		couponRepo repository.CouponRepository,
	) error {
		for _, it := range o.Items {
			if err := productRepo.DecrementStock(ctx, it.ProductID, it.Color, it.Size, it.Quantity); err != nil {
				return fmt.Errorf("%s (%s/%s): %w", it.Name, it.Color, it.Size, err)
			}
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("guardar pedido: %w", err)
		}
		if o.CouponCode != "" {
			if err := couponRepo.IncrementUsage(ctx, o.CouponCode); err != nil {
				return fmt.Errorf("registrar uso del cupón: %w", err)
			}
		}
		return cartRepo.ClearByUser(ctx, userID)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user", userID).Str("payment_method", o.PaymentMethod).Msg("checkout fallido")
		if online && !errors.Is(err, domain.ErrConflict) {
			return nil, uc.holdPayment(ctx, userID, in, o, err)
		}
		return nil, err
	}

	uc.log.Info().
		Str("order", o.Number).
		Str("payment_method", o.PaymentMethod).
		Str("total", o.Total.StringFixed(2)).
		Msg("pedido creado")
	return ToOrderResponse(o), nil
}

// Quote calcula líneas y totales del checkout con precios y stock actuales,
// sin reservar nada. El cliente lo usa como monto de la pasarela antes de
// abrir el pago.
func (uc *OrderUseCase) Quote(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.CheckoutQuoteResponse, error) {
	if err := validateForm(in); err != nil {
		return nil, err
	}
	o, err := uc.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutQuoteResponse{
		Items:        o.Items,
		Subtotal:     o.Subtotal,
		Discount:     o.Discount,
		CouponCode:   o.CouponCode,
		ShippingCost: o.ShippingCost,
		Total:        o.Total,
		Tax:          o.Tax,
	}, nil
}

// build resuelve cada línea contra el catálogo (precio de variante, stock,
// GST), aplica el cupón y agrega totales. No escribe nada.
func (uc *OrderUseCase) build(ctx context.Context, userID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	orderID := uuid.New().String()
	lines := make([]entity.CartLine, 0, len(in.Items))
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p, err := uc.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		r := variation.Resolve(p.Pricing.FinalInvoiceValue, p.Variations, it.SelectedColor, it.SelectedSize)
		if err := variation.CheckAddToCart(r, it.Quantity); err != nil {
			return nil, fmt.Errorf("%s (%s/%s): %w", p.Name, it.SelectedColor, it.SelectedSize, err)
		}
		rate, ok := pricing.ParseGSTPercent(p.GSTPercent)
		var gst *decimal.Decimal
		if ok && p.GSTPercent != "" {
			gst = &rate
		} else {
			rate = uc.Options.GSTFallback()
		}
		line := entity.CartLine{
			ProductID:     p.ID,
			ProductName:   p.Name,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
			Quantity:      it.Quantity,
			UnitPrice:     r.UnitPrice,
			GSTPercent:    gst,
		}
		lines = append(lines, line)
		item := entity.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			ProductID:  p.ID,
			Name:       p.Name,
			Color:      it.SelectedColor,
			Size:       it.SelectedSize,
			Quantity:   it.Quantity,
			UnitPrice:  r.UnitPrice,
			GSTPercent: rate,
			LineTotal:  line.LineTotal(),
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		items = append(items, item)
	}

	discount := decimal.Zero
	couponCode := strings.ToUpper(strings.TrimSpace(in.CouponCode))
	if couponCode != "" {
		if uc.Coupons == nil {
			return nil, domain.ErrCouponInvalid
		}
		var subtotal decimal.Decimal
		for _, l := range lines {
			subtotal = subtotal.Add(l.LineTotal())
		}
		c, err := uc.Coupons.Validate(ctx, dto.ValidateCouponRequest{Code: couponCode, OrderTotal: subtotal})
		if err != nil {
			return nil, err
		}
		discount = c.DiscountAmount
	}

	totals := domaincart.Aggregate(lines, discount, in.ShippingAddress.State, uc.Options)
	o := uc.header(orderID, userID, in)
	o.Items = items
	o.Subtotal = totals.Subtotal
	o.Discount = totals.Discount
	o.CouponCode = couponCode
	o.ShippingCost = totals.ShippingCost
	o.Total = totals.FinalTotal
	o.Tax = totals.TaxBreakdown()
	return o, nil
}

// header cabecera del pedido sin líneas ni totales.
func (uc *OrderUseCase) header(orderID, userID string, in dto.CreateOrderRequest) *entity.Order {
	billing := in.ShippingAddress
	if in.BillingAddress != nil {
		billing = *in.BillingAddress
	}
	now := uc.now()
	return &entity.Order{
		ID:               orderID,
		Number:           NewOrderNumber(),
		UserID:           userID,
		Customer:         in.Customer,
		ShippingAddress:  in.ShippingAddress,
		BillingAddress:   billing,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    entity.PaymentStatusPending,
		GatewayOrderID:   in.RazorpayOrderID,
		GatewayPaymentID: in.RazorpayPaymentID,
		Status:           entity.OrderStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// holdPayment deja constancia de un pago verificado que no se convirtió en
// pedido: se guarda cancelado con pago refund_pending, sin tocar stock,
// cupón ni carrito. Devuelve la causa original para el cliente.
func (uc *OrderUseCase) holdPayment(ctx context.Context, userID string, in dto.CreateOrderRequest, o *entity.Order, cause error) error {
	if o == nil {
		o = uc.header(uuid.New().String(), userID, in)
	}
	o.Status = entity.OrderStatusCancelled
	o.PaymentStatus = entity.PaymentStatusRefundPending

	err := uc.Tx.RunCheckout(ctx, func(
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.CartRepository,
		_ repository.CouponRepository,
	) error {
		return orderRepo.Create(ctx, o)
	})
	if errors.Is(err, domain.ErrConflict) {
		return err
	}
	if err != nil {
		uc.log.Error().Err(err).
			Str("payment", in.RazorpayPaymentID).
			AnErr("cause", cause).
			Msg("no se pudo registrar el pago pendiente de reembolso")
		return cause
	}
	uc.log.Warn().
		Str("order", o.Number).
		Str("payment", in.RazorpayPaymentID).
		AnErr("cause", cause).
		Msg("pago verificado sin pedido: pendiente de reembolso")
	return fmt.Errorf("%w (pago %s pendiente de reembolso)", cause, in.RazorpayPaymentID)
}

// Get devuelve un pedido. Un cliente solo ve los suyos.
func (uc *OrderUseCase) Get(ctx context.Context, userID, role, id string) (*dto.OrderResponse, error) {
	o, err := uc.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && o.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// ListMine pedidos del cliente, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	return uc.List(ctx, repository.OrderFilter{UserID: userID, Limit: page.Limit, Offset: page.Offset})
}

// List listado de pedidos con filtros (admin).
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Status != "" && !entity.IsValidOrderStatus(filter.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, filter.Status)
	}
	list, err := uc.Orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// UpdateStatus avanza el estado del pedido según la tabla de transiciones.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	o, err := uc.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(o.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, status)
	}
	prev := o.Status
	o.Status = status
	o.UpdatedAt = uc.now()
	if err := uc.Orders.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", o.Number).Str("from", prev).Str("to", status).Msg("estado de pedido actualizado")
	return ToOrderResponse(o), nil
}

// InvoicePDF genera la factura del pedido con los valores guardados.
func (uc *OrderUseCase) InvoicePDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	o, err := uc.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.PDF.GenerateOrderInvoice(ctx, o, uc.Store)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", o.Number), nil
}

// ToOrderResponse proyecta el pedido al DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		Number:           o.Number,
		Customer:         o.Customer,
		ShippingAddress:  o.ShippingAddress,
		BillingAddress:   o.BillingAddress,
		Items:            items,
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		CouponCode:       o.CouponCode,
		ShippingCost:     o.ShippingCost,
		Total:            o.Total,
		Tax:              o.Tax,
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    o.PaymentStatus,
		GatewayPaymentID: o.GatewayPaymentID,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
