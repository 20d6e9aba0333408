// Package storefront es el estado de aplicación del cliente de la tienda:
// carrito, cupón aplicado, lista de deseos y el flujo de checkout. Sustituye
// al estado global del frontend por una sesión explícita e inyectable.
package storefront

import (
	"context"
	"errors"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// Errores propios de la sesión. Los de validación y pago reutilizan los de dominio.
var (
	ErrBusy             = errors.New("storefront: operación en curso")
	ErrPaymentDismissed = errors.New("storefront: pago cancelado por el usuario")
	ErrNotInitialized   = errors.New("storefront: sesión no inicializada")
)

// API endpoints JSON del backend que consume la sesión.
type API interface {
	GetCart(ctx context.Context) ([]dto.CartLineDTO, error)
	AddToCart(ctx context.Context, in dto.AddToCartRequest) error
	UpdateCart(ctx context.Context, in dto.UpdateCartRequest) error
	RemoveFromCart(ctx context.Context, lineID string) error
	ValidateCoupon(ctx context.Context, in dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)
	QuoteOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.CheckoutQuoteResponse, error)
	CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error)
	CreatePaymentOrder(ctx context.Context, in dto.CreatePaymentOrderRequest) (*dto.CreatePaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, in dto.VerifyPaymentRequest) error
}

// WidgetRequest datos para abrir el widget de pago.
type WidgetRequest struct {
	KeyID    string
	Order    dto.GatewayOrderDTO
	Customer entity.CustomerInfo
}

// WidgetResult lo que el widget entrega en el callback de éxito.
type WidgetResult struct {
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentWidget widget de la pasarela. Open bloquea hasta que el usuario paga
// o cierra el widget; el cierre se informa con ErrPaymentDismissed.
type PaymentWidget interface {
	Open(ctx context.Context, in WidgetRequest) (*WidgetResult, error)
}

// WishlistStore almacenamiento local de la lista de deseos.
type WishlistStore interface {
	Load() ([]string, error)
	Save(productIDs []string) error
}

// CheckoutForm datos del formulario de checkout.
type CheckoutForm struct {
	Customer        entity.CustomerInfo
	ShippingAddress entity.Address
	BillingAddress  *entity.Address
	PaymentMethod   string
}
