package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

// CheckoutTxRunner ejecuta el checkout (stock, pedido, cupón, carrito) en una sola transacción.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
		couponRepo repository.CouponRepository,
	) error) error
}

// CouponValidator resuelve un código a monto de descuento.
type CouponValidator interface {
	Validate(ctx context.Context, in dto.ValidateCouponRequest) (*dto.CouponDTO, error)
}

// PaymentVerifier verifica la firma de un pago online y que el monto cobrado
// por la pasarela sea el total calculado por el servidor.
type PaymentVerifier interface {
	Verify(ctx context.Context, in dto.VerifyPaymentRequest) error
	CheckAmount(ctx context.Context, gatewayOrderID string, total decimal.Decimal) error
}

// StoreInfo datos del vendedor impresos en la factura.
type StoreInfo struct {
	Name    string
	Address string
	GSTIN   string
}

// InvoicePDFGenerator genera la factura del pedido en PDF.
type InvoicePDFGenerator interface {
	GenerateOrderInvoice(ctx context.Context, order *entity.Order, store StoreInfo) ([]byte, error)
}
