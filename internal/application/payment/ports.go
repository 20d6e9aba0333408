package payment

import "context"

// GatewayOrder orden creada en la pasarela. Amount en la unidad menor (paise).
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Gateway puerto hacia la pasarela de pagos (Razorpay en producción).
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
	// FetchOrder lee la orden tal como la registró la pasarela.
	FetchOrder(ctx context.Context, orderID string) (*GatewayOrder, error)
	// VerifySignature comprueba la firma HMAC que devuelve el widget.
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}
