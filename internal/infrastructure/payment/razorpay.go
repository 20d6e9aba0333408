// Package payment adapta la pasarela Razorpay al puerto payment.Gateway.
package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	apppayment "github.com/jhoicas/Storefront-api/internal/application/payment"
)

// orderAPI subconjunto del recurso Order del SDK (sustituible en tests).
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway implementa payment.Gateway.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	orders    orderAPI
}

var _ apppayment.Gateway = (*RazorpayGateway)(nil)

// NewRazorpayGateway construye el adaptador con las credenciales de la cuenta.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{keyID: keyID, keySecret: keySecret, orders: client.Order}
}

// KeyID clave pública que necesita el widget de checkout.
func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder crea la orden en Razorpay. amount en paise.
// El SDK no recibe context; se respeta una cancelación previa a la llamada.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*apppayment.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.keyID == "" || g.keySecret == "" {
		return nil, fmt.Errorf("razorpay: credenciales no configuradas")
	}
	body, err := g.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: crear orden: %w", err)
	}

	out, err := toGatewayOrder(body)
	if err != nil {
		return nil, err
	}
	if out.Amount == 0 {
		out.Amount = amount
	}
	if out.Currency == "" {
		out.Currency = currency
	}
	if out.Receipt == "" {
		out.Receipt = receipt
	}
	return out, nil
}

// FetchOrder consulta la orden en Razorpay; el monto lo fija la pasarela, no el cliente.
func (g *RazorpayGateway) FetchOrder(ctx context.Context, orderID string) (*apppayment.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.keyID == "" || g.keySecret == "" {
		return nil, fmt.Errorf("razorpay: credenciales no configuradas")
	}
	body, err := g.orders.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: consultar orden %s: %w", orderID, err)
	}
	return toGatewayOrder(body)
}

// toGatewayOrder mapea la respuesta del SDK. JSON decodifica números como float64.
func toGatewayOrder(body map[string]interface{}) (*apppayment.GatewayOrder, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay: respuesta sin id de orden")
	}
	out := &apppayment.GatewayOrder{ID: id}
	if a, ok := body["amount"].(float64); ok {
		out.Amount = int64(a)
	}
	out.Currency, _ = body["currency"].(string)
	out.Receipt, _ = body["receipt"].(string)
	out.Status, _ = body["status"].(string)
	return out, nil
}

// VerifySignature valida HMAC-SHA256(order_id|payment_id) con el secreto de la cuenta.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" || g.keySecret == "" {
		return false
	}
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, g.keySecret)
}
