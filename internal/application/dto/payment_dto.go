package dto

import "github.com/shopspring/decimal"

// CreatePaymentOrderRequest body de POST /api/payment/create-order.
// Amount en rupias; la pasarela recibe paise.
type CreatePaymentOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

// GatewayOrderDTO orden creada en la pasarela.
type GatewayOrderDTO struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreatePaymentOrderResponse {order, razorpayKeyId}.
type CreatePaymentOrderResponse struct {
	Order         GatewayOrderDTO `json:"order"`
	RazorpayKeyID string          `json:"razorpayKeyId"`
}

// VerifyPaymentRequest body de POST /api/payment/verify.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPaymentResponse resultado de la verificación.
type VerifyPaymentResponse struct {
	Success  bool `json:"success"`
	Verified bool `json:"verified"`
}
