package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// OrderItemRequest línea enviada por el checkout.
type OrderItemRequest struct {
	ProductID     string `json:"productId"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
	Quantity      int    `json:"quantity"`
}

// CreateOrderRequest body de POST /api/orders/create.
// Para pagos online deben venir los tres campos razorpay_*.
type CreateOrderRequest struct {
	Customer          entity.CustomerInfo `json:"customer"`
	ShippingAddress   entity.Address      `json:"shippingAddress"`
	BillingAddress    *entity.Address     `json:"billingAddress,omitempty"`
	Items             []OrderItemRequest  `json:"items"`
	CouponCode        string              `json:"couponCode,omitempty"`
	PaymentMethod     string              `json:"paymentMethod"`
	RazorpayOrderID   string              `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string              `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string              `json:"razorpay_signature,omitempty"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"orderId"`
	Customer         entity.CustomerInfo `json:"customer"`
	ShippingAddress  entity.Address      `json:"shippingAddress"`
	BillingAddress   entity.Address      `json:"billingAddress"`
	Items            []entity.OrderItem  `json:"items"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Discount         decimal.Decimal     `json:"discount"`
	CouponCode       string              `json:"couponCode,omitempty"`
	ShippingCost     decimal.Decimal     `json:"shippingCost"`
	Total            decimal.Decimal     `json:"total"`
	Tax              entity.TaxBreakdown `json:"tax"`
	PaymentMethod    string              `json:"paymentMethod"`
	PaymentStatus    string              `json:"paymentStatus"`
	GatewayPaymentID string              `json:"gatewayPaymentId,omitempty"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// CheckoutQuoteResponse valorización del checkout sin efectos (POST /api/orders/quote).
// Total es el monto que debe cobrar la pasarela.
type CheckoutQuoteResponse struct {
	Items        []entity.OrderItem  `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Discount     decimal.Decimal     `json:"discount"`
	CouponCode   string              `json:"couponCode,omitempty"`
	ShippingCost decimal.Decimal     `json:"shippingCost"`
	Total        decimal.Decimal     `json:"total"`
	Tax          entity.TaxBreakdown `json:"tax"`
}

// CreateOrderResponse {success, order}.
type CreateOrderResponse struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest body de PATCH /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
