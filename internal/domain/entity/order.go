package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Métodos y estados de pago.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	// PaymentStatusRefundPending pago cobrado cuyo pedido no pudo cumplirse.
	PaymentStatusRefundPending = "refund_pending"
)

// orderTransitions: pending → confirmed → processing → shipped → delivered;
// cancelled solo desde pending o confirmed.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition indica si el pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus valida el nombre del estado.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Address dirección de envío o facturación.
type Address struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerInfo datos de contacto congelados en el pedido.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TaxBreakdown reparto del GST incluido en el total del pedido.
type TaxBreakdown struct {
	BaseAmount decimal.Decimal `json:"base_amount"`
	TotalGST   decimal.Decimal `json:"total_gst"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	IGST       decimal.Decimal `json:"igst"`
	CGSTRate   decimal.Decimal `json:"cgst_rate"`
	SGSTRate   decimal.Decimal `json:"sgst_rate"`
	IGSTRate   decimal.Decimal `json:"igst_rate"`
}

// Order instantánea inmutable del pedido al momento de crearse.
type Order struct {
	ID               string
	Number           string
	UserID           string
	Customer         CustomerInfo
	ShippingAddress  Address
	BillingAddress   Address
	Items            []OrderItem
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	CouponCode       string
	ShippingCost     decimal.Decimal
	Total            decimal.Decimal
	Tax              TaxBreakdown
	PaymentMethod    string
	PaymentStatus    string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem copia congelada de una línea del carrito.
type OrderItem struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	GSTPercent decimal.Decimal `json:"gst_percent"`
	LineTotal  decimal.Decimal `json:"line_total"`
}
