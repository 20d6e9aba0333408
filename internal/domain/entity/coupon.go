package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cupón.
const (
	CouponFlat    = "flat"
	CouponPercent = "percent"
)

// Coupon reglas de un código de descuento. Solo el servidor las conoce;
// el cliente recibe el monto resuelto.
type Coupon struct {
	ID            string
	Code          string
	Type          string          // flat | percent
	Value         decimal.Decimal // monto fijo o porcentaje
	MinOrderTotal decimal.Decimal
	MaxDiscount   decimal.Decimal // cero = sin tope (solo percent)
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	Active        bool
	UsageLimit    int // cero = ilimitado
	UsedCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
