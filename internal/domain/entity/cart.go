package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine línea del carrito de un usuario. UnitPrice se resuelve al agregar
// (FinalInvoiceValue + PriceModifier de la variación) y no se actualiza si el
// producto cambia de precio; el checkout recalcula con el precio vigente.
type CartLine struct {
	ID            string
	UserID        string
	ProductID     string
	ProductName   string
	Image         string
	SelectedColor string
	SelectedSize  string
	Quantity      int
	UnitPrice     decimal.Decimal
	GSTPercent    *decimal.Decimal // nil = tasa por defecto (18%)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineTotal devuelve UnitPrice * Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
