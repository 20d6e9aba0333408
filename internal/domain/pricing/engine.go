// Package pricing deriva el precio final de una prenda a partir de sus costos.
//
//	costo puesto   = compra + transporte + otros
//	precio s/GST   = costo puesto * (1 + utilidad/100)
//	valor gravable = precio s/GST - descuento
//	valor factura  = valor gravable * (1 + GST/100)
//
// Los valores intermedios no se redondean; RoundTotalPrice se aplica solo al mostrar.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Costs costos de adquisición de la prenda. Los campos vacíos valen cero.
type Costs struct {
	PurchasePrice decimal.Decimal
	TransportCost decimal.Decimal
	OtherCost     decimal.Decimal
}

// Result derivación completa del precio.
type Result struct {
	LandedCost            decimal.Decimal
	SellingPriceBeforeGST decimal.Decimal
	TaxableValue          decimal.Decimal
	GSTRate               decimal.Decimal
	FinalInvoiceValue     decimal.Decimal
	DiscountLabel         string
}

// Recalc recalcula todos los campos derivados desde los valores actuales.
// Es una función pura: no guarda estado entre llamadas.
func Recalc(costs Costs, profitPercent, discountAmount, gstPercent decimal.Decimal) Result {
	landed := costs.PurchasePrice.Add(costs.TransportCost).Add(costs.OtherCost)
	selling := landed.Mul(one.Add(profitPercent.Div(hundred)))
	taxable := selling.Sub(discountAmount)
	final := taxable.Mul(one.Add(gstPercent.Div(hundred)))

	return Result{
		LandedCost:            landed,
		SellingPriceBeforeGST: selling,
		TaxableValue:          taxable,
		GSTRate:               gstPercent,
		FinalInvoiceValue:     final,
		DiscountLabel:         DiscountLabel(discountAmount, selling),
	}
}

// DiscountLabel devuelve "N% OFF" con un decimal, o "" si no hay descuento.
func DiscountLabel(discountAmount, sellingPriceBeforeGST decimal.Decimal) string {
	if !discountAmount.IsPositive() || !sellingPriceBeforeGST.IsPositive() {
		return ""
	}
	pct := discountAmount.Div(sellingPriceBeforeGST).Mul(hundred).Round(1)
	return pct.String() + "% OFF"
}

// RoundTotalPrice redondeo para el cliente: si no hay parte fraccionaria se
// deja igual, si la hay se sube a la siguiente unidad.
func RoundTotalPrice(x decimal.Decimal) decimal.Decimal {
	floor := x.Floor()
	if x.Equal(floor) {
		return floor
	}
	return x.Ceil()
}

// ParseGSTPercent interpreta "5%", "12", " 18 % ". Un valor vacío vale cero.
// Si el texto no es un número válido (o es negativo) devuelve cero y ok=false
// para que el llamador registre la advertencia en lugar de propagar basura.
func ParseGSTPercent(s string) (rate decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// FormatGSTPercent inverso de ParseGSTPercent: 5 -> "5%".
func FormatGSTPercent(rate decimal.Decimal) string {
	return rate.String() + "%"
}
