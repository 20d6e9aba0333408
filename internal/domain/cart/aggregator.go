// Package cart calcula los totales del carrito y el reparto del GST.
//
// Los precios unitarios ya incluyen GST, así que el impuesto se obtiene hacia
// atrás por línea. Si el comprador está en el mismo estado que el vendedor el
// GST se divide en CGST + SGST; si no, todo es IGST.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// Valores por defecto de la tienda.
const (
	DefaultSellerState = "Gujarat"
	DefaultGSTPercent  = 18
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// Options parámetros de la tienda para el cálculo.
// Los campos en cero se consideran sin configurar y toman los valores de DefaultOptions.
type Options struct {
	SellerState       string
	DefaultGSTPercent decimal.Decimal // mayor que 0; config lo valida
	ShippingCost      decimal.Decimal // envío gratis: cero
}

// DefaultOptions Gujarat, 18% y envío gratis.
func DefaultOptions() Options {
	return Options{
		SellerState:       DefaultSellerState,
		DefaultGSTPercent: decimal.NewFromInt(DefaultGSTPercent),
		ShippingCost:      decimal.Zero,
	}
}

// GSTFallback tasa para líneas sin GST propio.
func (o Options) GSTFallback() decimal.Decimal {
	if o.DefaultGSTPercent.IsPositive() {
		return o.DefaultGSTPercent
	}
	return decimal.NewFromInt(DefaultGSTPercent)
}

// Totals resumen del carrito.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	BaseAmount   decimal.Decimal `json:"base_amount"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	AvgGSTRate   decimal.Decimal `json:"avg_gst_rate"`
	IntraState   bool            `json:"intra_state"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
	FinalTotal   decimal.Decimal `json:"final_total"`
	ItemCount    int             `json:"item_count"`
}

// TaxBreakdown proyección para guardar en el pedido.
func (t Totals) TaxBreakdown() entity.TaxBreakdown {
	return entity.TaxBreakdown{
		BaseAmount: t.BaseAmount,
		TotalGST:   t.TotalGST,
		CGST:       t.CGST,
		SGST:       t.SGST,
		IGST:       t.IGST,
		CGSTRate:   t.CGSTRate,
		SGSTRate:   t.SGSTRate,
		IGSTRate:   t.IGSTRate,
	}
}

// SameState compara nombres de estado sin importar mayúsculas ni espacios.
func SameState(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	// Un Caser guarda estado: uno nuevo por llamada.
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Aggregate suma las líneas, aplica el descuento y reparte el GST.
func Aggregate(lines []entity.CartLine, discountAmount decimal.Decimal, buyerState string, opts Options) Totals {
	if opts.SellerState == "" {
		opts.SellerState = DefaultSellerState
	}
	opts.DefaultGSTPercent = opts.GSTFallback()

	var subtotal, totalGST, weightedRate decimal.Decimal
	qty := 0
	for _, l := range lines {
		lineTotal := l.LineTotal()
		rate := opts.DefaultGSTPercent
		if l.GSTPercent != nil {
			rate = *l.GSTPercent
		}
		base := lineTotal.Div(decimal.NewFromInt(1).Add(rate.Div(hundred)))
		subtotal = subtotal.Add(lineTotal)
		totalGST = totalGST.Add(lineTotal.Sub(base))
		weightedRate = weightedRate.Add(rate.Mul(decimal.NewFromInt(int64(l.Quantity))))
		qty += l.Quantity
	}

	avgRate := opts.DefaultGSTPercent
	if qty > 0 {
		avgRate = weightedRate.Div(decimal.NewFromInt(int64(qty)))
	}

	t := Totals{
		Subtotal:     subtotal,
		Discount:     discountAmount,
		ShippingCost: opts.ShippingCost,
		BaseAmount:   subtotal.Sub(totalGST),
		TotalGST:     totalGST,
		AvgGSTRate:   avgRate,
		FinalTotal:   subtotal.Sub(discountAmount).Add(opts.ShippingCost),
		ItemCount:    qty,
	}
	if SameState(buyerState, opts.SellerState) {
		t.IntraState = true
		// Mul es exacto en decimal; Div redondearía y CGST+SGST podría no cuadrar.
		t.CGST = totalGST.Mul(half)
		t.SGST = t.CGST
		t.CGSTRate = avgRate.Mul(half)
		t.SGSTRate = t.CGSTRate
	} else {
		t.IGST = totalGST
		t.IGSTRate = avgRate
	}
	return t
}
