package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Storefront-api/internal/domain/cart"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

func line(price string, qty int, gst *decimal.Decimal) entity.CartLine {
	return entity.CartLine{UnitPrice: decimal.RequireFromString(price), Quantity: qty, GSTPercent: gst}
}

func rate(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Una línea de 4299 x 2, sin descuento, comprador en Gujarat.
func TestAggregate_MismoEstado(t *testing.T) {
	tot := cart.Aggregate([]entity.CartLine{line("4299", 2, nil)}, decimal.Zero, "Gujarat", cart.DefaultOptions())

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(8598)))
	assert.True(t, tot.FinalTotal.Equal(decimal.NewFromInt(8598)))
	assert.True(t, tot.IntraState)
	assert.True(t, tot.CGST.Equal(tot.SGST))
	assert.True(t, tot.CGST.Add(tot.SGST).Equal(tot.TotalGST))
	assert.True(t, tot.IGST.IsZero())
	assert.True(t, tot.CGSTRate.Equal(decimal.NewFromInt(9)))
	assert.True(t, tot.BaseAmount.Add(tot.TotalGST).Equal(tot.Subtotal))
	// 8598 / 1.18 ≈ 7286.44 => GST ≈ 1311.56
	assert.True(t, tot.TotalGST.Round(2).Equal(decimal.RequireFromString("1311.56")), "gst=%s", tot.TotalGST)
}

func TestAggregate_OtroEstado(t *testing.T) {
	tot := cart.Aggregate([]entity.CartLine{line("1050", 1, rate("5"))}, decimal.Zero, "Maharashtra", cart.DefaultOptions())

	assert.False(t, tot.IntraState)
	assert.True(t, tot.IGST.Equal(tot.TotalGST))
	assert.True(t, tot.CGST.IsZero())
	assert.True(t, tot.SGST.IsZero())
	assert.True(t, tot.IGSTRate.Equal(decimal.NewFromInt(5)))
	assert.True(t, tot.TotalGST.Equal(decimal.NewFromInt(50)), "gst=%s", tot.TotalGST)
}

func TestAggregate_EstadoSinDistinguirMayusculas(t *testing.T) {
	tot := cart.Aggregate([]entity.CartLine{line("118", 1, nil)}, decimal.Zero, "  gujarat ", cart.DefaultOptions())
	assert.True(t, tot.IntraState)
}

func TestAggregate_TasaPromedioPonderada(t *testing.T) {
	lines := []entity.CartLine{
		line("105", 3, rate("5")),
		line("112", 1, rate("12")),
	}
	tot := cart.Aggregate(lines, decimal.Zero, "Delhi", cart.DefaultOptions())
	// (5*3 + 12*1) / 4 = 6.75
	assert.True(t, tot.AvgGSTRate.Equal(decimal.RequireFromString("6.75")), "avg=%s", tot.AvgGSTRate)
	assert.Equal(t, 4, tot.ItemCount)
}

func TestAggregate_SinLineas(t *testing.T) {
	tot := cart.Aggregate(nil, decimal.Zero, "Gujarat", cart.DefaultOptions())
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.AvgGSTRate.Equal(decimal.NewFromInt(18)))
	assert.True(t, tot.CGSTRate.Equal(decimal.NewFromInt(9)))
}

func TestAggregate_DescuentoYEnvio(t *testing.T) {
	opts := cart.DefaultOptions()
	opts.ShippingCost = decimal.NewFromInt(99)
	tot := cart.Aggregate([]entity.CartLine{line("1000", 2, nil)}, decimal.NewFromInt(250), "Goa", opts)
	assert.True(t, tot.FinalTotal.Equal(decimal.NewFromInt(1849)))
	assert.True(t, tot.Discount.Equal(decimal.NewFromInt(250)))
}

func TestAggregate_SubtotalConmutativo(t *testing.T) {
	a := []entity.CartLine{line("4299", 2, nil), line("999.5", 3, rate("5")), line("120", 1, rate("12"))}
	b := []entity.CartLine{a[2], a[0], a[1]}
	ta := cart.Aggregate(a, decimal.Zero, "Gujarat", cart.DefaultOptions())
	tb := cart.Aggregate(b, decimal.Zero, "Gujarat", cart.DefaultOptions())
	assert.True(t, ta.Subtotal.Equal(tb.Subtotal))
	assert.True(t, ta.Subtotal.Equal(decimal.RequireFromString("11716.5")))
}

func TestAggregate_SplitSiempreCuadra(t *testing.T) {
	// Precio que deja un GST con muchos decimales.
	tot := cart.Aggregate([]entity.CartLine{line("333.33", 7, rate("12")), line("77.77", 3, nil)}, decimal.Zero, "Gujarat", cart.DefaultOptions())
	assert.True(t, tot.CGST.Equal(tot.SGST))
	assert.True(t, tot.CGST.Add(tot.SGST).Equal(tot.TotalGST))
}

func TestSameState(t *testing.T) {
	assert.True(t, cart.SameState("GUJARAT", "Gujarat"))
	assert.False(t, cart.SameState("", "Gujarat"))
	assert.False(t, cart.SameState("Gujarat", "Goa"))
}

func TestOptions_GSTFallback(t *testing.T) {
	assert.True(t, cart.Options{}.GSTFallback().Equal(decimal.NewFromInt(18)), "sin configurar usa 18")
	assert.True(t, cart.Options{DefaultGSTPercent: decimal.NewFromInt(5)}.GSTFallback().Equal(decimal.NewFromInt(5)))

	opts := cart.DefaultOptions()
	opts.DefaultGSTPercent = decimal.NewFromInt(12)
	tot := cart.Aggregate([]entity.CartLine{line("1120", 1, nil)}, decimal.Zero, "Gujarat", opts)
	assert.True(t, tot.AvgGSTRate.Equal(decimal.NewFromInt(12)), "rate=%s", tot.AvgGSTRate)
}
