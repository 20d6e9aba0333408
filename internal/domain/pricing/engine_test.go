package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Storefront-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Caso de referencia: compra 100, transporte 15, otros 5, utilidad 20%,
// descuento 7, GST 10%.
func TestRecalc_CasoReferencia(t *testing.T) {
	r := pricing.Recalc(
		pricing.Costs{PurchasePrice: d("100"), TransportCost: d("15"), OtherCost: d("5")},
		d("20"), d("7"), d("10"),
	)

	assert.True(t, r.LandedCost.Equal(d("120")), "landed=%s", r.LandedCost)
	assert.True(t, r.SellingPriceBeforeGST.Equal(d("144")), "selling=%s", r.SellingPriceBeforeGST)
	assert.True(t, r.TaxableValue.Equal(d("137")), "taxable=%s", r.TaxableValue)
	assert.True(t, r.FinalInvoiceValue.Equal(d("150.7")), "final=%s", r.FinalInvoiceValue)
	assert.Equal(t, "4.9% OFF", r.DiscountLabel)
}

func TestRecalc_SinDescuentoNoHayEtiqueta(t *testing.T) {
	r := pricing.Recalc(pricing.Costs{PurchasePrice: d("1000")}, d("50"), decimal.Zero, d("5"))
	assert.Equal(t, "", r.DiscountLabel)
	assert.True(t, r.FinalInvoiceValue.Equal(d("1575")), "final=%s", r.FinalInvoiceValue)
}

func TestRecalc_CostosFaltantesValenCero(t *testing.T) {
	r := pricing.Recalc(pricing.Costs{}, d("20"), decimal.Zero, d("12"))
	assert.True(t, r.LandedCost.IsZero())
	assert.True(t, r.FinalInvoiceValue.IsZero())
	assert.Equal(t, "", r.DiscountLabel, "sin precio base no hay porcentaje de descuento")
}

func TestRecalc_Determinista(t *testing.T) {
	costs := pricing.Costs{PurchasePrice: d("333.33"), TransportCost: d("12.5"), OtherCost: d("0.17")}
	r1 := pricing.Recalc(costs, d("37.5"), d("11"), d("12"))
	r2 := pricing.Recalc(costs, d("37.5"), d("11"), d("12"))
	assert.Equal(t, r1, r2)
}

func TestRecalc_Monotonia(t *testing.T) {
	base := func() (pricing.Costs, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
		return pricing.Costs{PurchasePrice: d("500"), TransportCost: d("20"), OtherCost: d("10")}, d("25"), d("30"), d("5")
	}
	costs, profit, disc, gst := base()
	ref := pricing.Recalc(costs, profit, disc, gst).FinalInvoiceValue

	cases := []struct {
		name   string
		mutate func(c *pricing.Costs, profit, disc, gst *decimal.Decimal)
		up     bool
	}{
		{"compra", func(c *pricing.Costs, _, _, _ *decimal.Decimal) { c.PurchasePrice = c.PurchasePrice.Add(d("1")) }, true},
		{"transporte", func(c *pricing.Costs, _, _, _ *decimal.Decimal) { c.TransportCost = c.TransportCost.Add(d("1")) }, true},
		{"otros", func(c *pricing.Costs, _, _, _ *decimal.Decimal) { c.OtherCost = c.OtherCost.Add(d("1")) }, true},
		{"utilidad", func(_ *pricing.Costs, p, _, _ *decimal.Decimal) { *p = p.Add(d("1")) }, true},
		{"gst", func(_ *pricing.Costs, _, _, g *decimal.Decimal) { *g = g.Add(d("1")) }, true},
		{"descuento", func(_ *pricing.Costs, _, ds, _ *decimal.Decimal) { *ds = ds.Add(d("1")) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, p, ds, g := base()
			tc.mutate(&c, &p, &ds, &g)
			got := pricing.Recalc(c, p, ds, g).FinalInvoiceValue
			if tc.up {
				assert.True(t, got.GreaterThanOrEqual(ref), "%s debe no decrecer: %s < %s", tc.name, got, ref)
			} else {
				assert.True(t, got.LessThanOrEqual(ref), "%s debe no crecer: %s > %s", tc.name, got, ref)
			}
		})
	}
}

func TestRoundTotalPrice(t *testing.T) {
	cases := map[string]string{
		"150.7":   "151",
		"150":     "150",
		"150.01":  "151",
		"0":       "0",
		"4299":    "4299",
		"4298.99": "4299",
	}
	for in, want := range cases {
		got := pricing.RoundTotalPrice(d(in))
		assert.True(t, got.Equal(d(want)), "RoundTotalPrice(%s)=%s, want %s", in, got, want)
		assert.True(t, pricing.RoundTotalPrice(got).Equal(got), "debe ser idempotente para %s", in)
	}
}

func TestParseGSTPercent(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"5%", "5", true},
		{"12", "12", true},
		{" 18 % ", "18", true},
		{"", "0", true},
		{"2.5%", "2.5", true},
		{"abc", "0", false},
		{"5%%", "0", false},
		{"-5%", "0", false},
	}
	for _, tc := range cases {
		got, ok := pricing.ParseGSTPercent(tc.in)
		assert.Equal(t, tc.ok, ok, "ok para %q", tc.in)
		assert.True(t, got.Equal(d(tc.want)), "ParseGSTPercent(%q)=%s", tc.in, got)
	}
}

func TestDiscountLabel_Redondeo(t *testing.T) {
	assert.Equal(t, "10% OFF", pricing.DiscountLabel(d("100"), d("1000")))
	assert.Equal(t, "33.3% OFF", pricing.DiscountLabel(d("1"), d("3")))
	assert.Equal(t, "", pricing.DiscountLabel(d("-5"), d("100")))
}
