package variation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/variation"
)

func v(color, size string, stock int, mod string) entity.Variation {
	return entity.Variation{Color: color, Size: size, Stock: stock, PriceModifier: decimal.RequireFromString(mod)}
}

func lehenga() []entity.Variation {
	return []entity.Variation{
		v("Maroon", "S", 0, "0"),
		v("Maroon", "M", 3, "0"),
		v("Maroon", "L", 2, "200"),
		v("Teal", "S", 0, "0"),
		v("Teal", "M", 0, "-100"),
		v("Gold", "M", 5, "150"),
	}
}

func TestResolve_ConModificador(t *testing.T) {
	r := variation.Resolve(decimal.NewFromInt(4299), lehenga(), "Maroon", "L")
	assert.True(t, r.Found)
	assert.Equal(t, 2, r.Stock)
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(4499)), "unit=%s", r.UnitPrice)
}

func TestResolve_ModificadorNegativo(t *testing.T) {
	r := variation.Resolve(decimal.NewFromInt(4299), lehenga(), "Teal", "M")
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(4199)))
	assert.Equal(t, 0, r.Stock)
}

func TestResolve_SinCoincidencia(t *testing.T) {
	r := variation.Resolve(decimal.NewFromInt(4299), lehenga(), "Pink", "XL")
	assert.False(t, r.Found)
	assert.Equal(t, 0, r.Stock)
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(4299)))
}

func TestResolve_PrimeraCoincidenciaGana(t *testing.T) {
	vs := []entity.Variation{v("Red", "M", 1, "10"), v("Red", "M", 9, "99")}
	r := variation.Resolve(decimal.NewFromInt(100), vs, "Red", "M")
	assert.Equal(t, 1, r.Stock)
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(110)))
}

func TestDefaultSelection(t *testing.T) {
	sel, ok := variation.DefaultSelection(lehenga())
	require.True(t, ok)
	assert.Equal(t, variation.Selection{Color: "Maroon", Size: "M"}, sel)

	agotado := []entity.Variation{v("Teal", "S", 0, "0"), v("Teal", "M", 0, "0")}
	sel, ok = variation.DefaultSelection(agotado)
	require.True(t, ok)
	assert.Equal(t, variation.Selection{Color: "Teal", Size: "S"}, sel, "sin stock cae en la primera")

	_, ok = variation.DefaultSelection(nil)
	assert.False(t, ok)
}

func TestSelectColor(t *testing.T) {
	vs := lehenga()
	// M existe con stock en Gold: se conserva.
	assert.Equal(t, variation.Selection{Color: "Gold", Size: "M"}, variation.SelectColor(vs, "M", "Gold"))
	// S no tiene stock en Maroon: primera con stock.
	assert.Equal(t, variation.Selection{Color: "Maroon", Size: "M"}, variation.SelectColor(vs, "S", "Maroon"))
	// Teal sin stock: primera talla del color.
	assert.Equal(t, variation.Selection{Color: "Teal", Size: "S"}, variation.SelectColor(vs, "L", "Teal"))
}

// Un color sin stock total deshabilita todas las tallas y rechaza agregar al
// carrito sin entrar en pánico.
func TestColorAgotado_TodoDeshabilitado(t *testing.T) {
	vs := lehenga()
	opts := variation.SizeOptions(vs, "Teal")
	require.Len(t, opts, 2)
	for _, o := range opts {
		assert.True(t, o.Disabled, "talla %s debe estar deshabilitada", o.Size)
	}
	assert.Equal(t, 0, variation.TotalStock(vs, "Teal"))

	sel := variation.SelectColor(vs, "M", "Teal")
	r := variation.Resolve(decimal.NewFromInt(4299), vs, sel.Color, sel.Size)
	var err error
	assert.NotPanics(t, func() { err = variation.CheckAddToCart(r, 1) })
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))
}

func TestCheckAddToCart(t *testing.T) {
	r := variation.Resolution{Found: true, Stock: 3, UnitPrice: decimal.NewFromInt(10)}
	assert.NoError(t, variation.CheckAddToCart(r, 3))
	assert.ErrorIs(t, variation.CheckAddToCart(r, 4), domain.ErrOutOfStock)
	assert.ErrorIs(t, variation.CheckAddToCart(r, 0), domain.ErrInvalidInput)
}

func TestAdjustQuantity(t *testing.T) {
	assert.Equal(t, 2, variation.AdjustQuantity(2, 5))
	assert.Equal(t, 1, variation.AdjustQuantity(4, 3), "se reinicia a 1, no a 3")
	assert.Equal(t, 1, variation.AdjustQuantity(4, 0))
	assert.Equal(t, 3, variation.ClampToStock.Adjust(4, 3))
	assert.Equal(t, 1, variation.ClampToStock.Adjust(4, 0))
}

func TestColors(t *testing.T) {
	assert.Equal(t, []string{"Maroon", "Teal", "Gold"}, variation.Colors(lehenga()))
}

func TestValidateUnique(t *testing.T) {
	assert.NoError(t, variation.ValidateUnique(lehenga()))

	dup := append(lehenga(), v("Gold", "M", 1, "0"))
	assert.ErrorIs(t, variation.ValidateUnique(dup), domain.ErrDuplicate)

	neg := []entity.Variation{v("Gold", "M", -1, "0")}
	assert.ErrorIs(t, variation.ValidateUnique(neg), domain.ErrInvalidInput)

	sinTalla := []entity.Variation{v("Gold", " ", 1, "0")}
	assert.ErrorIs(t, variation.ValidateUnique(sinTalla), domain.ErrInvalidInput)
}
