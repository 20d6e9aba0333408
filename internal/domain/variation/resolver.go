// Package variation resuelve stock y precio unitario de la combinación
// color/talla elegida en la página de detalle, y las reglas de selección
// por defecto.
//
// Si hay combinaciones (color, talla) repetidas gana la primera de la lista;
// las escrituras las rechazan con ValidateUnique.
package variation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// Resolution resultado de buscar una combinación.
type Resolution struct {
	Found     bool
	Stock     int
	UnitPrice decimal.Decimal
	SKU       string
}

// Selection combinación elegida en la UI.
type Selection struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// SizeOption talla disponible para un color.
type SizeOption struct {
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	Disabled bool   `json:"disabled"`
}

// Find devuelve la primera variación que coincide exactamente con color y talla.
func Find(vs []entity.Variation, color, size string) (entity.Variation, bool) {
	for _, v := range vs {
		if v.Color == color && v.Size == size {
			return v, true
		}
	}
	return entity.Variation{}, false
}

// Resolve calcula stock y precio unitario. Sin coincidencia: stock 0 y el
// precio base sin ajuste.
func Resolve(basePrice decimal.Decimal, vs []entity.Variation, color, size string) Resolution {
	v, ok := Find(vs, color, size)
	if !ok {
		return Resolution{Stock: 0, UnitPrice: basePrice}
	}
	return Resolution{
		Found:     true,
		Stock:     v.Stock,
		UnitPrice: basePrice.Add(v.PriceModifier),
		SKU:       v.SKU,
	}
}

// DefaultSelection primera variación con stock; si ninguna tiene, la primera
// de la lista (la UI muestra "agotado" en vez de nada). Lista vacía -> ok=false.
func DefaultSelection(vs []entity.Variation) (Selection, bool) {
	if len(vs) == 0 {
		return Selection{}, false
	}
	for _, v := range vs {
		if v.Stock > 0 {
			return Selection{Color: v.Color, Size: v.Size}, true
		}
	}
	return Selection{Color: vs[0].Color, Size: vs[0].Size}, true
}

// SelectColor aplica el cambio de color: conserva la talla si existe con stock
// en el nuevo color; si no, la primera talla con stock de ese color; si no hay
// ninguna con stock, la primera talla del color.
func SelectColor(vs []entity.Variation, currentSize, newColor string) Selection {
	sel := Selection{Color: newColor}
	if v, ok := Find(vs, newColor, currentSize); ok && v.Stock > 0 {
		sel.Size = currentSize
		return sel
	}
	first := ""
	for _, v := range vs {
		if v.Color != newColor {
			continue
		}
		if first == "" {
			first = v.Size
		}
		if v.Stock > 0 {
			sel.Size = v.Size
			return sel
		}
	}
	sel.Size = first
	return sel
}

// Colors colores distintos en orden de aparición.
func Colors(vs []entity.Variation) []string {
	seen := make(map[string]struct{}, len(vs))
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if _, ok := seen[v.Color]; ok {
			continue
		}
		seen[v.Color] = struct{}{}
		out = append(out, v.Color)
	}
	return out
}

// SizeOptions tallas del color en orden de aparición. Las tallas sin stock
// quedan deshabilitadas; un color sin stock total las deshabilita todas.
func SizeOptions(vs []entity.Variation, color string) []SizeOption {
	seen := make(map[string]struct{})
	out := make([]SizeOption, 0)
	for _, v := range vs {
		if v.Color != color {
			continue
		}
		if _, dup := seen[v.Size]; dup {
			continue
		}
		seen[v.Size] = struct{}{}
		out = append(out, SizeOption{Size: v.Size, Stock: v.Stock, Disabled: v.Stock <= 0})
	}
	return out
}

// TotalStock suma el stock de todas las tallas de un color.
func TotalStock(vs []entity.Variation, color string) int {
	total := 0
	for _, o := range SizeOptions(vs, color) {
		total += o.Stock
	}
	return total
}

// CheckAddToCart valida que la selección pueda agregarse al carrito.
func CheckAddToCart(r Resolution, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if r.Stock <= 0 {
		return fmt.Errorf("%w: la combinación elegida no tiene stock", domain.ErrOutOfStock)
	}
	if qty > r.Stock {
		return fmt.Errorf("%w: solo quedan %d unidades", domain.ErrOutOfStock, r.Stock)
	}
	return nil
}

// ValidateUnique rechaza combinaciones (color, talla) repetidas y stock negativo.
func ValidateUnique(vs []entity.Variation) error {
	seen := make(map[string]int, len(vs))
	for i, v := range vs {
		if strings.TrimSpace(v.Color) == "" || strings.TrimSpace(v.Size) == "" {
			return fmt.Errorf("%w: variación %d sin color o talla", domain.ErrInvalidInput, i)
		}
		if v.Stock < 0 {
			return fmt.Errorf("%w: variación %s/%s con stock negativo", domain.ErrInvalidInput, v.Color, v.Size)
		}
		key := v.Color + "\x00" + v.Size
		if j, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s/%s repetida en posiciones %d y %d", domain.ErrDuplicate, v.Color, v.Size, j, i)
		}
		seen[key] = i
	}
	return nil
}
