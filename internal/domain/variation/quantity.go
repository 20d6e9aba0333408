package variation

// QuantityPolicy decide qué hacer con la cantidad elegida cuando el stock de
// la selección baja por debajo de ella.
type QuantityPolicy int

const (
	// ResetToOne vuelve la cantidad a 1 (comportamiento de la tienda).
	ResetToOne QuantityPolicy = iota
	// ClampToStock deja la cantidad en el stock disponible.
	ClampToStock
)

// AdjustQuantity aplica ResetToOne.
func AdjustQuantity(current, stock int) int {
	return ResetToOne.Adjust(current, stock)
}

// Adjust devuelve la cantidad a mostrar después de un cambio de stock.
func (p QuantityPolicy) Adjust(current, stock int) int {
	if current < 1 {
		return 1
	}
	if current <= stock {
		return current
	}
	if p == ClampToStock && stock > 0 {
		return stock
	}
	return 1
}
