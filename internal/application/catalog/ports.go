package catalog

import (
	"context"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// DescriptionRenderer convierte la descripción en markdown a HTML seguro.
type DescriptionRenderer interface {
	Render(markdown string) (string, error)
}

// ProductSource origen de un producto para la página de detalle. Cada
// colección (bestseller, new-arrival, trending, categoría) es un origen; la
// página es una sola.
type ProductSource interface {
	Name() string
	// Fetch devuelve nil, nil si el slug no existe en este origen.
	Fetch(ctx context.Context, slug string) (*entity.Product, error)
}
