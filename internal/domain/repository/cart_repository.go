package repository

import (
	"context"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia del carrito (una fila por línea).
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.CartLine, error)
	GetLine(ctx context.Context, userID, lineID string) (*entity.CartLine, error)
	FindLine(ctx context.Context, userID, productID, color, size string) (*entity.CartLine, error)
	AddLine(ctx context.Context, line *entity.CartLine) error
	UpdateQuantity(ctx context.Context, userID, lineID string, qty int) error
	DeleteLine(ctx context.Context, userID, lineID string) error
	ClearByUser(ctx context.Context, userID string) error
}
