package repository

import (
	"context"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos (admin).
type OrderFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order y sus ítems.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, order *entity.Order) error
}
