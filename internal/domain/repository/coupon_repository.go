package repository

import (
	"context"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// CouponRepository define el puerto de persistencia para Coupon.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Coupon, error)
	// IncrementUsage suma un uso; se llama dentro de la transacción del pedido.
	IncrementUsage(ctx context.Context, code string) error
}
