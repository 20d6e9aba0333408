package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

const couponColumns = `id, code, type, value, min_order_total, max_discount, valid_from, valid_until,
	active, usage_limit, used_count, created_at, updated_at`

// CouponRepo cupones en PostgreSQL.
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

// Create persiste un cupón.
func (r *CouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	query := `INSERT INTO coupons (` + couponColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.Type, c.Value, c.MinOrderTotal, c.MaxDiscount, c.ValidFrom, c.ValidUntil,
		c.Active, c.UsageLimit, c.UsedCount, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByCode obtiene un cupón por código (ya normalizado en mayúsculas).
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	c, err := scanCoupon(r.q.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

// List lista cupones, más recientes primero.
func (r *CouponRepo) List(ctx context.Context, limit, offset int) ([]*entity.Coupon, error) {
	rows, err := r.q.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// IncrementUsage suma un uso respetando el límite; si se agotó entre la
// validación y el pedido devuelve domain.ErrCouponInvalid.
func (r *CouponRepo) IncrementUsage(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE coupons SET used_count = used_count + 1, updated_at = now()
		WHERE code = $1 AND (usage_limit = 0 OR used_count < usage_limit)`, code)
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: el código alcanzó su límite de usos", domain.ErrCouponInvalid)
	}
	return nil
}

func scanCoupon(row pgx.Row) (*entity.Coupon, error) {
	var c entity.Coupon
	err := row.Scan(
		&c.ID, &c.Code, &c.Type, &c.Value, &c.MinOrderTotal, &c.MaxDiscount, &c.ValidFrom, &c.ValidUntil,
		&c.Active, &c.UsageLimit, &c.UsedCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
