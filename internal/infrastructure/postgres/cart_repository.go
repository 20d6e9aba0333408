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

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `id, user_id, product_id, product_name, image, selected_color, selected_size,
	quantity, unit_price, gst_percent, created_at, updated_at`

// CartRepo líneas de carrito en PostgreSQL. Todas las operaciones filtran por usuario.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// ListByUser devuelve las líneas del usuario en orden de inserción.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetLine obtiene una línea del usuario.
func (r *CartRepo) GetLine(ctx context.Context, userID, lineID string) (*entity.CartLine, error) {
	l, err := scanCartLine(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 AND id = $2`, userID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return l, nil
}

// FindLine busca la línea con la misma selección (producto, color, talla).
func (r *CartRepo) FindLine(ctx context.Context, userID, productID, color, size string) (*entity.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND selected_color = $3 AND selected_size = $4`
	l, err := scanCartLine(r.q.QueryRow(ctx, query, userID, productID, color, size))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart line: %w", err)
	}
	return l, nil
}

// AddLine inserta una línea nueva.
func (r *CartRepo) AddLine(ctx context.Context, l *entity.CartLine) error {
	query := `INSERT INTO cart_items (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UserID, l.ProductID, l.ProductName, l.Image, l.SelectedColor, l.SelectedSize,
		l.Quantity, l.UnitPrice, l.GSTPercent, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// UpdateQuantity cambia la cantidad de una línea del usuario.
func (r *CartRepo) UpdateQuantity(ctx context.Context, userID, lineID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, lineID, qty,
	)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea. Borrar una línea inexistente no es error.
func (r *CartRepo) DeleteLine(ctx context.Context, userID, lineID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, lineID); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// ClearByUser vacía el carrito.
func (r *CartRepo) ClearByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(
		&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.Image, &l.SelectedColor, &l.SelectedSize,
		&l.Quantity, &l.UnitPrice, &l.GSTPercent, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
