package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, user_id, customer, shipping_address, billing_address,
	subtotal, discount, coupon_code, shipping_cost, total,
	base_amount, total_gst, cgst, sgst, igst, cgst_rate, sgst_rate, igst_rate,
	payment_method, payment_status, gateway_order_id, gateway_payment_id, status,
	created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Cabecera en orders, líneas en order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// orderInsertError traduce violaciones de unicidad: un pago ya usado es
// ErrConflict; un número repetido, ErrDuplicate.
func orderInsertError(err error, o *entity.Order) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return fmt.Errorf("insert order: %w", err)
	}
	switch constraint {
	case "orders_gateway_payment_id_key":
		return fmt.Errorf("%w: el pago %s ya liquidó otro pedido", domain.ErrConflict, o.GatewayPaymentID)
	case "orders_gateway_order_id_key":
		return fmt.Errorf("%w: la orden de pago %s ya liquidó otro pedido", domain.ErrConflict, o.GatewayOrderID)
	}
	return fmt.Errorf("%w: número de pedido %s", domain.ErrDuplicate, o.Number)
}

// Create persiste cabecera y líneas. Debe llamarse dentro de la transacción del checkout.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}
	billing, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return fmt.Errorf("marshal billing address: %w", err)
	}

	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.Number, o.UserID, customer, shipping, billing,
		o.Subtotal, o.Discount, nullIfEmpty(o.CouponCode), o.ShippingCost, o.Total,
		o.Tax.BaseAmount, o.Tax.TotalGST, o.Tax.CGST, o.Tax.SGST, o.Tax.IGST,
		o.Tax.CGSTRate, o.Tax.SGSTRate, o.Tax.IGSTRate,
		o.PaymentMethod, o.PaymentStatus, nullIfEmpty(o.GatewayOrderID), nullIfEmpty(o.GatewayPaymentID), o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return orderInsertError(err, o)
	}

	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, product_id, name, image, color, size, quantity, unit_price, gst_percent, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			it.ID, o.ID, i, it.ProductID, it.Name, it.Image, it.Color, it.Size,
			it.Quantity, it.UnitPrice, it.GSTPercent, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// List lista pedidos (con sus líneas) según el filtro, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Las líneas se leen después de cerrar rows: un Querier tx no admite consultas anidadas.
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatus guarda el nuevo estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, o.ID, o.Status, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, name, image, color, size, quantity, unit_price, gst_percent, line_total
		FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Image, &it.Color, &it.Size,
			&it.Quantity, &it.UnitPrice, &it.GSTPercent, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                           entity.Order
		customer, shipping, billing []byte
		coupon, gwOrder, gwPayment  *string
	)
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &customer, &shipping, &billing,
		&o.Subtotal, &o.Discount, &coupon, &o.ShippingCost, &o.Total,
		&o.Tax.BaseAmount, &o.Tax.TotalGST, &o.Tax.CGST, &o.Tax.SGST, &o.Tax.IGST,
		&o.Tax.CGSTRate, &o.Tax.SGSTRate, &o.Tax.IGSTRate,
		&o.PaymentMethod, &o.PaymentStatus, &gwOrder, &gwPayment, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal(billing, &o.BillingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal billing address: %w", err)
	}
	derefStr := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}
	o.CouponCode = derefStr(coupon)
	o.GatewayOrderID = derefStr(gwOrder)
	o.GatewayPaymentID = derefStr(gwPayment)
	return &o, nil
}
