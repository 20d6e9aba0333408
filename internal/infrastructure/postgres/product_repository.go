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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	id, slug, name, category, collections, images, description,
	base_purchase_price, transport_cost, other_cost, profit_margin_percent,
	discount_amount, discount_reason, gst_percent,
	landed_cost, selling_price_before_gst, taxable_value, gst_rate, final_invoice_value, discount_label,
	variations, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las variaciones viven en una columna JSONB del producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su derivación de precios.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	vs, err := json.Marshal(variationsOrEmpty(p.Variations))
	if err != nil {
		return fmt.Errorf("marshal variations: %w", err)
	}
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.Slug, p.Name, p.Category, emptyIfNil(p.Collections), emptyIfNil(p.Images), p.Description,
		p.BasePurchasePrice, p.TransportCost, p.OtherCost, p.ProfitMarginPercent,
		p.DiscountAmount, p.DiscountReason, p.GSTPercent,
		p.Pricing.LandedCost, p.Pricing.SellingPriceBeforeGST, p.Pricing.TaxableValue, p.Pricing.GSTRate,
		p.Pricing.FinalInvoiceValue, p.Pricing.DiscountLabel,
		vs, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySlug obtiene un producto por slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// Update reemplaza los datos del producto (incluida la derivación y las variaciones).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	vs, err := json.Marshal(variationsOrEmpty(p.Variations))
	if err != nil {
		return fmt.Errorf("marshal variations: %w", err)
	}
	query := `
		UPDATE products SET
			slug = $2, name = $3, category = $4, collections = $5, images = $6, description = $7,
			base_purchase_price = $8, transport_cost = $9, other_cost = $10, profit_margin_percent = $11,
			discount_amount = $12, discount_reason = $13, gst_percent = $14,
			landed_cost = $15, selling_price_before_gst = $16, taxable_value = $17, gst_rate = $18,
			final_invoice_value = $19, discount_label = $20, variations = $21, updated_at = $22
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Slug, p.Name, p.Category, emptyIfNil(p.Collections), emptyIfNil(p.Images), p.Description,
		p.BasePurchasePrice, p.TransportCost, p.OtherCost, p.ProfitMarginPercent,
		p.DiscountAmount, p.DiscountReason, p.GSTPercent,
		p.Pricing.LandedCost, p.Pricing.SellingPriceBeforeGST, p.Pricing.TaxableValue, p.Pricing.GSTRate,
		p.Pricing.FinalInvoiceValue, p.Pricing.DiscountLabel,
		vs, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtro opcional de colección o categoría, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Collection != "" {
		args = append(args, f.Collection)
		where = append(where, fmt.Sprintf("$%d = ANY(collections)", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}
	query := `SELECT ` + productColumns + ` FROM products`
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
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta stock de una variación. Bloquea la fila del
// producto (FOR UPDATE) hasta el fin de la transacción del llamador.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID, color, size string, qty int) error {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT variations FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock product: %w", err)
	}
	var vs []entity.Variation
	if err := json.Unmarshal(raw, &vs); err != nil {
		return fmt.Errorf("unmarshal variations: %w", err)
	}
	if err := decrement(vs, color, size, qty); err != nil {
		return err
	}
	out, err := json.Marshal(vs)
	if err != nil {
		return fmt.Errorf("marshal variations: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE products SET variations = $2, updated_at = now() WHERE id = $1`, productID, out); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// decrement aplica el descuento sobre la primera variación que coincide.
func decrement(vs []entity.Variation, color, size string, qty int) error {
	for i := range vs {
		if vs[i].Color != color || vs[i].Size != size {
			continue
		}
		if vs[i].Stock < qty {
			return fmt.Errorf("%w: quedan %d unidades", domain.ErrOutOfStock, vs[i].Stock)
		}
		vs[i].Stock -= qty
		return nil
	}
	return fmt.Errorf("%w: la combinación no existe", domain.ErrOutOfStock)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p  entity.Product
		vs []byte
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Category, &p.Collections, &p.Images, &p.Description,
		&p.BasePurchasePrice, &p.TransportCost, &p.OtherCost, &p.ProfitMarginPercent,
		&p.DiscountAmount, &p.DiscountReason, &p.GSTPercent,
		&p.Pricing.LandedCost, &p.Pricing.SellingPriceBeforeGST, &p.Pricing.TaxableValue, &p.Pricing.GSTRate,
		&p.Pricing.FinalInvoiceValue, &p.Pricing.DiscountLabel,
		&vs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(vs) > 0 {
		if err := json.Unmarshal(vs, &p.Variations); err != nil {
			return nil, fmt.Errorf("unmarshal variations: %w", err)
		}
	}
	return &p, nil
}

func variationsOrEmpty(vs []entity.Variation) []entity.Variation {
	if vs == nil {
		return []entity.Variation{}
	}
	return vs
}
