package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics suma el total y cuenta los pedidos no cancelados del rango.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COUNT(*)
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	  AND status <> $3`
	var (
		revenue decimal.Decimal
		orders  int
	)
	if err := r.q.QueryRow(ctx, query, startDate, endDate, entity.OrderStatusCancelled).Scan(&revenue, &orders); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, orders, nil
}

// CountByStatus cuenta pedidos por estado (todos los tiempos).
func (r *AnalyticsRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountByStatus: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountByStatus scan: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// GetTopProducts productos con más unidades vendidas en el rango.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    i.product_id,
	    MAX(i.name)        AS name,
	    SUM(i.quantity)    AS units_sold,
	    SUM(i.line_total)  AS revenue
	FROM orders o
	JOIN order_items i ON i.order_id = o.id
	WHERE o.created_at BETWEEN $1 AND $2
	  AND o.status <> $3
	GROUP BY i.product_id
	ORDER BY units_sold DESC, revenue DESC
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, startDate, endDate, entity.OrderStatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
