package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto más vendido en un período.
type TopProductResult struct {
	ProductID string
	Name      string
	UnitsSold int
	Revenue   decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard del admin.
// Los pedidos cancelados no cuentan como venta.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos y número de pedidos en el rango.
	GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (revenue decimal.Decimal, orders int, err error)
	// CountByStatus devuelve el número de pedidos por estado.
	CountByStatus(ctx context.Context) (map[string]int, error)
	// GetTopProducts devuelve los `limit` productos con más unidades vendidas.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
}
