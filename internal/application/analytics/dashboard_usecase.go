// Package analytics contiene el resumen de ventas del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Los pedidos
// cancelados no cuentan como venta.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales + TodayOrders
//  2. GetSalesMetrics(mes)        → MonthlySales + MonthlyOrders
//  3. GetTopProducts(mes, top 5)  → TopProducts
//  4. CountByStatus               → OrdersByStatus
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		orders  int
		err     error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type statusResult struct {
		counts map[string]int
		err    error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	statusCh := make(chan statusResult, 1)

	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, n, err}
	}()
	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		monthCh <- metricsResult{rev, n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.CountByStatus(ctx)
		statusCh <- statusResult{counts, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	status := <-statusCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos por estado: %w", status.err)
	}

	products := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		products = append(products, dto.TopProductDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue.Round(2),
		})
	}
	counts := status.counts
	if counts == nil {
		counts = map[string]int{}
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:     today.revenue.Round(2),
		TodayOrders:    today.orders,
		MonthlySales:   month.revenue.Round(2),
		MonthlyOrders:  month.orders,
		OrdersByStatus: counts,
		TopProducts:    products,
		DateLabel:      monthLabel(now),
	}, nil
}

// monthLabel etiqueta legible del mes, ej: "October 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
