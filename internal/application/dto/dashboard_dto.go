package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard.
type DashboardSummaryDTO struct {
	TodaySales     decimal.Decimal `json:"todaySales"`
	TodayOrders    int             `json:"todayOrders"`
	MonthlySales   decimal.Decimal `json:"monthlySales"`
	MonthlyOrders  int             `json:"monthlyOrders"`
	OrdersByStatus map[string]int  `json:"ordersByStatus"`
	TopProducts    []TopProductDTO `json:"topProducts"`
	DateLabel      string          `json:"dateLabel"` // ej: "October 2026"
}

// TopProductDTO producto más vendido del mes.
type TopProductDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
