package analysis

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockEntry flags a product at or below its minimum threshold
type LowStockEntry struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`
	MinThreshold int       `json:"min_threshold"`
	Status       string    `json:"status"`
}

// InventoryAnalysisResponse reports the current stock position
type InventoryAnalysisResponse struct {
	Summary        string          `json:"summary"`
	TotalProducts  int             `json:"total_products"`
	TotalUnits     int             `json:"total_units"`
	TotalValue     decimal.Decimal `json:"total_value"`
	StatusCounts   map[string]int  `json:"status_counts"`
	CategoryCounts map[string]int  `json:"category_counts"`
	LowStock       []LowStockEntry `json:"low_stock"`
	Visualizations []Visualization `json:"visualizations"`
	Advisory       string          `json:"advisory,omitempty"`
}

// TopProductEntry ranks a product by units sold over the period
type TopProductEntry struct {
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DailyRevenueEntry is one day of the revenue series
type DailyRevenueEntry struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesAnalysisResponse reports sales performance over a trailing window
type SalesAnalysisResponse struct {
	Summary           string              `json:"summary"`
	PeriodDays        int                 `json:"period_days"`
	TotalOrders       int                 `json:"total_orders"`
	TotalUnits        int                 `json:"total_units"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	TopProducts       []TopProductEntry   `json:"top_products"`
	DailyRevenue      []DailyRevenueEntry `json:"daily_revenue"`
	Visualizations    []Visualization     `json:"visualizations"`
	Advisory          string              `json:"advisory,omitempty"`
}

// BusinessReportResponse combines the inventory and sales views
type BusinessReportResponse struct {
	Summary        string                    `json:"summary"`
	Inventory      InventoryAnalysisResponse `json:"inventory"`
	Sales          SalesAnalysisResponse     `json:"sales"`
	Visualizations []Visualization           `json:"visualizations"`
	Advisory       string                    `json:"advisory,omitempty"`
}
