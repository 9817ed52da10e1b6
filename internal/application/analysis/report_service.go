package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/trade"
)

// DefaultSalesPeriodDays is the trailing window used when the caller does
// not specify one.
const DefaultSalesPeriodDays = 30

const topProductLimit = 5
const lowStockLimit = 10
const catalogPageSize = 500

// ReportService computes inventory and sales analytics. All numbers come
// from the local repositories; the oracle only adds commentary on top.
type ReportService struct {
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockItemRepository
	orderRepo   trade.SalesOrderRepository
	oracle      Oracle
}

// NewReportService creates a new ReportService
func NewReportService(
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockItemRepository,
	orderRepo trade.SalesOrderRepository,
	oracle Oracle,
) *ReportService {
	return &ReportService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		orderRepo:   orderRepo,
		oracle:      oracle,
	}
}

// AnalyzeInventory computes the current stock position across the catalog.
// The catalog is read page by page until a short page, so the metrics cover
// every product no matter how large the catalog grows.
func (s *ReportService) AnalyzeInventory(ctx context.Context) (*InventoryAnalysisResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = catalogPageSize

	var products []*catalog.Product
	for {
		page, err := s.productRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		products = append(products, page...)
		if len(page) < filter.PageSize {
			break
		}
		filter.Page++
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	stocks, err := s.stockRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	stockByProduct := make(map[uuid.UUID]*inventory.StockItem, len(stocks))
	for _, item := range stocks {
		stockByProduct[item.ProductID] = item
	}

	resp := &InventoryAnalysisResponse{
		TotalProducts:  len(products),
		TotalValue:     decimal.Zero,
		StatusCounts:   map[string]int{},
		CategoryCounts: map[string]int{},
		LowStock:       []LowStockEntry{},
	}

	type ranked struct {
		name     string
		quantity int
	}
	var byQuantity []ranked

	for _, p := range products {
		resp.CategoryCounts[string(p.Category)]++

		stock, ok := stockByProduct[p.ID]
		if !ok {
			continue
		}

		resp.TotalUnits += stock.Quantity
		resp.TotalValue = resp.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(stock.Quantity))))
		resp.StatusCounts[string(stock.Status())]++
		byQuantity = append(byQuantity, ranked{name: p.Name, quantity: stock.Quantity})

		if stock.IsLowStock() && len(resp.LowStock) < lowStockLimit {
			resp.LowStock = append(resp.LowStock, LowStockEntry{
				ProductID:    p.ID,
				Name:         p.Name,
				SKU:          p.SKU,
				Quantity:     stock.Quantity,
				MinThreshold: stock.MinThreshold,
				Status:       string(stock.Status()),
			})
		}
	}

	sort.Slice(byQuantity, func(i, j int) bool { return byQuantity[i].quantity > byQuantity[j].quantity })
	if len(byQuantity) > topProductLimit {
		byQuantity = byQuantity[:topProductLimit]
	}
	quantityLabels := make([]string, 0, len(byQuantity))
	quantityValues := make([]float64, 0, len(byQuantity))
	for _, r := range byQuantity {
		quantityLabels = append(quantityLabels, r.name)
		quantityValues = append(quantityValues, float64(r.quantity))
	}

	statusLabels, statusValues := sortedCounts(resp.StatusCounts)

	resp.Visualizations = []Visualization{
		NewBarChart("Stock by product", quantityLabels, quantityValues),
		NewPieChart("Stock status distribution", statusLabels, statusValues),
	}

	resp.Summary = fmt.Sprintf("%d products, %d units on hand, inventory value %s. %d product(s) at or below minimum stock.",
		resp.TotalProducts, resp.TotalUnits, resp.TotalValue.StringFixed(2), len(resp.LowStock))

	resp.Advisory = s.advise(ctx, "Inventory position: "+resp.Summary+s.describeLowStock(resp.LowStock))

	return resp, nil
}

// AnalyzeSales computes sales performance over the trailing window
func (s *ReportService) AnalyzeSales(ctx context.Context, periodDays int) (*SalesAnalysisResponse, error) {
	if periodDays <= 0 {
		periodDays = DefaultSalesPeriodDays
	}

	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	orders, err := s.orderRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &SalesAnalysisResponse{
		PeriodDays:   periodDays,
		TotalRevenue: decimal.Zero,
		TopProducts:  []TopProductEntry{},
		DailyRevenue: []DailyRevenueEntry{},
	}

	type productAgg struct {
		units   int
		revenue decimal.Decimal
	}
	byProduct := map[string]*productAgg{}
	type dayAgg struct {
		orders  int
		revenue decimal.Decimal
	}
	byDay := map[string]*dayAgg{}

	for _, order := range orders {
		if order.Status == trade.OrderStatusCancelled {
			continue
		}

		resp.TotalOrders++
		resp.TotalRevenue = resp.TotalRevenue.Add(order.TotalAmount)

		day := order.CreatedAt.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = &dayAgg{revenue: decimal.Zero}
		}
		byDay[day].orders++
		byDay[day].revenue = byDay[day].revenue.Add(order.TotalAmount)

		for _, item := range order.Items {
			resp.TotalUnits += item.Quantity
			if byProduct[item.ProductName] == nil {
				byProduct[item.ProductName] = &productAgg{revenue: decimal.Zero}
			}
			byProduct[item.ProductName].units += item.Quantity
			byProduct[item.ProductName].revenue = byProduct[item.ProductName].revenue.Add(item.Subtotal)
		}
	}

	if resp.TotalOrders > 0 {
		resp.AverageOrderValue = resp.TotalRevenue.DivRound(decimal.NewFromInt(int64(resp.TotalOrders)), 2)
	} else {
		resp.AverageOrderValue = decimal.Zero
	}

	for name, agg := range byProduct {
		resp.TopProducts = append(resp.TopProducts, TopProductEntry{
			ProductName: name,
			UnitsSold:   agg.units,
			Revenue:     agg.revenue,
		})
	}
	sort.Slice(resp.TopProducts, func(i, j int) bool {
		if resp.TopProducts[i].UnitsSold != resp.TopProducts[j].UnitsSold {
			return resp.TopProducts[i].UnitsSold > resp.TopProducts[j].UnitsSold
		}
		return resp.TopProducts[i].ProductName < resp.TopProducts[j].ProductName
	})
	if len(resp.TopProducts) > topProductLimit {
		resp.TopProducts = resp.TopProducts[:topProductLimit]
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	revenueValues := make([]float64, 0, len(days))
	for _, day := range days {
		agg := byDay[day]
		resp.DailyRevenue = append(resp.DailyRevenue, DailyRevenueEntry{
			Date:    day,
			Orders:  agg.orders,
			Revenue: agg.revenue,
		})
		value, _ := agg.revenue.Float64()
		revenueValues = append(revenueValues, value)
	}

	topLabels := make([]string, 0, len(resp.TopProducts))
	topValues := make([]float64, 0, len(resp.TopProducts))
	for _, entry := range resp.TopProducts {
		topLabels = append(topLabels, entry.ProductName)
		topValues = append(topValues, float64(entry.UnitsSold))
	}

	resp.Visualizations = []Visualization{
		NewLineChart("Revenue by day", days, revenueValues),
		NewBarChart("Top products by units sold", topLabels, topValues),
	}

	resp.Summary = fmt.Sprintf("%d orders in the last %d days, revenue %s, average order value %s.",
		resp.TotalOrders, periodDays, resp.TotalRevenue.StringFixed(2), resp.AverageOrderValue.StringFixed(2))

	resp.Advisory = s.advise(ctx, "Sales performance: "+resp.Summary+s.describeTopProducts(resp.TopProducts))

	return resp, nil
}

// BusinessReport combines the inventory and sales views into one report
func (s *ReportService) BusinessReport(ctx context.Context) (*BusinessReportResponse, error) {
	inv, err := s.AnalyzeInventory(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.AnalyzeSales(ctx, DefaultSalesPeriodDays)
	if err != nil {
		return nil, err
	}

	resp := &BusinessReportResponse{
		Inventory: *inv,
		Sales:     *sales,
		Summary:   inv.Summary + " " + sales.Summary,
	}
	resp.Visualizations = append(resp.Visualizations, inv.Visualizations...)
	resp.Visualizations = append(resp.Visualizations, sales.Visualizations...)

	resp.Advisory = s.advise(ctx, "Business overview. "+resp.Summary)

	return resp, nil
}

// advise asks the oracle for commentary. Any failure degrades to an empty
// advisory; reports never fail because the oracle did.
func (s *ReportService) advise(ctx context.Context, prompt string) string {
	if s.oracle == nil || !s.oracle.Enabled() {
		return ""
	}
	text, err := s.oracle.Advise(ctx, prompt)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// sortedCounts flattens a count map into label and value slices with a
// stable, alphabetical label order.
func sortedCounts(counts map[string]int) ([]string, []float64) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	values := make([]float64, 0, len(labels))
	for _, label := range labels {
		values = append(values, float64(counts[label]))
	}
	return labels, values
}

func (s *ReportService) describeLowStock(entries []LowStockEntry) string {
	if len(entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, fmt.Sprintf("%s (%d/%d)", e.Name, e.Quantity, e.MinThreshold))
	}
	return " Low stock: " + strings.Join(names, ", ") + "."
}

func (s *ReportService) describeTopProducts(entries []TopProductEntry) string {
	if len(entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, fmt.Sprintf("%s (%d units)", e.ProductName, e.UnitsSold))
	}
	return " Top sellers: " + strings.Join(names, ", ") + "."
}
