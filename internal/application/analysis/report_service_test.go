package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
	"github.com/salesdesk/backend/internal/domain/trade"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockStockItemRepository is a mock implementation of inventory.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]*inventory.StockItem, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBelowMinThreshold(ctx context.Context) ([]*inventory.StockItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockItemRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockStockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*trade.SalesOrder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) SumTotalAmount(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOracle is a mock implementation of Oracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Advise(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockOracle) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func buildProduct(t *testing.T, name string, category catalog.Category, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(catalog.GenerateSKU(time.Now()), name, category, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return product
}

func buildStock(t *testing.T, productID uuid.UUID, quantity, min int) *inventory.StockItem {
	t.Helper()
	max := 1000
	stock, err := inventory.NewStockItem(productID, quantity, &min, &max)
	require.NoError(t, err)
	return stock
}

func TestAnalyzeInventory(t *testing.T) {
	ctx := context.Background()

	t.Run("computes totals status counts and low stock", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		stockRepo := new(MockStockItemRepository)
		orderRepo := new(MockSalesOrderRepository)
		oracle := new(MockOracle)
		service := NewReportService(productRepo, stockRepo, orderRepo, oracle)

		laptop := buildProduct(t, "Laptop HP", catalog.CategoryElectronics, 1000)
		mouse := buildProduct(t, "Mouse Logitech", catalog.CategoryElectronics, 25)
		chair := buildProduct(t, "Office Chair", catalog.CategoryFurniture, 150)

		laptopStock := buildStock(t, laptop.ID, 40, 10)
		mouseStock := buildStock(t, mouse.ID, 3, 10)
		chairStock := buildStock(t, chair.ID, 0, 5)

		productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]*catalog.Product{laptop, mouse, chair}, nil)
		stockRepo.On("FindByProductIDs", ctx, mock.Anything).
			Return([]*inventory.StockItem{laptopStock, mouseStock, chairStock}, nil)
		oracle.On("Enabled").Return(true)
		oracle.On("Advise", ctx, mock.AnythingOfType("string")).Return("Restock the mouse soon.", nil)

		resp, err := service.AnalyzeInventory(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.TotalProducts)
		assert.Equal(t, 43, resp.TotalUnits)
		assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(40075)),
			"expected 40075, got %s", resp.TotalValue)
		assert.Equal(t, 1, resp.StatusCounts["normal"])
		assert.Equal(t, 1, resp.StatusCounts["critical"])
		assert.Equal(t, 1, resp.StatusCounts["out_of_stock"])
		assert.Equal(t, 2, resp.CategoryCounts["Electronics"])
		assert.Len(t, resp.LowStock, 2)
		assert.Len(t, resp.Visualizations, 2)
		assert.Equal(t, ChartTypeBar, resp.Visualizations[0].Type)
		assert.Equal(t, ChartTypePie, resp.Visualizations[1].Type)
		assert.Equal(t, "Restock the mouse soon.", resp.Advisory)
	})

	t.Run("reads the whole catalog across pages", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		stockRepo := new(MockStockItemRepository)
		orderRepo := new(MockSalesOrderRepository)
		oracle := new(MockOracle)
		service := NewReportService(productRepo, stockRepo, orderRepo, oracle)

		firstPage := make([]*catalog.Product, 0, catalogPageSize)
		for i := 0; i < catalogPageSize; i++ {
			firstPage = append(firstPage, buildProduct(t, fmt.Sprintf("Product %04d", i), catalog.CategoryElectronics, 10))
		}
		straggler := buildProduct(t, "Straggler", catalog.CategoryFurniture, 10)

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 })).
			Return(firstPage, nil)
		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 2 })).
			Return([]*catalog.Product{straggler}, nil)
		stockRepo.On("FindByProductIDs", ctx, mock.Anything).
			Return([]*inventory.StockItem{}, nil)
		oracle.On("Enabled").Return(false)

		resp, err := service.AnalyzeInventory(ctx)
		require.NoError(t, err)

		assert.Equal(t, catalogPageSize+1, resp.TotalProducts)
		assert.Equal(t, 1, resp.CategoryCounts["Furniture"])
		productRepo.AssertNumberOfCalls(t, "FindAll", 2)
	})

	t.Run("oracle failure degrades to metrics only", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		stockRepo := new(MockStockItemRepository)
		orderRepo := new(MockSalesOrderRepository)
		oracle := new(MockOracle)
		service := NewReportService(productRepo, stockRepo, orderRepo, oracle)

		productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]*catalog.Product{}, nil)
		stockRepo.On("FindByProductIDs", ctx, mock.Anything).
			Return([]*inventory.StockItem{}, nil)
		oracle.On("Enabled").Return(true)
		oracle.On("Advise", ctx, mock.AnythingOfType("string")).Return("", errors.New("upstream timeout"))

		resp, err := service.AnalyzeInventory(ctx)
		require.NoError(t, err)
		assert.Empty(t, resp.Advisory)
	})

	t.Run("disabled oracle is never called", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		stockRepo := new(MockStockItemRepository)
		orderRepo := new(MockSalesOrderRepository)
		oracle := new(MockOracle)
		service := NewReportService(productRepo, stockRepo, orderRepo, oracle)

		productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]*catalog.Product{}, nil)
		stockRepo.On("FindByProductIDs", ctx, mock.Anything).
			Return([]*inventory.StockItem{}, nil)
		oracle.On("Enabled").Return(false)

		resp, err := service.AnalyzeInventory(ctx)
		require.NoError(t, err)
		assert.Empty(t, resp.Advisory)
		oracle.AssertNotCalled(t, "Advise", mock.Anything, mock.Anything)
	})
}

func TestAnalyzeSales(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	stockRepo := new(MockStockItemRepository)
	orderRepo := new(MockSalesOrderRepository)
	oracle := new(MockOracle)
	service := NewReportService(productRepo, stockRepo, orderRepo, oracle)

	laptop := buildProduct(t, "Laptop HP", catalog.CategoryElectronics, 1000)
	mouse := buildProduct(t, "Mouse Logitech", catalog.CategoryElectronics, 25)

	first, err := trade.NewSalesOrder("SO-2026-00001", "Maria Lopez", trade.PaymentMethodCash)
	require.NoError(t, err)
	require.NoError(t, first.AddItem(laptop.ID, laptop.Name, laptop.SKU, 2, laptop.PriceMoney()))
	require.NoError(t, first.AddItem(mouse.ID, mouse.Name, mouse.SKU, 4, mouse.PriceMoney()))

	second, err := trade.NewSalesOrder("SO-2026-00002", "Juan Perez", trade.PaymentMethodTransfer)
	require.NoError(t, err)
	require.NoError(t, second.AddItem(mouse.ID, mouse.Name, mouse.SKU, 6, mouse.PriceMoney()))

	cancelled, err := trade.NewSalesOrder("SO-2026-00003", "Ana Ruiz", trade.PaymentMethodCash)
	require.NoError(t, err)
	require.NoError(t, cancelled.AddItem(laptop.ID, laptop.Name, laptop.SKU, 1, laptop.PriceMoney()))
	require.NoError(t, cancelled.Cancel())

	orderRepo.On("FindByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*trade.SalesOrder{first, second, cancelled}, nil)
	oracle.On("Enabled").Return(false)

	resp, err := service.AnalyzeSales(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultSalesPeriodDays, resp.PeriodDays)
	assert.Equal(t, 2, resp.TotalOrders)
	assert.Equal(t, 12, resp.TotalUnits)
	assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(2250)),
		"expected 2250, got %s", resp.TotalRevenue)
	assert.True(t, resp.AverageOrderValue.Equal(decimal.NewFromInt(1125)))

	require.NotEmpty(t, resp.TopProducts)
	assert.Equal(t, "Mouse Logitech", resp.TopProducts[0].ProductName)
	assert.Equal(t, 10, resp.TopProducts[0].UnitsSold)
	assert.Len(t, resp.Visualizations, 2)
	assert.Equal(t, ChartTypeLine, resp.Visualizations[0].Type)
}

func TestBusinessReport(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	stockRepo := new(MockStockItemRepository)
	orderRepo := new(MockSalesOrderRepository)
	service := NewReportService(productRepo, stockRepo, orderRepo, nil)

	productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
		Return([]*catalog.Product{}, nil)
	stockRepo.On("FindByProductIDs", ctx, mock.Anything).
		Return([]*inventory.StockItem{}, nil)
	orderRepo.On("FindByDateRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*trade.SalesOrder{}, nil)

	resp, err := service.BusinessReport(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Summary)
	assert.Len(t, resp.Visualizations, 4)
	assert.Empty(t, resp.Advisory)
}
