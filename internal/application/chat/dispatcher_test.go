package chat

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/application/analysis"
	appcatalog "github.com/salesdesk/backend/internal/application/catalog"
	apptrade "github.com/salesdesk/backend/internal/application/trade"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// MockProductOps is a mock implementation of ProductOps
type MockProductOps struct {
	mock.Mock
}

func (m *MockProductOps) Create(ctx context.Context, req appcatalog.CreateProductRequest) (*appcatalog.ProductWithStockResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.ProductWithStockResponse), args.Error(1)
}

func (m *MockProductOps) CreateBatch(ctx context.Context, reqs []appcatalog.CreateProductRequest) (*appcatalog.BatchCreateResponse, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.BatchCreateResponse), args.Error(1)
}

func (m *MockProductOps) Update(ctx context.Context, id uuid.UUID, req appcatalog.UpdateProductRequest) (*appcatalog.ProductWithStockResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.ProductWithStockResponse), args.Error(1)
}

func (m *MockProductOps) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductOps) List(ctx context.Context, filter appcatalog.ProductListFilter) (*appcatalog.ProductListResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.ProductListResponse), args.Error(1)
}

// MockOrderOps is a mock implementation of OrderOps
type MockOrderOps struct {
	mock.Mock
}

func (m *MockOrderOps) CreateOrderWithInventorySync(ctx context.Context, req apptrade.CreateOrderRequest) (*apptrade.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.CreateOrderResponse), args.Error(1)
}

// MockReportOps is a mock implementation of ReportOps
type MockReportOps struct {
	mock.Mock
}

func (m *MockReportOps) AnalyzeInventory(ctx context.Context) (*analysis.InventoryAnalysisResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.InventoryAnalysisResponse), args.Error(1)
}

func (m *MockReportOps) AnalyzeSales(ctx context.Context, periodDays int) (*analysis.SalesAnalysisResponse, error) {
	args := m.Called(ctx, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.SalesAnalysisResponse), args.Error(1)
}

func (m *MockReportOps) BusinessReport(ctx context.Context) (*analysis.BusinessReportResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.BusinessReportResponse), args.Error(1)
}

type dispatcherFixtures struct {
	products   *MockProductOps
	orders     *MockOrderOps
	reports    *MockReportOps
	dispatcher *Dispatcher
}

func newDispatcherFixtures() *dispatcherFixtures {
	products := new(MockProductOps)
	orders := new(MockOrderOps)
	reports := new(MockReportOps)
	return &dispatcherFixtures{
		products:   products,
		orders:     orders,
		reports:    reports,
		dispatcher: NewDispatcher(NewClassifier(), products, orders, reports),
	}
}

func TestDispatchAnalysisWorkflows(t *testing.T) {
	ctx := context.Background()

	t.Run("free text routes to inventory analysis", func(t *testing.T) {
		f := newDispatcherFixtures()
		report := &analysis.InventoryAnalysisResponse{
			Summary: "3 products, 43 units on hand.",
			Visualizations: []analysis.Visualization{
				analysis.NewPieChart("Status", []string{"normal"}, []float64{3}),
			},
			Advisory: "Restock soon.",
		}
		f.reports.On("AnalyzeInventory", ctx).Return(report, nil)

		env := f.dispatcher.Dispatch(ctx, Request{Message: "analiza el inventario"})

		assert.Equal(t, string(WorkflowInventoryAnalysis), env.WorkflowID)
		assert.Contains(t, env.Response, "3 products")
		assert.Contains(t, env.Response, "Restock soon.")
		assert.Same(t, report, env.Data)
		assert.Nil(t, env.Charts)
	})

	t.Run("explicit workflow tag bypasses classification", func(t *testing.T) {
		f := newDispatcherFixtures()
		report := &analysis.SalesAnalysisResponse{Summary: "2 orders."}
		f.reports.On("AnalyzeSales", ctx, 7).Return(report, nil)

		env := f.dispatcher.Dispatch(ctx, Request{
			Message:  "whatever text",
			Workflow: "sales-analysis",
			Context:  map[string]any{"period_days": float64(7)},
		})

		assert.Equal(t, string(WorkflowSalesAnalysis), env.WorkflowID)
		f.reports.AssertCalled(t, "AnalyzeSales", ctx, 7)
	})

	t.Run("unknown explicit tag degrades to help", func(t *testing.T) {
		f := newDispatcherFixtures()

		env := f.dispatcher.Dispatch(ctx, Request{Message: "hola", Workflow: "drop-tables"})

		assert.Equal(t, string(WorkflowHelp), env.WorkflowID)
		assert.Contains(t, env.Response, "I can help you with")
		f.reports.AssertNotCalled(t, "BusinessReport", mock.Anything)
	})
}

func TestDispatchCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("structured context executes the sale", func(t *testing.T) {
		f := newDispatcherFixtures()
		resp := &apptrade.CreateOrderResponse{
			Order: apptrade.OrderResponse{
				OrderNumber:  "SO-2026-00042",
				CustomerName: "Maria Lopez",
				TotalAmount:  decimal.NewFromInt(2000),
				Items:        []apptrade.OrderItemResponse{{ProductName: "Laptop HP", Quantity: 2}},
			},
			InventoryUpdates: []apptrade.InventoryUpdate{{ProductName: "Laptop HP", QuantitySold: 2}},
		}
		f.orders.On("CreateOrderWithInventorySync", ctx, mock.AnythingOfType("trade.CreateOrderRequest")).Return(resp, nil)

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "vende 2 laptops a Maria",
			Context: map[string]any{
				"customer_name": "Maria Lopez",
				"items": []any{
					map[string]any{"product_name": "Laptop HP", "quantity": float64(2)},
				},
			},
		})

		assert.Equal(t, string(WorkflowCreateSale), env.WorkflowID)
		assert.Contains(t, env.Response, "SO-2026-00042")
		assert.Contains(t, env.Response, "2000.00")
		assert.Same(t, resp, env.Data)
		assert.Nil(t, env.Charts)
	})

	t.Run("missing items asks for them instead of failing", func(t *testing.T) {
		f := newDispatcherFixtures()

		env := f.dispatcher.Dispatch(ctx, Request{Message: "quiero registrar una venta"})

		assert.Equal(t, string(WorkflowCreateSale), env.WorkflowID)
		assert.Contains(t, env.Response, "at least one item")
		f.orders.AssertNotCalled(t, "CreateOrderWithInventorySync", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock becomes a readable error turn", func(t *testing.T) {
		f := newDispatcherFixtures()
		f.orders.On("CreateOrderWithInventorySync", ctx, mock.AnythingOfType("trade.CreateOrderRequest")).
			Return(nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for \"Laptop HP\": requested 99, available 2"))

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "vende 99 laptops",
			Context: map[string]any{
				"items": []any{map[string]any{"product_name": "Laptop HP", "quantity": float64(99)}},
			},
		})

		assert.Equal(t, string(WorkflowCreateSale), env.WorkflowID)
		assert.Contains(t, env.Response, "Insufficient stock")
		assert.Contains(t, env.Response, "available 2")
		assert.Nil(t, env.Data)
	})
}

func TestDispatchProductWorkflows(t *testing.T) {
	ctx := context.Background()

	t.Run("add product from context", func(t *testing.T) {
		f := newDispatcherFixtures()
		created := &appcatalog.ProductWithStockResponse{Name: "Laptop HP", SKU: "SKU-20260115103000", Quantity: 10}
		f.products.On("Create", ctx, mock.AnythingOfType("catalog.CreateProductRequest")).Return(created, nil)

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "agregar producto",
			Context: map[string]any{"name": "Laptop HP", "price": 999.99, "quantity": float64(10)},
		})

		assert.Equal(t, string(WorkflowAddProduct), env.WorkflowID)
		assert.Contains(t, env.Response, "SKU-20260115103000")
	})

	t.Run("batch add reports partial success", func(t *testing.T) {
		f := newDispatcherFixtures()
		batch := &appcatalog.BatchCreateResponse{
			Created: []appcatalog.ProductWithStockResponse{{Name: "Laptop HP"}},
			Failed:  []appcatalog.BatchItemFailure{{Index: 1, Name: "Mouse", Reason: "already exists"}},
		}
		f.products.On("CreateBatch", ctx, mock.AnythingOfType("[]catalog.CreateProductRequest")).Return(batch, nil)

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "agregar producto",
			Context: map[string]any{
				"products": []any{
					map[string]any{"name": "Laptop HP", "price": 999.99},
					map[string]any{"name": "Mouse", "price": 25.5},
				},
			},
		})

		assert.Contains(t, env.Response, "1 product(s)")
		assert.Contains(t, env.Response, "1 failed")
		assert.Same(t, batch, env.Data)
	})

	t.Run("edit product applies sparse patch", func(t *testing.T) {
		f := newDispatcherFixtures()
		id := uuid.New()
		updated := &appcatalog.ProductWithStockResponse{ID: id, Name: "Laptop HP"}
		f.products.On("Update", ctx, id, mock.AnythingOfType("catalog.UpdateProductRequest")).Return(updated, nil)

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "edita el producto",
			Context: map[string]any{"product_id": id.String(), "price": 899.99},
		})

		assert.Equal(t, string(WorkflowEditProduct), env.WorkflowID)
		assert.Contains(t, env.Response, "updated")
	})

	t.Run("delete product with malformed id fails readably", func(t *testing.T) {
		f := newDispatcherFixtures()

		env := f.dispatcher.Dispatch(ctx, Request{
			Message: "elimina el producto",
			Context: map[string]any{"product_id": "not-a-uuid"},
		})

		assert.Contains(t, env.Response, "Invalid product id")
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("list inventory summarizes the catalog", func(t *testing.T) {
		f := newDispatcherFixtures()
		list := &appcatalog.ProductListResponse{
			Summary: appcatalog.InventorySummary{
				TotalProducts: 3,
				TotalUnits:    43,
				TotalValue:    decimal.NewFromInt(40075),
			},
		}
		f.products.On("List", ctx, mock.AnythingOfType("catalog.ProductListFilter")).Return(list, nil)

		env := f.dispatcher.Dispatch(ctx, Request{Message: "muestra el inventario"})

		assert.Equal(t, string(WorkflowListInventory), env.WorkflowID)
		assert.Contains(t, env.Response, "3 product(s)")
		assert.Contains(t, env.Response, "40075.00")
	})
}

func TestDispatchHelpFallback(t *testing.T) {
	ctx := context.Background()
	f := newDispatcherFixtures()

	env := f.dispatcher.Dispatch(ctx, Request{Message: "xyzzy"})

	assert.Equal(t, string(WorkflowHelp), env.WorkflowID)
	assert.Contains(t, env.Response, "I can help you with")
}

func TestDecodeParams(t *testing.T) {
	params, err := decodeParams[apptrade.CreateOrderRequest](map[string]any{
		"customer_name": "Maria Lopez",
		"items": []any{
			map[string]any{"product_name": "Laptop HP", "quantity": float64(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Lopez", params.CustomerName)
	require.Len(t, params.Items, 1)
	assert.Equal(t, "Laptop HP", params.Items[0].ProductName)
	assert.Equal(t, 2, params.Items[0].Quantity)

	empty, err := decodeParams[apptrade.CreateOrderRequest](nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
