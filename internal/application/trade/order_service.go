package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/trade"
)

// OrderService records sales and keeps stock synchronized with them.
type OrderService struct {
	orderRepo trade.SalesOrderRepository
	scope     TransactionScope
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.SalesOrderRepository, scope TransactionScope) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		scope:     scope,
	}
}

// resolvedLine carries a validated order line through the commit phase
type resolvedLine struct {
	product *catalog.Product
	request OrderItemRequest
}

// stockDeduction accumulates the total units to deduct per product, so an
// order listing the same product on several lines writes its stock row once.
type stockDeduction struct {
	product  *catalog.Product
	stock    *inventory.StockItem
	quantity int
}

// CreateOrderWithInventorySync records a sale and deducts the sold units
// from stock in a single transaction. Validation runs over every line
// before any write, so a failure on the third line leaves the first two
// untouched. Stock writes use the optimistic version check; a concurrent
// sale of the same product rolls this one back with a conflict error.
func (s *OrderService) CreateOrderWithInventorySync(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "An order needs at least one item")
	}

	var result *CreateOrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, deductions, err := s.resolveLines(ctx, repos, req.Items)
		if err != nil {
			return err
		}

		orderNumber, err := repos.OrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		order, err := trade.NewSalesOrder(orderNumber, strings.TrimSpace(req.CustomerName), trade.PaymentMethod(req.PaymentMethod))
		if err != nil {
			return err
		}
		if req.Notes != "" {
			order.SetNotes(req.Notes)
		}

		for _, line := range lines {
			if err := order.AddItem(line.product.ID, line.product.Name, line.product.SKU, line.request.Quantity, line.product.PriceMoney()); err != nil {
				return err
			}
		}

		updates := make([]InventoryUpdate, 0, len(deductions))
		for _, d := range deductions {
			previous := d.stock.Quantity
			if err := d.stock.Deduct(d.quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().SaveWithLock(ctx, d.stock); err != nil {
				return err
			}

			updates = append(updates, InventoryUpdate{
				ProductID:        d.product.ID,
				ProductName:      d.product.Name,
				PreviousQuantity: previous,
				NewQuantity:      d.stock.Quantity,
				QuantitySold:     d.quantity,
			})
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		result = &CreateOrderResponse{
			Order:            ToOrderResponse(order),
			InventoryUpdates: updates,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// resolveLines looks up each requested product and verifies availability.
// Quantities are summed per product, so two lines for the same product are
// checked against stock as one demand and deducted once. Nothing is written
// here; errors name the offending product so the chat surface can echo
// them verbatim.
func (s *OrderService) resolveLines(ctx context.Context, repos TransactionalRepositories, items []OrderItemRequest) ([]resolvedLine, []*stockDeduction, error) {
	lines := make([]resolvedLine, 0, len(items))
	deductions := make([]*stockDeduction, 0, len(items))
	byProduct := make(map[uuid.UUID]*stockDeduction, len(items))

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}

		product, err := s.resolveProduct(ctx, repos, item)
		if err != nil {
			return nil, nil, err
		}

		deduction, ok := byProduct[product.ID]
		if !ok {
			stock, err := repos.StockRepo().FindByProductID(ctx, product.ID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, nil, shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("No stock record for %q", product.Name))
				}
				return nil, nil, err
			}
			deduction = &stockDeduction{product: product, stock: stock}
			byProduct[product.ID] = deduction
			deductions = append(deductions, deduction)
		}

		deduction.quantity += item.Quantity
		if deduction.stock.Quantity < deduction.quantity {
			return nil, nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %q: requested %d, available %d", product.Name, deduction.quantity, deduction.stock.Quantity))
		}

		lines = append(lines, resolvedLine{product: product, request: item})
	}
	return lines, deductions, nil
}

func (s *OrderService) resolveProduct(ctx context.Context, repos TransactionalRepositories, item OrderItemRequest) (*catalog.Product, error) {
	if item.ProductID != nil {
		product, err := repos.ProductRepo().FindByID(ctx, *item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
					fmt.Sprintf("Product %s not found", item.ProductID))
			}
			return nil, err
		}
		return product, nil
	}

	name := strings.TrimSpace(item.ProductName)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Each item needs a product id or a product name")
	}

	product, err := repos.ProductRepo().FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %q not found", name))
		}
		return nil, err
	}
	return product, nil
}

// GetByID returns a single order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByOrderNumber returns a single order by its business number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*OrderListResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}

	return &OrderListResponse{
		Orders:   responses,
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.PageSize,
	}, nil
}

// Complete marks an order as fulfilled
func (s *OrderService) Complete(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel voids a pending order. Stock sold on the order is returned.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	var result *OrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		for _, item := range order.Items {
			stock, err := repos.StockRepo().FindByProductID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			if err := stock.SetQuantity(stock.Quantity + item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().SaveWithLock(ctx, stock); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		resp := ToOrderResponse(order)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountByStatus counts orders in the given status
func (s *OrderService) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	return s.orderRepo.CountByStatus(ctx, status)
}
