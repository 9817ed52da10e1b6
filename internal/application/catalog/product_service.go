package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
)

// ProductService handles product intake, edits and catalog queries.
// Product and stock writes always go through the transaction scope so the
// catalog and the stock ledger never drift apart.
type ProductService struct {
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockItemRepository
	scope       TransactionScope
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockItemRepository,
	scope TransactionScope,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		scope:       scope,
	}
}

// Create registers a product and its initial stock in one transaction
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductWithStockResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	exists, err := s.productRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product %q already exists", name))
	}

	sku, err := s.resolveSKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}

	price := valueobject.NewMoneyUSD(req.Price)
	product, err := catalog.NewProduct(sku, name, catalog.ParseCategory(req.Category), price)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		product.SetDescription(req.Description)
	}
	if req.UnitCost != nil {
		if err := product.SetUnitCost(*req.UnitCost); err != nil {
			return nil, err
		}
	}

	stock, err := inventory.NewStockItem(product.ID, req.Quantity, req.MinThreshold, req.MaxThreshold)
	if err != nil {
		return nil, err
	}
	if req.Location != "" {
		if err := stock.SetLocation(inventory.Location(req.Location)); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.StockRepo().Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	resp := ToProductWithStockResponse(product, stock)
	return &resp, nil
}

// CreateBatch registers several products; each entry succeeds or fails on
// its own so one bad row does not void the rest.
func (s *ProductService) CreateBatch(ctx context.Context, reqs []CreateProductRequest) (*BatchCreateResponse, error) {
	result := &BatchCreateResponse{
		Created: []ProductWithStockResponse{},
		Failed:  []BatchItemFailure{},
	}

	for i, req := range reqs {
		created, err := s.Create(ctx, req)
		if err != nil {
			result.Failed = append(result.Failed, BatchItemFailure{
				Index:  i,
				Name:   req.Name,
				Reason: err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *created)
	}

	return result, nil
}

// Update applies a sparse patch across the product and its stock record
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductWithStockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.FindByProductID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != product.Name {
		name := strings.TrimSpace(*req.Name)
		exists, err := s.productRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product %q already exists", name))
		}
		if err := product.Rename(name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Category != nil {
		if err := product.SetCategory(catalog.ParseCategory(*req.Category)); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil {
		if err := product.SetUnitCost(*req.UnitCost); err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		if err := stock.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.MinThreshold != nil || req.MaxThreshold != nil {
		if err := stock.SetThresholds(req.MinThreshold, req.MaxThreshold); err != nil {
			return nil, err
		}
	}
	if req.Location != nil {
		if err := stock.SetLocation(inventory.Location(*req.Location)); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.StockRepo().Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	resp := ToProductWithStockResponse(product, stock)
	return &resp, nil
}

// Delete removes a product and its stock record in one transaction
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.StockRepo().DeleteByProductID(ctx, id); err != nil {
			return err
		}
		return repos.ProductRepo().Delete(ctx, id)
	})
}

// GetByID returns a product joined with its stock record
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductWithStockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.FindByProductID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductWithStockResponse(product, stock)
	return &resp, nil
}

// List returns products with their stock and a summary of the whole page set
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ProductListResponse, error) {
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
	if filter.Category != "" {
		domainFilter.Filters["category"] = string(catalog.ParseCategory(filter.Category))
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
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

	summary := InventorySummary{
		TotalValue:   decimal.Zero,
		StatusCounts: map[string]int{},
	}
	views := make([]ProductWithStockResponse, 0, len(products))
	for _, p := range products {
		stock := stockByProduct[p.ID]
		view := ToProductWithStockResponse(p, stock)
		if filter.Status != "" && view.Status != filter.Status {
			continue
		}
		views = append(views, view)

		summary.TotalUnits += view.Quantity
		summary.TotalValue = summary.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(view.Quantity))))
		if view.Status != "" {
			summary.StatusCounts[view.Status]++
		}
	}
	summary.TotalProducts = total

	return &ProductListResponse{
		Products: views,
		Summary:  summary,
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.PageSize,
	}, nil
}

// resolveSKU validates a caller-supplied SKU or issues a generated one.
// Generated SKUs are timestamp based; a collision within the same second
// gets a numeric suffix.
func (s *ProductService) resolveSKU(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		sku := strings.ToUpper(strings.TrimSpace(requested))
		exists, err := s.productRepo.ExistsBySKU(ctx, sku)
		if err != nil {
			return "", err
		}
		if exists {
			return "", shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product with SKU %q already exists", sku))
		}
		return sku, nil
	}

	base := catalog.GenerateSKU(time.Now())
	sku := base
	for suffix := 1; ; suffix++ {
		exists, err := s.productRepo.ExistsBySKU(ctx, sku)
		if err != nil {
			return "", err
		}
		if !exists {
			return sku, nil
		}
		sku = fmt.Sprintf("%s-%d", base, suffix)
	}
}
