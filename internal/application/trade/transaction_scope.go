package trade

import (
	"context"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
	"github.com/salesdesk/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an
// order touches. Order creation writes the order and deducts stock in the
// same database transaction; either everything commits or nothing does.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the same transaction
type TransactionalRepositories interface {
	OrderRepo() trade.SalesOrderRepository
	ProductRepo() catalog.ProductRepository
	StockRepo() inventory.StockItemRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo   trade.SalesOrderRepository
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository {
	return s.orderRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// StockRepo returns the stock item repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockItemRepository {
	return s.stockRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
