package catalog

import (
	"context"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the catalog repositories.
// A product and its stock record are created, edited and removed together;
// the scope keeps those writes in one database transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the same transaction
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	StockRepo() inventory.StockItemRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, stockRepo inventory.StockItemRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, stockRepo: stockRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
