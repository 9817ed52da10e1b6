package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/salesdesk/backend/internal/application/catalog"
	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
)

// GormCatalogTransactionScope implements the catalog TransactionScope using
// GORM transactions. Product and stock writes commit or roll back together.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StockRepo returns the stock item repository scoped to the current transaction
func (r *gormCatalogRepositories) StockRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// Ensure GormCatalogTransactionScope implements TransactionScope
var _ appcatalog.TransactionScope = (*GormCatalogTransactionScope)(nil)

// Ensure gormCatalogRepositories implements TransactionalRepositories
var _ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)
