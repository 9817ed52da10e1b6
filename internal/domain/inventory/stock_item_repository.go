package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// StockItemRepository persists stock items
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]*StockItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*StockItem, error)
	FindBelowMinThreshold(ctx context.Context) ([]*StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	// SaveWithLock persists the item only if its version has not moved
	// since it was loaded, returning ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, item *StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
