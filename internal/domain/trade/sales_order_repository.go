package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// SalesOrderRepository persists sales orders
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*SalesOrder, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*SalesOrder, error)
	Save(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
	SumTotalAmount(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	// GenerateOrderNumber issues the next number in the SO-YYYY-NNNNN sequence
	GenerateOrderNumber(ctx context.Context) (string, error)
}
