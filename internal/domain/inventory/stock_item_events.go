package inventory

import (
	"github.com/salesdesk/backend/internal/domain/shared"
)

const AggregateTypeStockItem = "StockItem"

const (
	EventTypeStockAdjusted = "inventory.stock.adjusted"
	EventTypeStockDeducted = "inventory.stock.deducted"
	EventTypeStockLow      = "inventory.stock.low"
)

// StockAdjustedEvent is raised when a stock quantity is manually corrected
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID        string `json:"product_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
}

func NewStockAdjustedEvent(item *StockItem, previousQuantity int) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeStockItem, item.ID),
		ProductID:        item.ProductID.String(),
		PreviousQuantity: previousQuantity,
		NewQuantity:      item.Quantity,
	}
}

// StockDeductedEvent is raised when units leave stock through a sale
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ProductID        string `json:"product_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	QuantitySold     int    `json:"quantity_sold"`
}

func NewStockDeductedEvent(item *StockItem, previousQuantity, quantitySold int) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeStockItem, item.ID),
		ProductID:        item.ProductID.String(),
		PreviousQuantity: previousQuantity,
		NewQuantity:      item.Quantity,
		QuantitySold:     quantitySold,
	}
}
