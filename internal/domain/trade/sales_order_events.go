package trade

import (
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

const AggregateTypeSalesOrder = "SalesOrder"

const (
	EventTypeOrderCreated   = "trade.order.created"
	EventTypeOrderCompleted = "trade.order.completed"
)

// OrderCreatedEvent is raised when a sales order is opened
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer_name"`
}

func NewOrderCreatedEvent(order *SalesOrder) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeSalesOrder, order.ID),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
	}
}

// OrderCompletedEvent is raised when a sales order is fulfilled
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

func NewOrderCompletedEvent(order *SalesOrder) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeSalesOrder, order.ID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		ItemCount:       order.ItemCount(),
	}
}
