package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/trade"
)

// OrderItemRequest identifies a product either by id or by name.
// The chat workflows resolve products by the name the operator typed;
// the REST surface sends ids.
type OrderItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a request to record a sale
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=255"`
	PaymentMethod string             `json:"payment_method" binding:"omitempty,oneof=credit_card debit_card cash transfer"`
	Notes         string             `json:"notes" binding:"max=2000"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemResponse is a line on an order in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InventoryUpdate reports the stock movement a sale caused for one product
type InventoryUpdate struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	QuantitySold     int       `json:"quantity_sold"`
}

// OrderResponse represents a sales order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CreateOrderResponse pairs the recorded order with the stock movements
// applied in the same transaction.
type CreateOrderResponse struct {
	Order            OrderResponse     `json:"order"`
	InventoryUpdates []InventoryUpdate `json:"inventory_updates"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderListResponse is the order list payload
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderResponse converts a domain SalesOrder to OrderResponse
func ToOrderResponse(o *trade.SalesOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}
