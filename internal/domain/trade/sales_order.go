package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
)

// OrderStatus tracks the lifecycle of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod identifies how the customer paid
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodTransfer   PaymentMethod = "transfer"
)

// DefaultPaymentMethod is assumed when the caller does not specify one
const DefaultPaymentMethod = PaymentMethodCreditCard

// IsValid returns true if the payment method is one of the known values
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash, PaymentMethodTransfer:
		return true
	}
	return false
}

// OrderItem is a line on a sales order. Product name, SKU and unit price
// are copied at order time so the line survives later catalog edits.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	SKU         string          `gorm:"type:varchar(100);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrder is the order aggregate. Lines are appended while the order
// is being assembled; once persisted through the transaction manager the
// order is an immutable record of the sale.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName  string          `gorm:"type:varchar(255);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'credit_card'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes         string          `gorm:"type:text"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder starts an order for a customer. The order number comes
// from the repository sequence and is assigned by the caller.
func NewSalesOrder(orderNumber, customerName string, paymentMethod PaymentMethod) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+string(paymentMethod))
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      customerName,
		Status:            OrderStatusPending,
		PaymentMethod:     paymentMethod,
		TotalAmount:       decimal.Zero,
		Items:             []OrderItem{},
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line and rolls its subtotal into the order total
func (o *SalesOrder) AddItem(productID uuid.UUID, productName, sku string, quantity int, unitPrice valueobject.Money) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only pending orders accept new items")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if productName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item product name is required")
	}

	subtotal := unitPrice.MultiplyByInt(int64(quantity))

	item := OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Subtotal:    subtotal.Amount(),
	}

	o.Items = append(o.Items, item)
	o.TotalAmount = o.TotalAmount.Add(subtotal.Amount())
	o.UpdatedAt = time.Now()

	return nil
}

// Complete marks the order as fulfilled
func (o *SalesOrder) Complete() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be completed")
	}

	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// Cancel voids the order
func (o *SalesOrder) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}
	if o.Status == OrderStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Completed orders cannot be cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetNotes attaches free-form notes to the order
func (o *SalesOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// ItemCount returns the number of lines on the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// TotalUnits returns the total quantity across all lines
func (o *SalesOrder) TotalUnits() int {
	units := 0
	for _, item := range o.Items {
		units += item.Quantity
	}
	return units
}

// TotalMoney returns the order total as a money value
func (o *SalesOrder) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}
