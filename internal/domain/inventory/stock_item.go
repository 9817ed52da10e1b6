package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Location identifies where stock for a product is held
type Location string

const (
	LocationWarehouseA Location = "WAREHOUSE_A"
	LocationWarehouseB Location = "WAREHOUSE_B"
	LocationStoreFront Location = "STORE_FRONT"
	LocationSupplier   Location = "SUPPLIER"
)

// IsValid returns true if the location is one of the known values
func (l Location) IsValid() bool {
	switch l {
	case LocationWarehouseA, LocationWarehouseB, LocationStoreFront, LocationSupplier:
		return true
	}
	return false
}

// StockStatus classifies on-hand quantity against the reorder thresholds
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusCritical   StockStatus = "critical"
	StockStatusLow        StockStatus = "low"
	StockStatusNormal     StockStatus = "normal"
)

// StockItem tracks the on-hand quantity for a single product.
// It is the aggregate root the order transaction manager locks against:
// the Version column backs the optimistic check that keeps two concurrent
// orders from jointly overselling the same product.
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity     int       `gorm:"not null;default:0"`
	MinThreshold int       `gorm:"not null;default:10"`
	MaxThreshold int       `gorm:"not null;default:100"`
	Location     Location  `gorm:"type:varchar(20);not null;default:'WAREHOUSE_A'"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates stock tracking for a product.
// Threshold defaults follow the sizing rule used at product intake:
// min = max(5, quantity/5), max = quantity*2.
func NewStockItem(productID uuid.UUID, quantity int, minThreshold, maxThreshold *int) (*StockItem, error) {
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	item := &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          quantity,
		Location:          LocationWarehouseA,
	}

	if minThreshold != nil {
		if *minThreshold < 0 {
			return nil, shared.NewDomainError("INVALID_THRESHOLD", "Minimum stock threshold cannot be negative")
		}
		item.MinThreshold = *minThreshold
	} else {
		item.MinThreshold = defaultMinThreshold(quantity)
	}

	if maxThreshold != nil {
		if *maxThreshold < item.MinThreshold {
			return nil, shared.NewDomainError("INVALID_THRESHOLD", "Maximum stock threshold cannot be below the minimum")
		}
		item.MaxThreshold = *maxThreshold
	} else {
		item.MaxThreshold = quantity * 2
		if item.MaxThreshold < item.MinThreshold {
			item.MaxThreshold = item.MinThreshold
		}
	}

	return item, nil
}

func defaultMinThreshold(quantity int) int {
	min := quantity / 5
	if min < 5 {
		min = 5
	}
	return min
}

// SetQuantity replaces the on-hand quantity (stock correction / manual edit)
func (s *StockItem) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	previous := s.Quantity
	s.Quantity = quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockAdjustedEvent(s, previous))

	return nil
}

// Deduct removes sold units from stock. The caller must have verified
// availability inside the same transaction; this re-checks as a guard.
func (s *StockItem) Deduct(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be at least 1")
	}
	if quantity > s.Quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock: requested %d, available %d", quantity, s.Quantity))
	}

	previous := s.Quantity
	s.Quantity -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockDeductedEvent(s, previous, quantity))

	return nil
}

// SetThresholds updates the reorder thresholds
func (s *StockItem) SetThresholds(minThreshold, maxThreshold *int) error {
	newMin := s.MinThreshold
	newMax := s.MaxThreshold
	if minThreshold != nil {
		newMin = *minThreshold
	}
	if maxThreshold != nil {
		newMax = *maxThreshold
	}
	if newMin < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum stock threshold cannot be negative")
	}
	if newMax < newMin {
		return shared.NewDomainError("INVALID_THRESHOLD", "Maximum stock threshold cannot be below the minimum")
	}

	s.MinThreshold = newMin
	s.MaxThreshold = newMax
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetLocation moves the stock to a different location
func (s *StockItem) SetLocation(location Location) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown inventory location: "+string(location))
	}

	s.Location = location
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Status derives the stock health from quantity and thresholds
func (s *StockItem) Status() StockStatus {
	switch {
	case s.Quantity == 0:
		return StockStatusOutOfStock
	case s.Quantity <= s.MinThreshold:
		return StockStatusCritical
	case s.Quantity <= s.MinThreshold*2:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// AvailableForSale returns true if at least one unit is on hand
func (s *StockItem) AvailableForSale() bool {
	return s.Quantity > 0
}

// IsLowStock returns true when the quantity has fallen to the minimum threshold
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.MinThreshold
}
