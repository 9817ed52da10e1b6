package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/domain/shared"
)

func intPtr(v int) *int { return &v }

func TestNewStockItem(t *testing.T) {
	productID := uuid.New()

	t.Run("default thresholds derive from quantity", func(t *testing.T) {
		item, err := NewStockItem(productID, 50, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 50, item.Quantity)
		assert.Equal(t, 10, item.MinThreshold)
		assert.Equal(t, 100, item.MaxThreshold)
		assert.Equal(t, LocationWarehouseA, item.Location)
		assert.Equal(t, 1, item.Version)
	})

	t.Run("min threshold floor is 5", func(t *testing.T) {
		item, err := NewStockItem(productID, 3, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 5, item.MinThreshold)
		assert.Equal(t, 6, item.MaxThreshold)
	})

	t.Run("zero quantity still gets usable thresholds", func(t *testing.T) {
		item, err := NewStockItem(productID, 0, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 5, item.MinThreshold)
		assert.Equal(t, 5, item.MaxThreshold)
	})

	t.Run("explicit thresholds are kept", func(t *testing.T) {
		item, err := NewStockItem(productID, 20, intPtr(8), intPtr(40))
		require.NoError(t, err)

		assert.Equal(t, 8, item.MinThreshold)
		assert.Equal(t, 40, item.MaxThreshold)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := NewStockItem(productID, -1, nil, nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("max below min is rejected", func(t *testing.T) {
		_, err := NewStockItem(productID, 20, intPtr(10), intPtr(5))
		require.Error(t, err)
	})
}

func TestStockItemStatus(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name     string
		quantity int
		min      int
		expected StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, StockStatusOutOfStock},
		{"at minimum is critical", 10, 10, StockStatusCritical},
		{"below minimum is critical", 4, 10, StockStatusCritical},
		{"between min and twice min is low", 15, 10, StockStatusLow},
		{"at twice min is low", 20, 10, StockStatusLow},
		{"above twice min is normal", 21, 10, StockStatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewStockItem(productID, tt.quantity, intPtr(tt.min), intPtr(1000))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, item.Status())
		})
	}
}

func TestStockItemDeduct(t *testing.T) {
	productID := uuid.New()

	t.Run("deduct reduces quantity and bumps version", func(t *testing.T) {
		item, err := NewStockItem(productID, 10, nil, nil)
		require.NoError(t, err)
		item.ClearDomainEvents()

		err = item.Deduct(3)
		require.NoError(t, err)

		assert.Equal(t, 7, item.Quantity)
		assert.Equal(t, 2, item.Version)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		deducted, ok := events[0].(*StockDeductedEvent)
		require.True(t, ok)
		assert.Equal(t, 10, deducted.PreviousQuantity)
		assert.Equal(t, 7, deducted.NewQuantity)
		assert.Equal(t, 3, deducted.QuantitySold)
	})

	t.Run("deduct beyond available fails", func(t *testing.T) {
		item, err := NewStockItem(productID, 2, nil, nil)
		require.NoError(t, err)

		err = item.Deduct(5)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "requested 5")
		assert.Contains(t, domainErr.Message, "available 2")
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("deduct of zero units fails", func(t *testing.T) {
		item, err := NewStockItem(productID, 2, nil, nil)
		require.NoError(t, err)

		err = item.Deduct(0)
		require.Error(t, err)
	})
}

func TestStockItemSetQuantity(t *testing.T) {
	item, err := NewStockItem(uuid.New(), 10, nil, nil)
	require.NoError(t, err)
	item.ClearDomainEvents()

	err = item.SetQuantity(25)
	require.NoError(t, err)
	assert.Equal(t, 25, item.Quantity)

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	adjusted, ok := events[0].(*StockAdjustedEvent)
	require.True(t, ok)
	assert.Equal(t, 10, adjusted.PreviousQuantity)
	assert.Equal(t, 25, adjusted.NewQuantity)

	err = item.SetQuantity(-1)
	require.Error(t, err)
}

func TestStockItemSetLocation(t *testing.T) {
	item, err := NewStockItem(uuid.New(), 10, nil, nil)
	require.NoError(t, err)

	require.NoError(t, item.SetLocation(LocationStoreFront))
	assert.Equal(t, LocationStoreFront, item.Location)

	err = item.SetLocation(Location("BACK_OFFICE"))
	require.Error(t, err)
	assert.Equal(t, LocationStoreFront, item.Location)
}

func TestStockItemSetThresholds(t *testing.T) {
	item, err := NewStockItem(uuid.New(), 100, nil, nil)
	require.NoError(t, err)

	require.NoError(t, item.SetThresholds(intPtr(30), nil))
	assert.Equal(t, 30, item.MinThreshold)

	err = item.SetThresholds(nil, intPtr(10))
	require.Error(t, err)
}
