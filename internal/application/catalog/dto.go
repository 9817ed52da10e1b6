package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/inventory"
)

// CreateProductRequest represents a request to register a new product
// together with its initial stock.
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=2000"`
	Category     string           `json:"category"`
	Price        decimal.Decimal  `json:"price" binding:"required"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	SKU          string           `json:"sku" binding:"omitempty,max=100"`
	Quantity     int              `json:"quantity" binding:"min=0"`
	MinThreshold *int             `json:"min_threshold"`
	MaxThreshold *int             `json:"max_threshold"`
	Location     string           `json:"location"`
}

// UpdateProductRequest is a sparse patch; only supplied fields change.
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Quantity     *int             `json:"quantity"`
	MinThreshold *int             `json:"min_threshold"`
	MaxThreshold *int             `json:"max_threshold"`
	Location     *string          `json:"location"`
}

// ProductWithStockResponse joins a product with its stock record for API responses
type ProductWithStockResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	Price           decimal.Decimal `json:"price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Quantity        int             `json:"quantity"`
	MinThreshold    int             `json:"min_threshold"`
	MaxThreshold    int             `json:"max_threshold"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=out_of_stock critical low normal"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InventorySummary aggregates the listed products
type InventorySummary struct {
	TotalProducts int64           `json:"total_products"`
	TotalUnits    int             `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
	StatusCounts  map[string]int  `json:"status_counts"`
}

// ProductListResponse is the product list payload
type ProductListResponse struct {
	Products []ProductWithStockResponse `json:"products"`
	Summary  InventorySummary           `json:"summary"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

// BatchItemFailure records a single rejected entry of a batch create
type BatchItemFailure struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchCreateResponse reports a batch create; entries succeed or fail independently
type BatchCreateResponse struct {
	Created []ProductWithStockResponse `json:"created"`
	Failed  []BatchItemFailure         `json:"failed"`
}

// ToProductWithStockResponse converts a product and its stock item to a response
func ToProductWithStockResponse(p *catalog.Product, s *inventory.StockItem) ProductWithStockResponse {
	resp := ProductWithStockResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Category:        string(p.Category),
		CategoryDisplay: p.Category.DisplayName(),
		Price:           p.Price,
		UnitCost:        p.UnitCost,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
	if s != nil {
		resp.Quantity = s.Quantity
		resp.MinThreshold = s.MinThreshold
		resp.MaxThreshold = s.MaxThreshold
		resp.Location = string(s.Location)
		resp.Status = string(s.Status())
	}
	return resp
}
