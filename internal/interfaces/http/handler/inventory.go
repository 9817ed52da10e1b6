package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/backend/internal/application/catalog"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles the product/stock API endpoints
type InventoryHandler struct {
	BaseHandler
	products *catalog.ProductService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(products *catalog.ProductService) *InventoryHandler {
	return &InventoryHandler{products: products}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/add-product", h.AddProduct)
		inventory.POST("/add-products", h.AddProducts)
		inventory.POST("/edit-product", h.EditProduct)
		inventory.POST("/update-stock", h.UpdateStock)
		inventory.DELETE("/product/:id", h.DeleteProduct)
		inventory.GET("/products-with-stock", h.ProductsWithStock)
		inventory.GET("/summary", h.Summary)
	}
}

// AddProduct creates a product with its initial stock record
func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// AddProducts creates multiple products; entries succeed or fail independently
func (h *InventoryHandler) AddProducts(c *gin.Context) {
	var req struct {
		Products []catalog.CreateProductRequest `json:"products" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.products.CreateBatch(c.Request.Context(), req.Products)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

type editProductRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	catalog.UpdateProductRequest
}

// EditProduct applies a sparse patch to a product and its stock record
func (h *InventoryHandler) EditProduct(c *gin.Context) {
	var req editProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	id, ok := parseUUID(req.ProductID)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "product_id must be a valid UUID")
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req.UpdateProductRequest)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

type updateStockRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"min=0"`
}

// UpdateStock sets the on-hand quantity for a product
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	id, ok := parseUUID(req.ProductID)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "product_id must be a valid UUID")
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, catalog.UpdateProductRequest{
		Quantity: &req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// DeleteProduct hard-deletes a product and its stock record
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "id must be a valid UUID")
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Product deleted"})
}

// ProductsWithStock lists products joined with their stock records
func (h *InventoryHandler) ProductsWithStock(c *gin.Context) {
	var filter catalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	list, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, list.Total, list.Page, list.PageSize)
}

// Summary returns the aggregate inventory summary
func (h *InventoryHandler) Summary(c *gin.Context) {
	list, err := h.products.List(c.Request.Context(), catalog.ProductListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list.Summary)
}
