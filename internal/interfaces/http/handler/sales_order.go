package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/backend/internal/application/trade"
	domtrade "github.com/salesdesk/backend/internal/domain/trade"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

// SalesOrderHandler handles the sales API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orders *trade.OrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orders *trade.OrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orders: orders}
}

// RegisterRoutes registers sales routes
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("/create-order-with-inventory-sync", h.CreateOrder)
		sales.GET("/list", h.List)
		sales.GET("/order/:id", h.GetOrder)
		sales.GET("/status", h.Status)
	}
}

// CreateOrder records a sale and deducts stock in one transaction
func (h *SalesOrderHandler) CreateOrder(c *gin.Context) {
	var req trade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.orders.CreateOrderWithInventorySync(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List lists sales orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter trade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	list, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, list.Total, list.Page, list.PageSize)
}

// GetOrder returns a single order by id
func (h *SalesOrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "id must be a valid UUID")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Status returns order counts by status
func (h *SalesOrderHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	counts := make(map[string]int64, 3)
	for _, status := range []domtrade.OrderStatus{
		domtrade.OrderStatusPending,
		domtrade.OrderStatusCompleted,
		domtrade.OrderStatusCancelled,
	} {
		count, err := h.orders.CountByStatus(ctx, status)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		counts[string(status)] = count
	}

	h.Success(c, gin.H{"status_counts": counts})
}
