package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// StockHandler handles stock ledger endpoints for stock admins
type StockHandler struct {
	BaseHandler
	stockService *appcatalog.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *appcatalog.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Adjust handles POST /api/v1/stock/:id/actions
func (h *StockHandler) Adjust(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcatalog.StockActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.stockService.AdjustStock(c.Request.Context(), productID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Summary handles GET /api/v1/stock/summary
func (h *StockHandler) Summary(c *gin.Context) {
	summary, err := h.stockService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
