package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbackoffice "github.com/storefront/backend/internal/application/backoffice"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BackofficeHandler handles offline sales, employee and expense endpoints
type BackofficeHandler struct {
	BaseHandler
	backofficeService *appbackoffice.BackofficeService
}

// NewBackofficeHandler creates a new BackofficeHandler
func NewBackofficeHandler(backofficeService *appbackoffice.BackofficeService) *BackofficeHandler {
	return &BackofficeHandler{backofficeService: backofficeService}
}

func filterFromListRequest(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// parseDateRange reads optional from/to query params in RFC 3339 format.
// Missing bounds default to the unix epoch and now respectively.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	from := time.Unix(0, 0)
	to := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
		to = parsed
	}
	return from, to, nil
}

// ListOfflineSales handles GET /api/v1/backoffice/offline-sales
func (h *BackofficeHandler) ListOfflineSales(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		productID = &id
	}

	filter := filterFromListRequest(req)
	sales, total, err := h.backofficeService.ListOfflineSales(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// OfflineRevenue handles GET /api/v1/backoffice/offline-sales/revenue
func (h *BackofficeHandler) OfflineRevenue(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date range")
		return
	}

	revenue, err := h.backofficeService.OfflineRevenue(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"revenue": revenue, "from": from, "to": to})
}

// CreateEmployee handles POST /api/v1/backoffice/employees
func (h *BackofficeHandler) CreateEmployee(c *gin.Context) {
	var req appbackoffice.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.backofficeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateEmployee handles PUT /api/v1/backoffice/employees/:id
func (h *BackofficeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req appbackoffice.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.backofficeService.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListEmployees handles GET /api/v1/backoffice/employees
func (h *BackofficeHandler) ListEmployees(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	employees, err := h.backofficeService.ListEmployees(c.Request.Context(), filterFromListRequest(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// DeactivateEmployee handles POST /api/v1/backoffice/employees/:id/deactivate
func (h *BackofficeHandler) DeactivateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.backofficeService.DeactivateEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteEmployee handles DELETE /api/v1/backoffice/employees/:id
func (h *BackofficeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.backofficeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense handles POST /api/v1/backoffice/expenses
func (h *BackofficeHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appbackoffice.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.backofficeService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateExpense handles PUT /api/v1/backoffice/expenses/:id
func (h *BackofficeHandler) UpdateExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req appbackoffice.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.backofficeService.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListExpenses handles GET /api/v1/backoffice/expenses
func (h *BackofficeHandler) ListExpenses(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	expenses, err := h.backofficeService.ListExpenses(c.Request.Context(), c.Query("category"), filterFromListRequest(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// DeleteExpense handles DELETE /api/v1/backoffice/expenses/:id
func (h *BackofficeHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.backofficeService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TotalExpenses handles GET /api/v1/backoffice/expenses/total
func (h *BackofficeHandler) TotalExpenses(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date range")
		return
	}

	total, err := h.backofficeService.TotalExpenses(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total": total, "from": from, "to": to})
}
