package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/storefront/backend/internal/application/identity"
	appreview "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *appreview.ReviewService
	authService   *appidentity.AuthService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *appreview.ReviewService, authService *appidentity.AuthService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, authService: authService}
}

// Create handles POST /api/v1/products/:id/reviews.
// The reviewer name is snapshotted from the profile at submission time.
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appreview.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), productID, userID, profile.Name, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProduct handles GET /api/v1/products/:id/reviews
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

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

	resp, err := h.reviewService.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid review ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appreview.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), reviewID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/reviews/:id.
// Owners may delete their own review; admins may delete any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid review ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID, userID, isAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
