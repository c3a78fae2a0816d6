package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// adminPageSize is the default page size of the moderation queue.
const adminPageSize = 50

// statusAll disables the status filter of the admin lists.
const statusAll = "ALL"

// AdminHandler handles the moderation endpoints. Every route requires an
// admin identity.
type AdminHandler struct {
	quotes *app.QuoteService
	users  *app.UserService
	stats  *app.StatsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(quotes *app.QuoteService, users *app.UserService, stats *app.StatsService) *AdminHandler {
	return &AdminHandler{
		quotes: quotes,
		users:  users,
		stats:  stats,
	}
}

// ListQuotes handles GET /api/v1/admin/quotes
// Lists quotes of any status. The status filter defaults to PENDING.
//
// @Summary List quotes for moderation
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, APPROVED, REJECTED or ALL"
// @Param limit query int false "Page size (1-100)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/admin/quotes [get]
func (h *AdminHandler) ListQuotes(c *gin.Context) {
	var req dto.AdminQuoteQuery
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	status, err := parseQuoteStatusFilter(req.Status)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.quotes.List(c.Request.Context(), status, req.GetLimit(adminPageSize), req.Cursor)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page.Items, page.NextCursor, dto.NewQuoteResponse))
}

// ApproveQuote handles POST /api/v1/admin/quotes/:id/approve
func (h *AdminHandler) ApproveQuote(c *gin.Context) {
	quote, err := h.quotes.Approve(c.Request.Context(), c.Param("id"), middleware.IdentityFrom(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RejectQuote handles POST /api/v1/admin/quotes/:id/reject
func (h *AdminHandler) RejectQuote(c *gin.Context) {
	quote, err := h.quotes.Reject(c.Request.Context(), c.Param("id"), middleware.IdentityFrom(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// EditQuote handles PATCH /api/v1/admin/quotes/:id
// Only the fields present in the body are changed.
//
// @Summary Edit a quote
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body dto.EditQuoteRequest true "Changes"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/admin/quotes/{id} [patch]
func (h *AdminHandler) EditQuote(c *gin.Context) {
	var req dto.EditQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	edit := app.EditQuote{
		Content: req.Content,
		Source:  req.Source,
	}

	if req.Status != nil {
		status, err := domain.ParseQuoteStatus(*req.Status)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		edit.Status = &status
	}

	quote, err := h.quotes.Edit(c.Request.Context(), c.Param("id"), edit, middleware.IdentityFrom(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ListUsers handles GET /api/v1/admin/users
// The status filter defaults to PENDING; ALL lists every account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.UserListQuery
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	var status *domain.UserStatus

	if raw := strings.TrimSpace(req.Status); !strings.EqualFold(raw, statusAll) {
		if raw == "" {
			raw = string(domain.UserStatusPending)
		}

		parsed, err := domain.ParseUserStatus(raw)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		status = &parsed
	}

	users, err := h.users.List(c.Request.Context(), status, req.IncludeAdmins)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ApproveUser handles POST /api/v1/admin/users/:email/approve
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	if err := h.users.Approve(c.Request.Context(), c.Param("email")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RejectUser handles POST /api/v1/admin/users/:email/reject
// Rejecting a registration deletes it.
func (h *AdminHandler) RejectUser(c *gin.Context) {
	if err := h.users.Reject(c.Request.Context(), c.Param("email")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetAdmin handles PUT /api/v1/admin/users/:email/admin
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req dto.SetAdminRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	err := h.users.SetAdmin(c.Request.Context(), c.Param("email"), *req.IsAdmin, middleware.IdentityFrom(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/v1/admin/users/:email
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("email"), middleware.IdentityFrom(c)); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats handles GET /api/v1/admin/stats
//
// @Summary Moderation dashboard counts
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Quotes: dto.QuoteCountsResponse{
			Total:    stats.Quotes.Total,
			Pending:  stats.Quotes.Pending,
			Approved: stats.Quotes.Approved,
			Rejected: stats.Quotes.Rejected,
		},
		PendingUsers: stats.PendingUsers,
	})
}

// RegisterAdminRoutes registers the admin routes under /admin, guarded by
// RequireAdmin.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authn middleware.Authenticator) {
	admin := rg.Group("/admin", middleware.RequireAdmin(authn))

	admin.GET("/quotes", h.ListQuotes)
	admin.POST("/quotes/:id/approve", h.ApproveQuote)
	admin.POST("/quotes/:id/reject", h.RejectQuote)
	admin.PATCH("/quotes/:id", h.EditQuote)

	admin.GET("/users", h.ListUsers)
	admin.POST("/users/:email/approve", h.ApproveUser)
	admin.POST("/users/:email/reject", h.RejectUser)
	admin.PUT("/users/:email/admin", h.SetAdmin)
	admin.DELETE("/users/:email", h.DeleteUser)

	admin.GET("/stats", h.GetStats)
}

// parseQuoteStatusFilter maps the status query parameter to a filter. An
// empty value means PENDING and ALL means no filter.
func parseQuoteStatusFilter(raw string) (*domain.QuoteStatus, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "":
		pending := domain.QuoteStatusPending
		return &pending, nil
	case strings.EqualFold(raw, statusAll):
		return nil, nil
	}

	status, err := domain.ParseQuoteStatus(raw)
	if err != nil {
		return nil, err
	}

	return &status, nil
}
