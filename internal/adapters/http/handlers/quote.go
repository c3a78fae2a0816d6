package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// QuoteHandler handles the public quote endpoints.
type QuoteHandler struct {
	service        *app.QuoteService
	allowAnonymous bool
}

// NewQuoteHandler creates a new quote handler. allowAnonymous lets callers
// without an approved account submit quotes.
func NewQuoteHandler(service *app.QuoteService, allowAnonymous bool) *QuoteHandler {
	return &QuoteHandler{
		service:        service,
		allowAnonymous: allowAnonymous,
	}
}

// ListQuotes handles GET /api/v1/quotes
// Returns approved quotes, newest first.
//
// @Summary List approved quotes
// @Tags quotes
// @Produce json
// @Param limit query int false "Page size (1-100)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	page, err := h.service.ListApproved(c.Request.Context(), req.GetLimit(dto.DefaultLimit), req.Cursor)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page.Items, page.NextCursor, dto.NewQuoteResponse))
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Returns a random approved quote.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.Random(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// GetLatestQuote handles GET /api/v1/quotes/latest
func (h *QuoteHandler) GetLatestQuote(c *gin.Context) {
	quote, err := h.service.Latest(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// GetQuoteByID handles GET /api/v1/quotes/:id
// Quotes that are not approved are reported as missing.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	quote, err := h.service.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// SubmitQuote handles POST /api/v1/quotes
// Creates a PENDING quote. Resubmitting existing content returns the
// stored quote.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	submittedBy := req.SubmittedBy
	if identity := middleware.IdentityFrom(c); identity != nil {
		name := identity.DisplayName
		if name == "" {
			name = domain.EmailLocalPart(identity.Email)
		}

		submittedBy = &name
	}

	quote, err := h.service.Submit(c.Request.Context(), app.SubmitQuote{
		Content:     req.Content,
		Source:      req.Source,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// LikeQuote handles POST /api/v1/quotes/:id/like
func (h *QuoteHandler) LikeQuote(c *gin.Context) {
	quote, err := h.service.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// Submissions require an approved account unless anonymous submission is
// enabled, in which case a presented credential still names the submitter.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, authn middleware.Authenticator) {
	submitAuth := middleware.RequireApprovedUser(authn)
	if h.allowAnonymous {
		submitAuth = middleware.OptionalIdentity(authn)
	}

	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/latest", h.GetLatestQuote)
	quotes.GET("/:id", h.GetQuoteByID)
	quotes.POST("", submitAuth, h.SubmitQuote)
	quotes.POST("/:id/like", h.LikeQuote)
}
