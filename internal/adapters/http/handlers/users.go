package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/app"
)

// UserHandler handles self-registration.
type UserHandler struct {
	service *app.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *app.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/users
// Creates a PENDING account that an admin must approve.
//
// @Summary Register an account
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "Registration"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), app.RegisterUser{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// RegisterUserRoutes registers the registration route.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.Register)
}
