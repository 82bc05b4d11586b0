package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/response"
)

type authService interface {
	Enabled() bool
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler exposes the operator login endpoint.
type AuthHandler struct {
	auth authService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Operator login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.auth.Enabled() {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "authentication is not configured"))
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}
