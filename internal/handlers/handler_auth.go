package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geek-edu/courseledger/internal/apperrors"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles token issuance.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue a caller identity token
// @Description Returns a JWT whose subject is the requested account ID. The configured administrator account additionally requires the admin secret.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid admin secret"
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.IssueToken(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Rejected admin token request", slog.String("account_id", req.AccountID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
