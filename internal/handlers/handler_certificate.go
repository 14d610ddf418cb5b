package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// certificateHandler handles HTTP requests related to the certificate registry.
type certificateHandler struct {
	certificateService portssvc.CertificateSvcFacade
}

func newCertificateHandler(cs portssvc.CertificateSvcFacade) *certificateHandler {
	return &certificateHandler{certificateService: cs}
}

// registerCertificateRoutes registers routes related to certificates.
func registerCertificateRoutes(rg *gin.RouterGroup, certificateService portssvc.CertificateSvcFacade) {
	h := newCertificateHandler(certificateService)

	certificates := rg.Group("/certificates")
	{
		certificates.POST("", h.mintCertificate)
		certificates.GET("/:certificateID", h.getCertificate)
		certificates.GET("/:certificateID/metadata", h.getMetadata)
		certificates.PUT("/roles/:role/:accountID", h.grantRole)
		certificates.DELETE("/roles/:role/:accountID", h.revokeRole)
		certificates.GET("/roles/:role/:accountID", h.getRoleStatus)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/certificates/:courseID", h.getHoldings)
	}
}

// mintCertificate godoc
// @Summary Mint a certificate
// @Description Issues the next uniquely numbered certificate to the target account. Minter capability required.
// @Tags certificates
// @Accept json
// @Produce json
// @Param request body dto.MintCertificateRequest true "Certificate details"
// @Success 201 {object} dto.CertificateResponse
// @Failure 400 {object} map[string]string "Invalid target"
// @Failure 403 {object} map[string]string "Minter capability required"
// @Security BearerAuth
// @Router /certificates [post]
func (h *certificateHandler) mintCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.MintCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MintCertificate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cert, err := h.certificateService.MintCertificate(
		c.Request.Context(),
		domain.AccountID(caller),
		domain.AccountID(req.Target),
		req.CourseID,
		req.MetadataRef,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to mint certificate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint certificate"})
		}
		return
	}

	logger.Info("Certificate minted", slog.Uint64("certificate_id", cert.CertificateID))
	c.JSON(http.StatusCreated, dto.ToCertificateResponse(cert))
}

// getCertificate godoc
// @Summary Get a certificate by ID
// @Tags certificates
// @Produce json
// @Param certificateID path int true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} map[string]string "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{certificateID} [get]
func (h *certificateHandler) getCertificate(c *gin.Context) {
	certificateID, err := strconv.ParseUint(c.Param("certificateID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Certificate ID must be a positive integer"})
		return
	}

	cert, err := h.certificateService.GetCertificate(c.Request.Context(), certificateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get certificate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve certificate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCertificateResponse(cert))
}

// getMetadata godoc
// @Summary Get the metadata reference of a certificate
// @Tags certificates
// @Produce json
// @Param certificateID path int true "Certificate ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{certificateID}/metadata [get]
func (h *certificateHandler) getMetadata(c *gin.Context) {
	certificateID, err := strconv.ParseUint(c.Param("certificateID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Certificate ID must be a positive integer"})
		return
	}

	metadataRef, err := h.certificateService.MetadataOf(c.Request.Context(), certificateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get metadata", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve metadata"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"metadataRef": metadataRef})
}

// getHoldings godoc
// @Summary Certificates held by an account for a course
// @Description Returns the certificate IDs for the (account, course) pair in mint order; empty when none
// @Tags certificates
// @Produce json
// @Param accountID path string true "Account ID"
// @Param courseID path string true "External course ID"
// @Success 200 {object} dto.HoldingsResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/certificates/{courseID} [get]
func (h *certificateHandler) getHoldings(c *gin.Context) {
	account := domain.AccountID(c.Param("accountID"))
	courseID := c.Param("courseID")

	ids := h.certificateService.GetCertificatesFor(c.Request.Context(), account, courseID)
	c.JSON(http.StatusOK, dto.HoldingsResponse{
		Account:        string(account),
		CourseID:       courseID,
		HasCertificate: len(ids) > 0,
		CertificateIDs: ids,
	})
}

// grantRole godoc
// @Summary Grant a registry capability
// @Description Grants the admin or minter capability to an account. Registry administrator only.
// @Tags certificates
// @Produce json
// @Param role path string true "Role (admin or minter)"
// @Param accountID path string true "Account ID"
// @Success 204 "Granted"
// @Failure 400 {object} map[string]string "Unknown role"
// @Failure 403 {object} map[string]string "Administrator required"
// @Security BearerAuth
// @Router /certificates/roles/{role}/{accountID} [put]
func (h *certificateHandler) grantRole(c *gin.Context) {
	h.changeRole(c, h.certificateService.GrantRole)
}

// revokeRole godoc
// @Summary Revoke a registry capability
// @Description Revokes the admin or minter capability from an account. Registry administrator only.
// @Tags certificates
// @Produce json
// @Param role path string true "Role (admin or minter)"
// @Param accountID path string true "Account ID"
// @Success 204 "Revoked"
// @Failure 400 {object} map[string]string "Unknown role"
// @Failure 403 {object} map[string]string "Administrator required"
// @Security BearerAuth
// @Router /certificates/roles/{role}/{accountID} [delete]
func (h *certificateHandler) revokeRole(c *gin.Context) {
	h.changeRole(c, h.certificateService.RevokeRole)
}

func (h *certificateHandler) changeRole(c *gin.Context, op func(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role := domain.Role(c.Param("role"))
	if role != domain.RoleAdmin && role != domain.RoleMinter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + string(role)})
		return
	}
	target := domain.AccountID(c.Param("accountID"))

	if err := op(c.Request.Context(), domain.AccountID(caller), role, target); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to change role", slog.String("role", string(role)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change role"})
		}
		return
	}

	logger.Info("Role changed", slog.String("role", string(role)), slog.String("target", string(target)))
	c.Status(http.StatusNoContent)
}

// getRoleStatus godoc
// @Summary Check a registry capability holder
// @Tags certificates
// @Produce json
// @Param role path string true "Role (admin or minter)"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.RoleStatusResponse
// @Security BearerAuth
// @Router /certificates/roles/{role}/{accountID} [get]
func (h *certificateHandler) getRoleStatus(c *gin.Context) {
	role := domain.Role(c.Param("role"))
	account := domain.AccountID(c.Param("accountID"))

	holds := h.certificateService.HasRole(c.Request.Context(), role, account)
	c.JSON(http.StatusOK, dto.RoleStatusResponse{
		Account: string(account),
		Role:    string(role),
		Holds:   holds,
	})
}
