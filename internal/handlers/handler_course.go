package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// courseHandler handles HTTP requests related to the course catalog.
type courseHandler struct {
	marketService portssvc.CourseMarketSvcFacade
}

func newCourseHandler(ms portssvc.CourseMarketSvcFacade) *courseHandler {
	return &courseHandler{marketService: ms}
}

// RegisterCourseRoutes registers routes related to the course market.
func RegisterCourseRoutes(rg *gin.RouterGroup, marketService portssvc.CourseMarketSvcFacade) {
	h := newCourseHandler(marketService)

	courses := rg.Group("/courses")
	{
		courses.POST("", h.addCourse)
		courses.GET("", h.listCourses)
		courses.GET("/:externalID", h.getCourse)
		courses.PUT("/:externalID", h.updateCourse)
		courses.POST("/:externalID/purchase", h.purchaseCourse)
		courses.GET("/:externalID/purchases/:accountID", h.getPurchaseStatus)
	}
}

// addCourse godoc
// @Summary Add a course to the catalog
// @Description Creates a catalog entry under the given external ID. Market owner only.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.AddCourseRequest true "Course details"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Owner required"
// @Failure 409 {object} map[string]string "External ID already mapped"
// @Security BearerAuth
// @Router /courses [post]
func (h *courseHandler) addCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddCourse", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	course, err := h.marketService.AddCourse(c.Request.Context(), domain.AccountID(caller), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add course", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add course"})
		}
		return
	}

	logger.Info("Course added", slog.Uint64("course_id", course.CourseID), slog.String("external_id", course.ExternalID))
	c.JSON(http.StatusCreated, dto.ToCourseResponse(course))
}

// listCourses godoc
// @Summary List the course catalog
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Security BearerAuth
// @Router /courses [get]
func (h *courseHandler) listCourses(c *gin.Context) {
	courses := h.marketService.ListCourses(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToListCourseResponse(courses))
}

// getCourse godoc
// @Summary Get a course by external ID
// @Tags courses
// @Produce json
// @Param externalID path string true "External course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /courses/{externalID} [get]
func (h *courseHandler) getCourse(c *gin.Context) {
	course, err := h.marketService.GetCourseByExternalID(c.Request.Context(), c.Param("externalID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get course", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCourseResponse(course))
}

// updateCourse godoc
// @Summary Update a course
// @Description Rewrites the entry mapped from the external ID in the URL and remaps it to the external ID in the body. Market owner only.
// @Tags courses
// @Accept json
// @Produce json
// @Param externalID path string true "Current external course ID"
// @Param request body dto.UpdateCourseRequest true "New course details"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Owner required"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /courses/{externalID} [put]
func (h *courseHandler) updateCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCourse", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.OldExternalID = c.Param("externalID")

	course, err := h.marketService.UpdateCourse(c.Request.Context(), domain.AccountID(caller), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update course", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		}
		return
	}

	logger.Info("Course updated", slog.Uint64("course_id", course.CourseID), slog.String("external_id", course.ExternalID))
	c.JSON(http.StatusOK, dto.ToCourseResponse(course))
}

// purchaseCourse godoc
// @Summary Purchase a course
// @Description Debits the caller by the course price and mints the completion certificate. Both happen or neither does.
// @Tags courses
// @Produce json
// @Param externalID path string true "External course ID"
// @Success 200 {object} dto.PurchaseCourseResponse
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Course inactive or insufficient balance"
// @Security BearerAuth
// @Router /courses/{externalID}/purchase [post]
func (h *courseHandler) purchaseCourse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	externalID := c.Param("externalID")
	cert, err := h.marketService.PurchaseCourse(c.Request.Context(), domain.AccountID(caller), externalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to purchase course", slog.String("external_id", externalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase course"})
		}
		return
	}

	course, err := h.marketService.GetCourseByExternalID(c.Request.Context(), externalID)
	if err != nil {
		logger.Error("Purchased course vanished from catalog", slog.String("external_id", externalID), slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"certificate": dto.ToCertificateResponse(cert)})
		return
	}

	logger.Info("Course purchased",
		slog.String("external_id", externalID),
		slog.Uint64("certificate_id", cert.CertificateID),
	)
	c.JSON(http.StatusOK, dto.PurchaseCourseResponse{
		Certificate: dto.ToCertificateResponse(cert),
		Course:      dto.ToCourseResponse(course),
	})
}

// getPurchaseStatus godoc
// @Summary Check whether an account purchased a course
// @Tags courses
// @Produce json
// @Param externalID path string true "External course ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /courses/{externalID}/purchases/{accountID} [get]
func (h *courseHandler) getPurchaseStatus(c *gin.Context) {
	externalID := c.Param("externalID")
	account := domain.AccountID(c.Param("accountID"))

	purchased := h.marketService.HasPurchased(c.Request.Context(), account, externalID)
	c.JSON(http.StatusOK, gin.H{
		"accountId":  string(account),
		"externalId": externalID,
		"purchased":  purchased,
	})
}
