package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler exposes the audit trail to the ledger administrator.
type eventHandler struct {
	eventService  portssvc.EventReaderSvc
	ledgerService portssvc.LedgerReaderSvc
}

func newEventHandler(es portssvc.EventReaderSvc, ls portssvc.LedgerReaderSvc) *eventHandler {
	return &eventHandler{eventService: es, ledgerService: ls}
}

// registerEventRoutes registers the audit trail routes.
func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventReaderSvc, ledgerService portssvc.LedgerReaderSvc) {
	h := newEventHandler(eventService, ledgerService)

	rg.GET("/events", h.listEvents)
}

// listEvents godoc
// @Summary List recorded events
// @Description Returns the audit trail, newest first. Ledger administrator only.
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events to return"
// @Success 200 {array} dto.EventResponse
// @Failure 403 {object} map[string]string "Administrator required"
// @Security BearerAuth
// @Router /events [get]
func (h *eventHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !h.ledgerService.IsAdmin(c.Request.Context(), domain.AccountID(caller)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Administrator required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventResponse(events))
}
