package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flatledger/flatledger/internal/apperrors"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/dto"
	"github.com/flatledger/flatledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests for the settlement audit trail.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(settlementService portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: settlementService,
	}
}

// listSettlements godoc
// @Summary List settlement audit records
// @Description Retrieves the append-only settlement history of an apartment, newest first
// @Tags settlements
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Success 200 {array} dto.SettlementAuditResponse "Audit records"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 500 {object} map[string]string "Failed to list settlements"
// @Router /apartments/{apartmentID}/settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	audits, err := h.settlementService.ListSettlementAudits(c.Request.Context(), apartmentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
			return
		}
		logger.Error("Failed to list settlement audits in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementAuditResponses(audits))
}

// registerSettlementRoutes registers settlement audit routes
func registerSettlementRoutes(group *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := group.Group("/settlements")
	{
		settlements.GET("", h.listSettlements)
	}
}
