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

// balanceHandler handles HTTP requests related to balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: balanceService,
	}
}

// getBalances godoc
// @Summary Get apartment balances
// @Description Derives per-user balances from the expense feed, with mutual debts netted per pair. Pass raw=true for itemized per-payer balances.
// @Tags balances
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Param   raw query bool false "Skip pairwise netting"
// @Success 200 {array} dto.BalanceEntryResponse "Balances ordered by user id"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Router /apartments/{apartmentID}/balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	h.respondWithBalances(c, false)
}

// getSimplifiedBalances godoc
// @Summary Get simplified apartment balances
// @Description Reduces the apartment's debts to a minimal set of net transfers
// @Tags balances
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Success 200 {array} dto.BalanceEntryResponse "Simplified balances ordered by user id"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Router /apartments/{apartmentID}/balances/simplified [get]
func (h *balanceHandler) getSimplifiedBalances(c *gin.Context) {
	h.respondWithBalances(c, true)
}

func (h *balanceHandler) respondWithBalances(c *gin.Context, simplified bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	compute := h.balanceService.GetBalances
	if simplified {
		compute = h.balanceService.GetSimplifiedBalances
	} else if c.Query("raw") == "true" {
		compute = h.balanceService.GetRawBalances
	}

	result, err := compute(c.Request.Context(), apartmentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
			return
		}
		logger.Error("Failed to compute balances", slog.String("error", err.Error()), slog.String("apartment_id", apartmentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceEntryResponses(result))
}

// registerBalanceRoutes registers balance specific routes
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := group.Group("/balances")
	{
		balances.GET("", h.getBalances)
		balances.GET("/simplified", h.getSimplifiedBalances)
	}
}
