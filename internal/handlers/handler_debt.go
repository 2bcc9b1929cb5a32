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

// debtHandler handles HTTP requests related to debts.
type debtHandler struct {
	debtService       portssvc.DebtSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(debtService portssvc.DebtSvcFacade, settlementService portssvc.SettlementSvcFacade) *debtHandler {
	return &debtHandler{
		debtService:       debtService,
		settlementService: settlementService,
	}
}

// createDebt godoc
// @Summary Record an explicit debt
// @Description Records an obligation of one member towards another
// @Tags debts
// @Accept  json
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Param   debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse "The created debt"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 500 {object} map[string]string "Failed to record debt"
// @Router /apartments/{apartmentID}/debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")

	createReq := dto.CreateDebtRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Warn("Failed to bind JSON for CreateDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), apartmentID, createReq, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating debt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
		default:
			logger.Error("Failed to create debt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record debt"})
		}
		return
	}

	logger.Info("Debt created successfully", slog.String("debt_id", debt.DebtID))
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt))
}

// getDebt godoc
// @Summary Get a debt
// @Description Retrieves a debt by its ID
// @Tags debts
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Param   debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse "The debt"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 500 {object} map[string]string "Failed to retrieve debt"
// @Router /apartments/{apartmentID}/debts/{debtID} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")
	debtID := c.Param("debtID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.debtService.GetDebtByID(c.Request.Context(), apartmentID, debtID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
		default:
			logger.Error("Failed to get debt from service", slog.String("error", err.Error()), slog.String("debt_id", debtID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// listDebts godoc
// @Summary List debts of an apartment
// @Description Retrieves the apartment's debts, optionally filtered by status
// @Tags debts
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Param   status query string false "Filter by status (OPEN or CLOSED)"
// @Success 200 {array} dto.DebtResponse "Debts, newest first"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 500 {object} map[string]string "Failed to list debts"
// @Router /apartments/{apartmentID}/debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")

	params := dto.ListDebtsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), apartmentID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
		default:
			logger.Error("Failed to list debts in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debts"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponses(debts))
}

// closeDebt godoc
// @Summary Close a debt
// @Description Settles a debt atomically: the debt is marked closed, a compensating settlement artifact is recorded, balance projections are adjusted and an audit record is appended. Closing an already-closed debt succeeds and returns the prior settlement.
// @Tags debts
// @Produce  json
// @Param   apartmentID path string true "Apartment ID"
// @Param   debtID path string true "Debt ID"
// @Success 200 {object} dto.CloseDebtResponse "The settlement result"
// @Failure 403 {object} map[string]string "Not a member of the apartment"
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 409 {object} map[string]string "Conflicting concurrent settlement, retry"
// @Failure 500 {object} map[string]string "Failed to close debt"
// @Router /apartments/{apartmentID}/debts/{debtID}/close [post]
func (h *debtHandler) closeDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apartmentID := c.Param("apartmentID")
	debtID := c.Param("debtID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.settlementService.CloseDebt(c.Request.Context(), apartmentID, debtID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this apartment"})
		case errors.Is(err, apperrors.ErrTransientConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Settlement conflicted with a concurrent operation, please retry"})
		default:
			logger.Error("Failed to close debt in service", slog.String("error", err.Error()), slog.String("debt_id", debtID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close debt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCloseDebtResponse(result))
}

// registerDebtRoutes registers debt specific routes
func registerDebtRoutes(group *gin.RouterGroup, debtService portssvc.DebtSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newDebtHandler(debtService, settlementService)

	debts := group.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:debtID", h.getDebt)
		debts.POST("/:debtID/close", h.closeDebt)
	}
}
