package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_periods/internal/core/ports/services"
	"github.com/SscSPs/ledger_periods/internal/dto"
	"github.com/SscSPs/ledger_periods/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
	scopes        scopeResolver
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade, defaultScope *string) *periodHandler {
	return &periodHandler{
		periodService: ps,
		scopes:        newScopeResolver(defaultScope),
	}
}

// RegisterPeriodRoutes registers routes related to accounting periods.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade, defaultScope *string) {
	h := newPeriodHandler(periodService, defaultScope)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/current", h.getCurrentPeriod)
		periods.GET("/:periodID", h.getPeriod)
		periods.PATCH("/:periodID", h.updatePeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.DELETE("/:periodID", h.deletePeriod)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description Creates an OPEN period. The range may not overlap another period of the same organization scope.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   X-Organization-ID header string false "Organization scope, used when the body has none"
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Overlapping period"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	req.OrganizationID = h.scopes.resolve(c, req.OrganizationID)
	logger = logger.With(slog.String("scope", domain.ScopeKey(req.OrganizationID)))

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create period")
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Description Lists periods newest first. Without an organization the periods of every scope are returned.
// @Tags periods
// @Produce  json
// @Param   status query string false "Filter by status" Enums(OPEN, CLOSED, LOCKED)
// @Param   year query int false "Filter by the year the period starts in"
// @Param   organizationId query string false "Organization scope"
// @Param   X-Organization-ID header string false "Organization scope"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ListPeriodsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	filter := query.ToFilter()
	filter.OrganizationID = h.scopes.resolveQuery(c, query.OrganizationID)

	periods, err := h.periodService.ListPeriods(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list periods")
		return
	}

	logger.Debug("Periods listed", slog.Int("count", len(periods)))
	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// getCurrentPeriod godoc
// @Summary Get the current accounting period
// @Description Returns the OPEN period containing asOf (default today), or a null period when there is none.
// @Tags periods
// @Produce  json
// @Param   asOf query string false "Reference date (YYYY-MM-DD)"
// @Param   organizationId query string false "Organization scope"
// @Param   X-Organization-ID header string false "Organization scope"
// @Success 200 {object} dto.CurrentPeriodResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query"
// @Failure 500 {object} handlers.ErrorResponse "Failed to find current period"
// @Security BearerAuth
// @Router /periods/current [get]
func (h *periodHandler) getCurrentPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.CurrentPeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	var asOf time.Time
	if query.AsOf != "" {
		parsed, err := domain.ParseDate(query.AsOf)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		asOf = parsed
	}

	scope := h.scopes.resolveQuery(c, query.OrganizationID)
	period, err := h.periodService.FindCurrentPeriod(c.Request.Context(), scope, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to find current period")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} handlers.ErrorResponse "Period not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve period"
// @Security BearerAuth
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("periodID")))

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// updatePeriod godoc
// @Summary Update an accounting period
// @Description Applies a partial update. Locked periods are immutable and closed periods accept only notes.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Param   period body dto.UpdatePeriodRequest true "Fields to change"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 404 {object} handlers.ErrorResponse "Period not found"
// @Failure 409 {object} handlers.ErrorResponse "Overlapping period"
// @Failure 422 {object} handlers.ErrorResponse "Period is closed or locked"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update period"
// @Security BearerAuth
// @Router /periods/{periodID} [patch]
func (h *periodHandler) updatePeriod(c *gin.Context) {
	periodID := c.Param("periodID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", periodID))

	var req dto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), periodID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update period")
		return
	}

	logger.Info("Period updated")
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Reconciles the period's ledger activity and closes it. Unbalanced posted journal entries block the close unless force is set.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Param   close body dto.ClosePeriodRequest false "Close options"
// @Success 200 {object} dto.ClosePeriodResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 404 {object} handlers.ErrorResponse "Period not found"
// @Failure 409 {object} handlers.ErrorResponse "Period is busy"
// @Failure 422 {object} handlers.ErrorResponse "Period cannot be closed"
// @Failure 500 {object} handlers.ErrorResponse "Failed to close period"
// @Security BearerAuth
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	periodID := c.Param("periodID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", periodID))

	var req dto.ClosePeriodRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, req, actorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close period")
		return
	}

	logger.Info("Period closed",
		slog.Int("transaction_count", result.Summary.TransactionCount),
		slog.Int("unbalanced_entries", result.Summary.UnbalancedEntries),
		slog.Bool("forced", req.Force))
	c.JSON(http.StatusOK, dto.ToClosePeriodResponse(result))
}

// deletePeriod godoc
// @Summary Delete an accounting period
// @Description Deletes an OPEN period. Closed and locked periods cannot be deleted.
// @Tags periods
// @Param   periodID path string true "Period ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.ErrorResponse "Period not found"
// @Failure 422 {object} handlers.ErrorResponse "Period is closed or locked"
// @Failure 500 {object} handlers.ErrorResponse "Failed to delete period"
// @Security BearerAuth
// @Router /periods/{periodID} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	periodID := c.Param("periodID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", periodID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.periodService.DeletePeriod(c.Request.Context(), periodID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete period")
		return
	}

	logger.Info("Period deleted")
	c.Status(http.StatusNoContent)
}
