// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spaarbot/backend/internal/application/usecase/dashboard"
	"github.com/spaarbot/backend/internal/domain/analytics"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/integration/entrypoint/dto"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	trendsUseCase    *dashboard.GetTrendsUseCase
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	summaryUseCase   *dashboard.GetSummaryUseCase
	dataRangeUseCase *dashboard.GetDataRangeUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	trendsUseCase *dashboard.GetTrendsUseCase,
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	summaryUseCase *dashboard.GetSummaryUseCase,
	dataRangeUseCase *dashboard.GetDataRangeUseCase,
) *DashboardController {
	return &DashboardController{
		trendsUseCase:    trendsUseCase,
		breakdownUseCase: breakdownUseCase,
		summaryUseCase:   summaryUseCase,
		dataRangeUseCase: dataRangeUseCase,
	}
}

// Trends handles GET /dashboard/trends requests.
func (c *DashboardController) Trends(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	startDate, endDate, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := dashboard.GetTrendsInput{
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: analytics.Granularity(ctx.DefaultQuery("granularity", string(analytics.GranularityDay))),
		OtherLabel:  ctx.Query("otherLabel"),
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// CategoryBreakdown handles GET /dashboard/categories requests.
func (c *DashboardController) CategoryBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	startDate, endDate, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := dashboard.GetCategoryBreakdownInput{
		UserID:     userID,
		StartDate:  startDate,
		EndDate:    endDate,
		OtherLabel: ctx.Query("otherLabel"),
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	startDate, endDate, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := dashboard.GetSummaryInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// DataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) DataRange(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	output, err := c.dataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{
		UserID: userID,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// parsePeriod parses the startDate and endDate query parameters. Missing
// parameters pass through as zero times so the use case reports them with
// its own error codes.
func (c *DashboardController) parsePeriod(ctx *gin.Context) (time.Time, time.Time, bool) {
	var startDate, endDate time.Time

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return startDate, endDate, false
		}
		startDate = parsed
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return startDate, endDate, false
		}
		endDate = parsed
	}

	return startDate, endDate, true
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(c.getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingStartDate,
		domainerror.ErrCodeMissingEndDate,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeMissingGranularity,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
