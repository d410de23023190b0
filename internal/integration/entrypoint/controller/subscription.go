// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/usecase/subscription"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/integration/entrypoint/dto"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
)

// SubscriptionController handles subscription endpoints.
type SubscriptionController struct {
	listUseCase     *subscription.ListSubscriptionsUseCase
	createUseCase   *subscription.CreateSubscriptionUseCase
	updateUseCase   *subscription.UpdateSubscriptionUseCase
	deleteUseCase   *subscription.DeleteSubscriptionUseCase
	renewalsUseCase *subscription.UpcomingRenewalsUseCase
	detectUseCase   *subscription.DetectRecurringUseCase
}

// NewSubscriptionController creates a new subscription controller instance.
func NewSubscriptionController(
	listUseCase *subscription.ListSubscriptionsUseCase,
	createUseCase *subscription.CreateSubscriptionUseCase,
	updateUseCase *subscription.UpdateSubscriptionUseCase,
	deleteUseCase *subscription.DeleteSubscriptionUseCase,
	renewalsUseCase *subscription.UpcomingRenewalsUseCase,
	detectUseCase *subscription.DetectRecurringUseCase,
) *SubscriptionController {
	return &SubscriptionController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		renewalsUseCase: renewalsUseCase,
		detectUseCase:   detectUseCase,
	}
}

// List handles GET /subscriptions requests.
func (c *SubscriptionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), subscription.ListSubscriptionsInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve subscriptions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionListResponse(output))
}

// Create handles POST /subscriptions requests.
func (c *SubscriptionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeSubscriptionNameRequired),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeNegativeSubscription),
		})
		return
	}

	nextRenewal, err := time.Parse("2006-01-02", req.NextRenewal)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid renewal date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidRenewalDate),
		})
		return
	}

	categoryID, ok := parseOptionalUUID(ctx, req.CategoryID, "Invalid category ID format")
	if !ok {
		return
	}

	input := subscription.CreateSubscriptionInput{
		UserID:        userID,
		Name:          req.Name,
		Amount:        amount,
		BillingPeriod: entity.BillingPeriod(req.BillingPeriod),
		NextRenewal:   nextRenewal,
		CategoryID:    categoryID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubscriptionResponse(output.Subscription))
}

// Update handles PATCH /subscriptions/:id requests.
func (c *SubscriptionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := subscription.UpdateSubscriptionInput{
		ID:       subscriptionID,
		UserID:   userID,
		Name:     req.Name,
		IsActive: req.IsActive,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
				Code:  string(domainerror.ErrCodeNegativeSubscription),
			})
			return
		}
		input.Amount = &amount
	}

	if req.BillingPeriod != nil {
		period := entity.BillingPeriod(*req.BillingPeriod)
		input.BillingPeriod = &period
	}

	if req.NextRenewal != nil {
		nextRenewal, err := time.Parse("2006-01-02", *req.NextRenewal)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid renewal date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidRenewalDate),
			})
			return
		}
		input.NextRenewal = &nextRenewal
	}

	categoryID, ok := parseOptionalUUID(ctx, req.CategoryID, "Invalid category ID format")
	if !ok {
		return
	}
	input.CategoryID = categoryID

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(output.Subscription))
}

// Delete handles DELETE /subscriptions/:id requests.
func (c *SubscriptionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	input := subscription.DeleteSubscriptionInput{
		ID:     subscriptionID,
		UserID: userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpcomingRenewals handles GET /subscriptions/upcoming requests.
func (c *SubscriptionController) UpcomingRenewals(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	input := subscription.UpcomingRenewalsInput{
		UserID: userID,
	}

	if daysStr := ctx.Query("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil {
			input.WindowDays = days
		}
	}

	output, err := c.renewalsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingRenewalsResponse(output))
}

// DetectRecurring handles GET /subscriptions/detect requests.
func (c *SubscriptionController) DetectRecurring(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	output, err := c.detectUseCase.Execute(ctx.Request.Context(), subscription.DetectRecurringInput{
		UserID: userID,
	})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringCandidatesResponse(output.Candidates))
}

// handleSubscriptionError handles subscription errors and returns appropriate HTTP responses.
func (c *SubscriptionController) handleSubscriptionError(ctx *gin.Context, err error) {
	var subErr *domainerror.SubscriptionError
	if errors.As(err, &subErr) {
		ctx.JSON(c.getStatusCodeForSubscriptionError(subErr.Code), dto.ErrorResponse{
			Error: subErr.Message,
			Code:  string(subErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSubscriptionError maps subscription error codes to HTTP status codes.
func (c *SubscriptionController) getStatusCodeForSubscriptionError(code domainerror.SubscriptionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSubscriptionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedSubscription:
		return http.StatusForbidden
	case domainerror.ErrCodeSubscriptionNameRequired,
		domainerror.ErrCodeInvalidBillingPeriod,
		domainerror.ErrCodeInvalidRenewalDate,
		domainerror.ErrCodeNegativeSubscription:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
