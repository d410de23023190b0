// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spaarbot/backend/internal/application/usecase/bankimport"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/integration/entrypoint/dto"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
)

// BankImportController handles bank statement import endpoints.
type BankImportController struct {
	previewUseCase *bankimport.PreviewStatementUseCase
	importUseCase  *bankimport.ImportStatementUseCase
}

// NewBankImportController creates a new bank import controller instance.
func NewBankImportController(
	previewUseCase *bankimport.PreviewStatementUseCase,
	importUseCase *bankimport.ImportStatementUseCase,
) *BankImportController {
	return &BankImportController{
		previewUseCase: previewUseCase,
		importUseCase:  importUseCase,
	}
}

// Preview handles POST /import/preview requests. It classifies every
// statement row without writing anything.
func (c *BankImportController) Preview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	var req dto.StatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyStatement),
		})
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), bankimport.PreviewStatementInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewStatementResponse(output))
}

// Import handles POST /import requests. New rows become transactions;
// duplicates and invalid rows are skipped.
func (c *BankImportController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	var req dto.StatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyStatement),
		})
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), bankimport.ImportStatementInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportStatementResponse(output))
}

// handleImportError handles import errors and returns appropriate HTTP responses.
func (c *BankImportController) handleImportError(ctx *gin.Context, err error) {
	var impErr *domainerror.ImportError
	if errors.As(err, &impErr) {
		ctx.JSON(c.getStatusCodeForImportError(impErr.Code), dto.ErrorResponse{
			Error: impErr.Message,
			Code:  string(impErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForImportError maps import error codes to HTTP status codes.
func (c *BankImportController) getStatusCodeForImportError(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyStatement,
		domainerror.ErrCodeMalformedStatement,
		domainerror.ErrCodeMissingStatementColumns:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoImportableRows:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
