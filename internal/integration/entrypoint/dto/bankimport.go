// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/spaarbot/backend/internal/application/usecase/bankimport"
)

// StatementRequest represents the request body for statement preview and import.
type StatementRequest struct {
	Content string `json:"content" binding:"required"`
}

// PreviewRowResponse represents one classified statement row in the preview.
type PreviewRowResponse struct {
	Line        int    `json:"line"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// PreviewStatementResponse represents the response for statement preview.
type PreviewStatementResponse struct {
	Rows           []PreviewRowResponse `json:"rows"`
	NewCount       int                  `json:"new_count"`
	DuplicateCount int                  `json:"duplicate_count"`
	InvalidCount   int                  `json:"invalid_count"`
}

// ImportStatementResponse represents the response for statement import.
type ImportStatementResponse struct {
	ImportedCount  int `json:"imported_count"`
	DuplicateCount int `json:"duplicate_count"`
	InvalidCount   int `json:"invalid_count"`
}

// ToPreviewStatementResponse converts a preview use case output to a response DTO.
func ToPreviewStatementResponse(output *bankimport.PreviewStatementOutput) PreviewStatementResponse {
	rows := make([]PreviewRowResponse, 0, len(output.Rows))
	for _, row := range output.Rows {
		response := PreviewRowResponse{
			Line:   row.Line,
			Status: string(row.Status),
			Reason: row.Reason,
		}
		if row.Status != bankimport.RowStatusInvalid {
			response.Date = row.Date.Format("2006-01-02")
			response.Description = row.Description
			response.Amount = row.Amount.StringFixed(2)
			response.Kind = string(row.Kind)
		}
		rows = append(rows, response)
	}

	return PreviewStatementResponse{
		Rows:           rows,
		NewCount:       output.NewCount,
		DuplicateCount: output.DuplicateCount,
		InvalidCount:   output.InvalidCount,
	}
}

// ToImportStatementResponse converts an import use case output to a response DTO.
func ToImportStatementResponse(output *bankimport.ImportStatementOutput) ImportStatementResponse {
	return ImportStatementResponse{
		ImportedCount:  output.ImportedCount,
		DuplicateCount: output.DuplicateCount,
		InvalidCount:   output.InvalidCount,
	}
}
