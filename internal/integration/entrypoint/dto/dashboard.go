// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/spaarbot/backend/internal/application/usecase/dashboard"
	"github.com/spaarbot/backend/internal/domain/analytics"
)

// TrendPointResponse represents a single point in the trends response.
type TrendPointResponse struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	Date           string `json:"date"`
	Income         string `json:"income"`
	Expenses       string `json:"expenses"`
	Balance        string `json:"balance"`
	RunningBalance string `json:"running_balance"`
}

// CategoryShareResponse represents one category's share in the response.
type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Total      string  `json:"total"`
	Percentage float64 `json:"percentage"`
}

// TrendsResponse represents the response for the trends endpoint.
type TrendsResponse struct {
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	Granularity string                  `json:"granularity"`
	Trends      []TrendPointResponse    `json:"trends"`
	Categories  []CategoryShareResponse `json:"categories"`
}

// CategoryBreakdownResponse represents the response for the category breakdown endpoint.
type CategoryBreakdownResponse struct {
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	Total      string                  `json:"total"`
	Categories []CategoryShareResponse `json:"categories"`
}

// SummaryResponse represents the response for the summary endpoint.
type SummaryResponse struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalIncome      string `json:"total_income"`
	TotalExpenses    string `json:"total_expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// DataRangeResponse represents the response for the data range endpoint.
// Oldest and Newest are null when the user has no transactions.
type DataRangeResponse struct {
	Oldest           *string `json:"oldest"`
	Newest           *string `json:"newest"`
	TransactionCount int64   `json:"transaction_count"`
}

func toCategoryShareResponses(shares []analytics.CategoryShare) []CategoryShareResponse {
	responses := make([]CategoryShareResponse, 0, len(shares))
	for _, s := range shares {
		responses = append(responses, CategoryShareResponse{
			Category:   s.Category,
			Total:      s.Total.StringFixed(2),
			Percentage: s.Percentage,
		})
	}
	return responses
}

// ToTrendsResponse converts a trends use case output to a response DTO.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, 0, len(output.Trends))
	for _, p := range output.Trends {
		trends = append(trends, TrendPointResponse{
			Key:            p.Key,
			Label:          p.Label,
			Date:           p.Date.Format("2006-01-02"),
			Income:         p.Income.StringFixed(2),
			Expenses:       p.Expenses.StringFixed(2),
			Balance:        p.Balance.StringFixed(2),
			RunningBalance: p.RunningBalance.StringFixed(2),
		})
	}

	return TrendsResponse{
		StartDate:   output.Period.StartDate.Format("2006-01-02"),
		EndDate:     output.Period.EndDate.Format("2006-01-02"),
		Granularity: string(output.Period.Granularity),
		Trends:      trends,
		Categories:  toCategoryShareResponses(output.Categories),
	}
}

// ToCategoryBreakdownResponse converts a breakdown use case output to a response DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	return CategoryBreakdownResponse{
		StartDate:  output.StartDate.Format("2006-01-02"),
		EndDate:    output.EndDate.Format("2006-01-02"),
		Total:      output.Total.StringFixed(2),
		Categories: toCategoryShareResponses(output.Categories),
	}
}

// ToSummaryResponse converts a summary use case output to a response DTO.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		StartDate:        output.StartDate.Format("2006-01-02"),
		EndDate:          output.EndDate.Format("2006-01-02"),
		TotalIncome:      output.TotalIncome.StringFixed(2),
		TotalExpenses:    output.TotalExpenses.StringFixed(2),
		Balance:          output.Balance.StringFixed(2),
		TransactionCount: output.TransactionCount,
	}
}

// ToDataRangeResponse converts a data range use case output to a response DTO.
func ToDataRangeResponse(output *dashboard.GetDataRangeOutput) DataRangeResponse {
	response := DataRangeResponse{
		TransactionCount: output.TransactionCount,
	}
	if output.Oldest != nil {
		oldest := output.Oldest.Format("2006-01-02")
		response.Oldest = &oldest
	}
	if output.Newest != nil {
		newest := output.Newest.Format("2006-01-02")
		response.Newest = &newest
	}
	return response
}
