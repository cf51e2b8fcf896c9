// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/stats"
)

// CategoryTotalResponse represents a per-category total in API responses.
type CategoryTotalResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Total      string `json:"total"`
}

// CategoryGrowthResponse represents a category's month-over-month growth.
type CategoryGrowthResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Variation  float64 `json:"variation"`
}

// AverageSpendingResponse represents spending averages in API responses.
type AverageSpendingResponse struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

// TopExpenseResponse represents one entry of the top expense ranking.
type TopExpenseResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
}

// SummaryResponse represents the spending summary in API responses.
type SummaryResponse struct {
	Total          string                  `json:"total"`
	MonthlyTotal   string                  `json:"monthly_total"`
	WeeklyTotal    string                  `json:"weekly_total"`
	Distribution   []CategoryTotalResponse `json:"distribution"`
	TopCategory    *CategoryTotalResponse  `json:"top_category,omitempty"`
	TopExpenses    []TopExpenseResponse    `json:"top_expenses"`
	MonthVariation float64                 `json:"month_variation"`
	MaxGrowth      *CategoryGrowthResponse `json:"max_growth,omitempty"`
	Averages       AverageSpendingResponse `json:"averages"`
	Projected      string                  `json:"projected_monthly"`
}

// CategoryStatsRowResponse represents one per-category dashboard row.
type CategoryStatsRowResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Total      string  `json:"total"`
	Count      int     `json:"count"`
	Average    string  `json:"average"`
	Percentage float64 `json:"percentage"`
	Trend      string  `json:"trend"`
}

// CategoryStatsResponse represents the per-category stats in API responses.
type CategoryStatsResponse struct {
	Categories []CategoryStatsRowResponse `json:"categories"`
}

// MonthlyTrendResponse represents one month of the category trend matrix.
type MonthlyTrendResponse struct {
	Month  string            `json:"month"`
	Totals map[string]string `json:"totals"`
}

// TrendsResponse represents the category trend matrix in API responses.
type TrendsResponse struct {
	Months        []MonthlyTrendResponse `json:"months"`
	CategoryNames map[string]string      `json:"category_names"`
}

// ToSummaryResponse converts a GetSummaryOutput to a SummaryResponse DTO.
func ToSummaryResponse(output *stats.GetSummaryOutput) SummaryResponse {
	distribution := make([]CategoryTotalResponse, len(output.Distribution))
	for i, d := range output.Distribution {
		distribution[i] = toCategoryTotalResponse(d)
	}

	topExpenses := make([]TopExpenseResponse, len(output.TopExpenses))
	for i, e := range output.TopExpenses {
		topExpenses[i] = TopExpenseResponse{
			ID:          e.ID.String(),
			Description: e.Description,
			Amount:      e.Amount.String(),
			Currency:    string(e.Currency),
			Date:        e.Date.Format("2006-01-02"),
		}
	}

	response := SummaryResponse{
		Total:          output.Total.String(),
		MonthlyTotal:   output.MonthlyTotal.String(),
		WeeklyTotal:    output.WeeklyTotal.String(),
		Distribution:   distribution,
		TopExpenses:    topExpenses,
		MonthVariation: output.MonthVariation,
		Averages: AverageSpendingResponse{
			Daily:   output.Averages.Daily,
			Weekly:  output.Averages.Weekly,
			Monthly: output.Averages.Monthly,
		},
		Projected: output.Projected.String(),
	}

	if output.TopCategory != nil {
		top := toCategoryTotalResponse(*output.TopCategory)
		response.TopCategory = &top
	}
	if output.MaxGrowth != nil {
		response.MaxGrowth = &CategoryGrowthResponse{
			CategoryID: output.MaxGrowth.CategoryID.String(),
			Name:       output.MaxGrowth.Name,
			Variation:  output.MaxGrowth.Variation,
		}
	}

	return response
}

// ToCategoryStatsResponse converts a GetCategoryStatsOutput to a CategoryStatsResponse DTO.
func ToCategoryStatsResponse(output *stats.GetCategoryStatsOutput) CategoryStatsResponse {
	rows := make([]CategoryStatsRowResponse, len(output.Categories))
	for i, row := range output.Categories {
		rows[i] = CategoryStatsRowResponse{
			CategoryID: row.CategoryID.String(),
			Name:       row.Name,
			Total:      row.Total.String(),
			Count:      row.Count,
			Average:    row.Average.String(),
			Percentage: row.Percentage,
			Trend:      string(row.Trend),
		}
	}
	return CategoryStatsResponse{Categories: rows}
}

// ToTrendsResponse converts a GetTrendsOutput to a TrendsResponse DTO.
func ToTrendsResponse(output *stats.GetTrendsOutput) TrendsResponse {
	months := make([]MonthlyTrendResponse, len(output.Months))
	for i, month := range output.Months {
		totals := make(map[string]string, len(month.Totals))
		for categoryID, total := range month.Totals {
			totals[categoryID.String()] = total.String()
		}
		months[i] = MonthlyTrendResponse{
			Month:  month.Month.Format("2006-01"),
			Totals: totals,
		}
	}

	names := make(map[string]string, len(output.CategoryNames))
	for categoryID, name := range output.CategoryNames {
		names[categoryID.String()] = name
	}

	return TrendsResponse{
		Months:        months,
		CategoryNames: names,
	}
}

func toCategoryTotalResponse(t stats.CategoryTotal) CategoryTotalResponse {
	return CategoryTotalResponse{
		CategoryID: t.CategoryID.String(),
		Name:       t.Name,
		Total:      t.Total.String(),
	}
}
