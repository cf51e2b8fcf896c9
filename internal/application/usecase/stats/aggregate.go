// Package stats contains the ledger analytics use cases.
//
// The aggregation functions in this file are pure reads over a ledger
// snapshot plus a reference time. Absent data yields zero or empty
// results, never errors.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// TrendDirection classifies a category's month-over-month movement.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// trendThreshold is the variation percentage beyond which a category
// counts as moving rather than stable.
const trendThreshold = 5.0

// CategoryTotal is a per-category sum for distribution results.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Name       string
	Total      decimal.Decimal
}

// CategoryGrowth reports a category's month-over-month variation.
type CategoryGrowth struct {
	CategoryID uuid.UUID
	Name       string
	Variation  float64
}

// AverageSpending holds spending averaged over the ledger span.
type AverageSpending struct {
	Daily   float64
	Weekly  float64
	Monthly float64
}

// CategoryStatsRow is the per-category summary used by dashboards.
type CategoryStatsRow struct {
	CategoryID uuid.UUID
	Name       string
	Total      decimal.Decimal
	Count      int
	Average    decimal.Decimal
	Percentage float64
	Trend      TrendDirection
}

// MonthlyCategoryTotals is one row of a category trend matrix: the
// normalized per-category totals of a single calendar month.
type MonthlyCategoryTotals struct {
	Month  time.Time
	Totals map[uuid.UUID]decimal.Decimal
}

// PeriodTotal sums entries matching the currency that fall within
// [start, end], bounds inclusive and open when nil.
func PeriodTotal(entries []*entity.Expense, currency entity.Currency, start, end *time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Currency != currency {
			continue
		}
		if start != nil && e.Date.Before(*start) {
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// MonthlyTotal sums entries of the currency in the calendar month of now.
func MonthlyTotal(entries []*entity.Expense, currency entity.Currency, now time.Time) decimal.Decimal {
	start := monthStart(now)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return PeriodTotal(entries, currency, &start, &end)
}

// WeeklyTotal sums entries of the currency in the 7 days ending at now.
func WeeklyTotal(entries []*entity.Expense, currency entity.Currency, now time.Time) decimal.Decimal {
	start := now.AddDate(0, 0, -7)
	return PeriodTotal(entries, currency, &start, &now)
}

// CategoryDistribution returns the per-category sum of entries in the
// given currency, in category list order. Categories with a zero sum
// are excluded.
func CategoryDistribution(entries []*entity.Expense, categories []*entity.Category, currency entity.Currency) []CategoryTotal {
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range entries {
		if e.Currency != currency {
			continue
		}
		sums[e.CategoryID] = sums[e.CategoryID].Add(e.Amount)
	}

	var out []CategoryTotal
	for _, c := range categories {
		total, ok := sums[c.ID]
		if !ok || total.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{CategoryID: c.ID, Name: c.Name, Total: total})
	}
	return out
}

// TopCategory returns the category with the maximum raw total across
// all currencies combined. Ties break to the earlier category in the
// list. Returns nil when the ledger holds no categorized spending.
func TopCategory(entries []*entity.Expense, categories []*entity.Category) *CategoryTotal {
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range entries {
		sums[e.CategoryID] = sums[e.CategoryID].Add(e.Amount)
	}

	var top *CategoryTotal
	for _, c := range categories {
		total, ok := sums[c.ID]
		if !ok || total.IsZero() {
			continue
		}
		if top == nil || total.GreaterThan(top.Total) {
			top = &CategoryTotal{CategoryID: c.ID, Name: c.Name, Total: total}
		}
	}
	return top
}

// TopExpenses returns the n entries with the greatest amount. Entries
// of different currencies are compared on the normalized scale (see
// normalizedAmount); amounts themselves are returned untouched.
func TopExpenses(entries []*entity.Expense, n int) []*entity.Expense {
	sorted := make([]*entity.Expense, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return normalizedAmount(sorted[i]).GreaterThan(normalizedAmount(sorted[j]))
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// MonthVariation returns the percentage change from previous to
// current. A zero previous total yields 100 when the current total is
// positive and 0 otherwise.
func MonthVariation(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).InexactFloat64() * 100
}

// CategoryWithMaxGrowth returns the category with the highest
// month-over-month variation among those with a non-zero
// previous-month total. Categories with no previous-month spending
// have undefined growth and are excluded. Returns nil when no
// category qualifies.
func CategoryWithMaxGrowth(entries []*entity.Expense, categories []*entity.Category, now time.Time) *CategoryGrowth {
	currentStart := monthStart(now)
	previousStart := currentStart.AddDate(0, -1, 0)

	current := make(map[uuid.UUID]decimal.Decimal)
	previous := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range entries {
		switch {
		case !e.Date.Before(currentStart):
			current[e.CategoryID] = current[e.CategoryID].Add(normalizedAmount(e))
		case !e.Date.Before(previousStart):
			previous[e.CategoryID] = previous[e.CategoryID].Add(normalizedAmount(e))
		}
	}

	var top *CategoryGrowth
	for _, c := range categories {
		prev, ok := previous[c.ID]
		if !ok || prev.IsZero() {
			continue
		}
		variation := MonthVariation(current[c.ID], prev)
		if top == nil || variation > top.Variation {
			top = &CategoryGrowth{CategoryID: c.ID, Name: c.Name, Variation: variation}
		}
	}
	return top
}

// Averages spreads the total spend of the currency over the ledger
// span [firstEntryDate, lastEntryDate]. The span is rounded up to
// whole days and floored at one day to avoid division by zero; an
// empty ledger yields all zeros.
func Averages(entries []*entity.Expense, currency entity.Currency) AverageSpending {
	var first, last time.Time
	total := decimal.Zero
	seen := false
	for _, e := range entries {
		if e.Currency != currency {
			continue
		}
		if !seen || e.Date.Before(first) {
			first = e.Date
		}
		if !seen || e.Date.After(last) {
			last = e.Date
		}
		total = total.Add(e.Amount)
		seen = true
	}
	if !seen {
		return AverageSpending{}
	}

	daysSpan := math.Ceil(last.Sub(first).Hours() / 24)
	if daysSpan < 1 {
		daysSpan = 1
	}

	totalF := total.InexactFloat64()
	return AverageSpending{
		Daily:   totalF / daysSpan,
		Weekly:  totalF / (daysSpan / 7),
		Monthly: totalF / (daysSpan / 30),
	}
}

// ProjectMonthlySpending linearly extrapolates the current month's
// spend in the currency to a full-month figure.
func ProjectMonthlySpending(entries []*entity.Expense, currency entity.Currency, now time.Time) decimal.Decimal {
	monthTotal := MonthlyTotal(entries, currency, now)
	if monthTotal.IsZero() {
		return decimal.Zero
	}
	daysElapsed := int64(now.Day())
	daysInMonth := int64(schedule.DaysInMonth(now.Year(), now.Month()))
	return monthTotal.Div(decimal.NewFromInt(daysElapsed)).Mul(decimal.NewFromInt(daysInMonth))
}

// CategoryTrends builds a matrix of normalized per-category totals for
// the trailing monthCount calendar months, oldest first. The current
// month is the last row.
func CategoryTrends(entries []*entity.Expense, monthCount int, now time.Time) []MonthlyCategoryTotals {
	if monthCount <= 0 {
		return nil
	}

	rows := make([]MonthlyCategoryTotals, monthCount)
	currentStart := monthStart(now)
	for i := 0; i < monthCount; i++ {
		rows[i] = MonthlyCategoryTotals{
			Month:  currentStart.AddDate(0, i-monthCount+1, 0),
			Totals: make(map[uuid.UUID]decimal.Decimal),
		}
	}

	earliest := rows[0].Month
	for _, e := range entries {
		if e.Date.Before(earliest) {
			continue
		}
		idx := monthIndex(earliest, e.Date)
		if idx < 0 || idx >= monthCount {
			continue
		}
		row := rows[idx]
		row.Totals[e.CategoryID] = row.Totals[e.CategoryID].Add(normalizedAmount(e))
	}
	return rows
}

// CategoryStats computes the per-category dashboard summary: total,
// count, average, share of the grand total and a month-over-month
// trend classification. Totals use the normalized scale so mixed
// currencies rank consistently. Results are sorted descending by
// total.
func CategoryStats(entries []*entity.Expense, categories []*entity.Category, now time.Time) []CategoryStatsRow {
	currentStart := monthStart(now)
	previousStart := currentStart.AddDate(0, -1, 0)

	type acc struct {
		total    decimal.Decimal
		count    int
		current  decimal.Decimal
		previous decimal.Decimal
	}
	sums := make(map[uuid.UUID]*acc)
	grand := decimal.Zero
	for _, e := range entries {
		a := sums[e.CategoryID]
		if a == nil {
			a = &acc{}
			sums[e.CategoryID] = a
		}
		amount := normalizedAmount(e)
		a.total = a.total.Add(amount)
		a.count++
		grand = grand.Add(amount)

		switch {
		case !e.Date.Before(currentStart):
			a.current = a.current.Add(amount)
		case !e.Date.Before(previousStart):
			a.previous = a.previous.Add(amount)
		}
	}

	var out []CategoryStatsRow
	for _, c := range categories {
		a, ok := sums[c.ID]
		if !ok || a.count == 0 {
			continue
		}

		percentage := 0.0
		if grand.IsPositive() {
			percentage = a.total.Div(grand).InexactFloat64() * 100
		}

		out = append(out, CategoryStatsRow{
			CategoryID: c.ID,
			Name:       c.Name,
			Total:      a.total,
			Count:      a.count,
			Average:    a.total.Div(decimal.NewFromInt(int64(a.count))),
			Percentage: percentage,
			Trend:      classifyTrend(MonthVariation(a.current, a.previous)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// classifyTrend maps a variation percentage to a direction.
func classifyTrend(variation float64) TrendDirection {
	switch {
	case variation > trendThreshold:
		return TrendUp
	case variation < -trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

// monthStart truncates a time to the first instant of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthIndex returns how many calendar months t lies after base.
func monthIndex(base, t time.Time) int {
	return (t.Year()-base.Year())*12 + int(t.Month()) - int(base.Month())
}
