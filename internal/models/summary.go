package models

import (
	"errors"
	"time"

	"github.com/churchops/backend/internal/types"
	"github.com/shopspring/decimal"
)

// HeadSummary contains the reporting figures for one budget head in a month.
type HeadSummary struct {
	HeadName              string          `json:"headName" example:"Youth Ministry"`
	Percentage            decimal.Decimal `json:"percentage" example:"8"`
	AllocatedAmount       decimal.Decimal `json:"allocatedAmount" example:"800"`
	CarryOverAmount       decimal.Decimal `json:"carryOverAmount" example:"120"`
	TotalAvailable        decimal.Decimal `json:"totalAvailable" example:"920"`
	CollectedAmount       decimal.Decimal `json:"collectedAmount" example:"0"`
	TotalExpenses         decimal.Decimal `json:"totalExpenses" example:"300"`
	RemainingAmount       decimal.Decimal `json:"remainingAmount" example:"620"`
	UtilizationPercentage int64           `json:"utilizationPercentage" example:"33"` // Share of the available funds already spent
}

// BudgetSummary is the reporting view over one month's budget, recomputed
// from the expense ledger on every call.
type BudgetSummary struct {
	Month          int             `json:"month" example:"3"`
	Year           int             `json:"year" example:"2025"`
	TotalIncome    decimal.Decimal `json:"totalIncome" example:"10000"`
	TotalAllocated decimal.Decimal `json:"totalAllocated" example:"10000"`
	TotalCarryOver decimal.Decimal `json:"totalCarryOver" example:"350"`
	TotalAvailable decimal.Decimal `json:"totalAvailable" example:"10350"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses" example:"4200"`
	Summary        []HeadSummary   `json:"summary"`
}

// Summarize builds the reporting summary for a period's budget.
func Summarize(period types.Period) (BudgetSummary, error) {
	budget, err := BudgetFor(period)
	if err != nil {
		return BudgetSummary{}, err
	}

	summary := BudgetSummary{
		Month:       budget.Month,
		Year:        budget.Year,
		TotalIncome: budget.TotalIncome,
		Summary:     make([]HeadSummary, 0, len(budget.Heads)),
	}

	for _, head := range budget.Heads {
		spent, err := ExpenseSum(period, head.Name)
		if err != nil {
			return BudgetSummary{}, err
		}

		available := head.TotalAvailable()

		var utilization int64
		if available.IsPositive() {
			utilization = spent.Div(available).Mul(hundred).Round(0).IntPart()
		}

		summary.Summary = append(summary.Summary, HeadSummary{
			HeadName:              head.Name,
			Percentage:            head.Percentage,
			AllocatedAmount:       head.AllocatedAmount,
			CarryOverAmount:       head.CarryOverAmount,
			TotalAvailable:        available,
			CollectedAmount:       head.CollectedAmount,
			TotalExpenses:         spent,
			RemainingAmount:       available.Sub(spent),
			UtilizationPercentage: utilization,
		})

		summary.TotalAllocated = summary.TotalAllocated.Add(head.AllocatedAmount)
		summary.TotalCarryOver = summary.TotalCarryOver.Add(head.CarryOverAmount)
	}

	summary.TotalAvailable = summary.TotalAllocated.Add(summary.TotalCarryOver)

	// The month total includes expenses against heads that are not part of
	// the budget, the ledger is the source of truth.
	summary.TotalExpenses, err = ExpenseSum(period, "")
	if err != nil {
		return BudgetSummary{}, err
	}

	return summary, nil
}

// ExpenditurePoint is one month in the expenditure history.
type ExpenditurePoint struct {
	Month          string                     `json:"month" example:"Mar"`
	MonthNum       int                        `json:"monthNum" example:"3"`
	Year           int                        `json:"year" example:"2025"`
	TotalExpenses  decimal.Decimal            `json:"totalExpenses" example:"4200"`
	TotalBudget    decimal.Decimal            `json:"totalBudget" example:"10350"`
	ExpensesByHead map[string]decimal.Decimal `json:"expensesByHead"`
}

// ExpenditureHistory returns per-month expense and budget totals for the
// given number of months, ending with the month now falls into.
func ExpenditureHistory(now time.Time, months int) ([]ExpenditurePoint, error) {
	points := make([]ExpenditurePoint, 0, months)

	for i := months - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		period := types.PeriodOf(start)

		expenses, err := ExpensesFor(period)
		if err != nil {
			return nil, err
		}

		byHead := make(map[string]decimal.Decimal)
		total := decimal.Zero
		for _, expense := range expenses {
			byHead[expense.BudgetHead] = byHead[expense.BudgetHead].Add(expense.Amount)
			total = total.Add(expense.Amount)
		}

		totalBudget := decimal.Zero
		budget, err := BudgetFor(period)
		if err != nil && !errors.Is(err, ErrResourceNotFound) {
			return nil, err
		}

		if err == nil {
			for _, head := range budget.Heads {
				totalBudget = totalBudget.Add(head.TotalAvailable())
			}
		}

		points = append(points, ExpenditurePoint{
			Month:          start.Format("Jan"),
			MonthNum:       period.Month,
			Year:           period.Year,
			TotalExpenses:  total,
			TotalBudget:    totalBudget,
			ExpensesByHead: byHead,
		})
	}

	return points, nil
}
