package v1

import (
	"time"

	"github.com/churchops/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetHead is the response representation of one budget head line.
type BudgetHead struct {
	HeadName        string          `json:"headName" example:"Missions & Outreach"`
	Percentage      decimal.Decimal `json:"percentage" example:"25"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" example:"2500"`
	CarryOverAmount decimal.Decimal `json:"carryOverAmount" example:"320"`
	CollectedAmount decimal.Decimal `json:"collectedAmount" example:"0"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses" example:"800"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"2020"`
}

// Budget is the response representation of a monthly budget.
type Budget struct {
	ID          uuid.UUID       `json:"id" example:"6b0f4456-27c7-4a4e-a3c1-855ae6acb4b4"`
	Month       int             `json:"month" example:"3"`
	Year        int             `json:"year" example:"2025"`
	TotalIncome decimal.Decimal `json:"totalIncome" example:"10000"`
	Status      string          `json:"status" example:"active"`
	Notes       string          `json:"notes" example:"Allocated after the annual meeting"`
	CreatedBy   string          `json:"createdBy" example:"Treasurer"`
	BudgetHeads []BudgetHead    `json:"budgetHeads"`
	CreatedAt   time.Time       `json:"createdAt" example:"2025-03-01T07:23:42.069563Z"`
	UpdatedAt   time.Time       `json:"updatedAt" example:"2025-03-01T07:23:42.069563Z"`
}

func newBudget(model models.Budget) Budget {
	heads := make([]BudgetHead, 0, len(model.Heads))
	for _, head := range model.Heads {
		heads = append(heads, BudgetHead{
			HeadName:        head.Name,
			Percentage:      head.Percentage,
			AllocatedAmount: head.AllocatedAmount,
			CarryOverAmount: head.CarryOverAmount,
			CollectedAmount: head.CollectedAmount,
			TotalExpenses:   head.TotalExpenses,
			RemainingAmount: head.RemainingAmount,
		})
	}

	return Budget{
		ID:          model.ID,
		Month:       model.Month,
		Year:        model.Year,
		TotalIncome: model.TotalIncome,
		Status:      model.Status,
		Notes:       model.Notes,
		CreatedBy:   model.CreatedBy,
		BudgetHeads: heads,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// BudgetEditable contains the budget fields that clients can write.
type BudgetEditable struct {
	Month       int             `json:"month" binding:"required,min=1,max=12" example:"3"`
	Year        int             `json:"year" binding:"required" example:"2025"`
	TotalIncome decimal.Decimal `json:"totalIncome" example:"10000"`
	Notes       string          `json:"notes" example:"Allocated after the annual meeting"`
	CreatedBy   string          `json:"createdBy" example:"Treasurer"`
}

// CollectedEditable is the request body for adding to a head's collected
// counter.
type CollectedEditable struct {
	Month      int             `json:"month" binding:"required,min=1,max=12" example:"3"`
	Year       int             `json:"year" binding:"required" example:"2025"`
	BudgetHead string          `json:"budgetHead" binding:"required" example:"Youth Ministry"`
	Amount     decimal.Decimal `json:"amount" example:"250"`
}

type BudgetResponse struct {
	Budget Budget `json:"budget"`
}

type BudgetCreateResponse struct {
	Msg    string `json:"msg" example:"Budget allocated successfully with carry-over"`
	Budget Budget `json:"budget"`
}

type BudgetListResponse struct {
	Budgets []Budget `json:"budgets"`
}

type LastMonthIncomeResponse struct {
	TotalIncome decimal.Decimal `json:"totalIncome" example:"10000"`
	Month       int             `json:"month" example:"2"`
	Year        int             `json:"year" example:"2025"`
	MonthName   string          `json:"monthName" example:"February"`
}

type ExpenditureTrackerResponse struct {
	Data []models.ExpenditurePoint `json:"data"`
}
