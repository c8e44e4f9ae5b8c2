package models

import (
	"errors"
	"strings"
	"time"

	"github.com/churchops/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Budget is the monthly allocation ledger. Exactly one budget can exist per
// calendar month, enforced by the unique index over (month, year).
type Budget struct {
	DefaultModel
	Month int `gorm:"uniqueIndex:budget_period"`
	Year  int `gorm:"uniqueIndex:budget_period"`

	// TotalIncome is the previous month's donation income the new
	// allocations of this budget were computed from.
	TotalIncome decimal.Decimal `gorm:"type:DECIMAL(20,8)"`

	Status    string
	Notes     string
	CreatedBy string

	Heads []BudgetHead `gorm:"foreignKey:BudgetID;references:ID;constraint:OnDelete:CASCADE"`
}

// Budget statuses. A budget starts out active; completing or archiving it is
// a manual bookkeeping step and never deletes the ledger.
const (
	BudgetStatusActive    = "active"
	BudgetStatusCompleted = "completed"
	BudgetStatusArchived  = "archived"
)

var budgetStatuses = []string{BudgetStatusActive, BudgetStatusCompleted, BudgetStatusArchived}

// BudgetHead is the ledger line for one budget head in one month.
//
// Percentage is a snapshot of the settings at allocation time, so later
// settings changes do not retroactively alter past months. TotalExpenses and
// RemainingAmount are a cache over the expense ledger and are always fully
// recomputed, never incremented.
type BudgetHead struct {
	Timestamps
	BudgetID        uuid.UUID       `gorm:"primaryKey"`
	Name            string          `gorm:"primaryKey"`
	Percentage      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AllocatedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CarryOverAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CollectedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TotalExpenses   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	RemainingAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Position        uint
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Notes = strings.TrimSpace(b.Notes)
	b.CreatedBy = strings.TrimSpace(b.CreatedBy)

	if !b.Period().Valid() {
		return ErrMonthOutOfRange
	}

	if !slices.Contains(budgetStatuses, b.Status) {
		return ErrBudgetStatusInvalid
	}

	return nil
}

// Period returns the calendar month this budget is for.
func (b Budget) Period() types.Period {
	return types.NewPeriod(b.Year, b.Month)
}

// TotalAvailable returns the sum of new allocation and carry-over for a head.
func (h BudgetHead) TotalAvailable() decimal.Decimal {
	return h.AllocatedAmount.Add(h.CarryOverAmount)
}

// BudgetFor returns the budget for the given period with its heads in
// allocation order.
func BudgetFor(period types.Period) (Budget, error) {
	var budget Budget

	err := DB.
		Preload("Heads", sortHeadsByPosition).
		Where(&Budget{Month: period.Month, Year: period.Year}).
		First(&budget).Error

	return budget, err
}

// Budgets returns all budgets, newest period first.
func Budgets() ([]Budget, error) {
	var budgets []Budget

	err := DB.
		Preload("Heads", sortHeadsByPosition).
		Order("year DESC, month DESC").
		Find(&budgets).Error

	return budgets, err
}

// CarryOver computes the unspent balance per budget head that the given
// period inherits from the immediately preceding month.
//
// Only one hop back is ever taken: the previous budget already embeds its own
// resolved carry-over, so the month chain resolves transitively. Overspent
// heads are floored to zero, overspending never becomes a debt.
func CarryOver(period types.Period) (map[string]decimal.Decimal, error) {
	previous := period.Previous()
	carryOver := make(map[string]decimal.Decimal)

	budget, err := BudgetFor(previous)
	if err != nil {
		if !errors.Is(err, ErrResourceNotFound) {
			return nil, err
		}

		// No previous budget. Zero every currently configured head so that
		// callers can still range over the full head list.
		settings, err := ActiveSettings()
		if err != nil {
			return nil, err
		}

		for _, head := range settings.Heads {
			carryOver[head.Name] = decimal.Zero
		}

		return carryOver, nil
	}

	for _, head := range budget.Heads {
		spent, err := ExpenseSum(previous, head.Name)
		if err != nil {
			return nil, err
		}

		remaining := head.TotalAvailable().Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		carryOver[head.Name] = remaining
	}

	return carryOver, nil
}

// CreateBudget allocates the budget for a period: every head from the active
// settings receives its percentage share of totalIncome, rounded to whole
// units, plus the carry-over from the previous month.
//
// The unique index over (month, year) guarantees that concurrent calls for
// the same period result in exactly one budget, the loser gets
// ErrBudgetExists and nothing is written.
func CreateBudget(period types.Period, totalIncome decimal.Decimal, notes, createdBy string) (Budget, error) {
	if !period.Valid() {
		return Budget{}, ErrMonthOutOfRange
	}

	settings, err := ActiveSettings()
	if err != nil {
		return Budget{}, err
	}

	carryOver, err := CarryOver(period)
	if err != nil {
		return Budget{}, err
	}

	heads := make([]BudgetHead, 0, len(settings.Heads))
	for i, head := range settings.Heads {
		allocated := totalIncome.Mul(head.Percentage).Div(hundred).Round(0)
		carry := carryOver[head.Name]

		heads = append(heads, BudgetHead{
			Name:            head.Name,
			Percentage:      head.Percentage,
			AllocatedAmount: allocated,
			CarryOverAmount: carry,
			RemainingAmount: allocated.Add(carry),
			Position:        uint(i),
		})
	}

	budget := Budget{
		Month:       period.Month,
		Year:        period.Year,
		TotalIncome: totalIncome,
		Status:      BudgetStatusActive,
		Notes:       notes,
		CreatedBy:   createdBy,
		Heads:       heads,
	}

	err = DB.Create(&budget).Error
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// AutoAllocate creates the budget for the current calendar month from the
// previous month's donation income. Without any income, no budget is created
// and ErrNoIncome is returned.
func AutoAllocate(now time.Time) (Budget, error) {
	period := types.PeriodOf(now)

	_, err := BudgetFor(period)
	if err == nil {
		return Budget{}, ErrBudgetExists
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Budget{}, err
	}

	income, err := DonationSum(period.Previous())
	if err != nil {
		return Budget{}, err
	}

	if income.IsZero() {
		return Budget{}, ErrNoIncome
	}

	return CreateBudget(period, income, "Automatically allocated based on last month's income", "System")
}

// ReconcileHead recomputes the expense figures for one budget head from the
// expense ledger. When no budget exists for the period this is a no-op,
// expenses may predate their budget and are picked up once it is created.
func ReconcileHead(period types.Period, headName string) error {
	budget, err := BudgetFor(period)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil
		}

		return err
	}

	return budget.reconcileHead(headName)
}

// Reconcile recomputes the expense figures for every head of the budget.
// Reading a budget always reconciles first, so the returned figures are
// consistent with the expense ledger even if individual triggers were missed.
func (b *Budget) Reconcile() error {
	for i := range b.Heads {
		err := b.reconcileHead(b.Heads[i].Name)
		if err != nil {
			return err
		}
	}

	return nil
}

// reconcileHead replaces the head's cached figures with a full recomputation
// from the expense ledger. RemainingAmount may go negative, overspending is
// visible but not blocked.
func (b *Budget) reconcileHead(name string) error {
	spent, err := ExpenseSum(b.Period(), name)
	if err != nil {
		return err
	}

	for i := range b.Heads {
		head := &b.Heads[i]
		if head.Name != name {
			continue
		}

		head.TotalExpenses = spent
		head.RemainingAmount = head.TotalAvailable().Sub(spent)

		return DB.Model(&BudgetHead{}).
			Where(&BudgetHead{BudgetID: b.ID, Name: name}).
			Updates(map[string]any{
				"total_expenses":   head.TotalExpenses,
				"remaining_amount": head.RemainingAmount,
			}).Error
	}

	// The head is not part of this budget, nothing to reconcile.
	return nil
}

// AddCollected adds an amount to a head's collected counter. The counter is
// informational and independent of the expense figures.
func AddCollected(period types.Period, headName string, amount decimal.Decimal) (Budget, error) {
	budget, err := BudgetFor(period)
	if err != nil {
		return Budget{}, err
	}

	for i := range budget.Heads {
		head := &budget.Heads[i]
		if head.Name != headName {
			continue
		}

		head.CollectedAmount = head.CollectedAmount.Add(amount)

		err = DB.Model(&BudgetHead{}).
			Where(&BudgetHead{BudgetID: budget.ID, Name: headName}).
			Update("collected_amount", head.CollectedAmount).Error
		if err != nil {
			return Budget{}, err
		}

		return budget, nil
	}

	return Budget{}, ErrBudgetHeadNotFound
}
