package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/churchops/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Expense is a single spending record against a budget head.
//
// Month and Year are derived from Date on every save. Expenses are the source
// of truth for spending, the figures on BudgetHead are only a cache over them.
type Expense struct {
	DefaultModel
	Date          time.Time       `gorm:"index"`
	BudgetHead    string          `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description   string
	PaymentMethod string
	ReceiptNumber string
	RecordedBy    string
	VerifiedBy    string
	Month         int `gorm:"index:expense_period"`
	Year          int `gorm:"index:expense_period"`
}

// Payment methods accepted for expenses and donations.
const (
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodCheque       = "Cheque"
	PaymentMethodOnline       = "Online"
	PaymentMethodOther        = "Other"
)

var paymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodBankTransfer,
	PaymentMethodCheque,
	PaymentMethodOnline,
	PaymentMethodOther,
}

func validPaymentMethod(method string) bool {
	return slices.Contains(paymentMethods, method)
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.BudgetHead = strings.TrimSpace(e.BudgetHead)
	e.Description = strings.TrimSpace(e.Description)
	e.ReceiptNumber = strings.TrimSpace(e.ReceiptNumber)
	e.RecordedBy = strings.TrimSpace(e.RecordedBy)
	e.VerifiedBy = strings.TrimSpace(e.VerifiedBy)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	}

	// The (month, year) key always follows the expense date.
	period := types.PeriodOf(e.Date.UTC())
	e.Month = period.Month
	e.Year = period.Year

	if e.PaymentMethod == "" {
		e.PaymentMethod = PaymentMethodCash
	}

	if !validPaymentMethod(e.PaymentMethod) {
		return ErrPaymentMethodInvalid
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)
	return e.checkIntegrity(tx)
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	return e.checkIntegrity(tx)
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if e.Amount.IsNegative() {
		return ErrExpenseAmountNegative
	}

	return nil
}

// checkIntegrity verifies that the budget head is a known one: part of the
// active settings or of the budget for the expense's month.
func (e *Expense) checkIntegrity(tx *gorm.DB) error {
	known, err := knownHeads(tx, types.NewPeriod(e.Year, e.Month))
	if err != nil {
		return err
	}

	if !known[e.BudgetHead] {
		return ErrUnknownBudgetHead
	}

	return nil
}

// knownHeads collects the head names of the active settings and of the budget
// for the period. Queries run on tx since hooks execute inside the write
// transaction and the pool only holds a single connection.
func knownHeads(tx *gorm.DB, period types.Period) (map[string]bool, error) {
	known := make(map[string]bool)

	var settings BudgetSettings
	err := tx.Preload("Heads").Where("active = ?", true).First(&settings).Error
	if err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for _, head := range settings.Heads {
		known[head.Name] = true
	}

	var budget Budget
	err = tx.Preload("Heads").Where(&Budget{Month: period.Month, Year: period.Year}).First(&budget).Error
	if err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for _, head := range budget.Heads {
		known[head.Name] = true
	}

	return known, nil
}

// Period returns the calendar month the expense falls into.
func (e Expense) Period() types.Period {
	return types.NewPeriod(e.Year, e.Month)
}

// ExpenseSum returns the total expense amount for a period. With a non-empty
// headName, only expenses against that head are summed.
func ExpenseSum(period types.Period, headName string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Model(&Expense{}).
		Where(&Expense{Month: period.Month, Year: period.Year, BudgetHead: headName}).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for %s failed: %w", period, err)
	}

	return sum.Decimal, nil
}

// ExpensesFor returns all expenses of a period, newest first.
func ExpensesFor(period types.Period) ([]Expense, error) {
	var expenses []Expense

	err := DB.
		Where(&Expense{Month: period.Month, Year: period.Year}).
		Order("date DESC").
		Find(&expenses).Error

	return expenses, err
}
