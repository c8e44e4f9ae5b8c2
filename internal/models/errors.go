package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Budget settings errors
var (
	ErrSettingsNoHeads          = errors.New("budget settings must contain at least one budget head")
	ErrPercentageOutOfRange     = errors.New("budget head percentages must be between 0 and 100")
	ErrPercentagesDoNotSumTo100 = errors.New("budget head percentages must sum to 100")
	ErrHeadNameEmpty            = errors.New("budget head names must not be empty")
	ErrHeadNameNotUnique        = errors.New("budget head names must be unique within the settings")
	ErrActiveSettingsExist      = errors.New("another set of budget settings is already active")
)

// Budget errors
var (
	ErrBudgetExists        = errors.New("a budget already exists for this month")
	ErrNoIncome            = errors.New("no donation income was recorded for the previous month, cannot allocate a budget")
	ErrMonthOutOfRange     = errors.New("the month must be between 1 and 12")
	ErrBudgetStatusInvalid = errors.New("the budget status must be one of 'active', 'completed' or 'archived'")
	ErrBudgetHeadNotFound  = fmt.Errorf("%w budget head with this name in the budget", ErrResourceNotFound)
)

// Expense and donation errors
var (
	ErrUnknownBudgetHead         = errors.New("the budget head is not configured, check the budget settings")
	ErrExpenseAmountNegative     = errors.New("expense amounts must not be negative")
	ErrPaymentMethodInvalid      = errors.New("the payment method must be one of 'Cash', 'Bank Transfer', 'Cheque', 'Online' or 'Other'")
	ErrDonationAmountNotPositive = errors.New("donation amounts must be larger than zero")
)
