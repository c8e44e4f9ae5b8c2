package v1

import (
	"time"

	"github.com/churchops/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is the response representation of one expense record.
type Expense struct {
	ID            uuid.UUID       `json:"id" example:"ec6a9b5f-6f8c-4a27-a454-bdbde368c353"`
	ExpenseDate   time.Time       `json:"expenseDate" example:"2025-03-14T00:00:00Z"`
	BudgetHead    string          `json:"budgetHead" example:"Building & Maintenance"`
	Amount        decimal.Decimal `json:"amount" example:"350"`
	Description   string          `json:"description" example:"Roof repair"`
	PaymentMethod string          `json:"paymentMethod" example:"Bank Transfer"`
	ReceiptNumber string          `json:"receiptNumber" example:"RCPT-2025-031"`
	RecordedBy    string          `json:"recordedBy" example:"Treasurer"`
	VerifiedBy    string          `json:"verifiedBy" example:"Pastor"`
	Month         int             `json:"month" example:"3"`
	Year          int             `json:"year" example:"2025"`
	CreatedAt     time.Time       `json:"createdAt" example:"2025-03-14T18:43:00.271152Z"`
	UpdatedAt     time.Time       `json:"updatedAt" example:"2025-03-14T18:43:00.271152Z"`
}

func newExpense(model models.Expense) Expense {
	return Expense{
		ID:            model.ID,
		ExpenseDate:   model.Date,
		BudgetHead:    model.BudgetHead,
		Amount:        model.Amount,
		Description:   model.Description,
		PaymentMethod: model.PaymentMethod,
		ReceiptNumber: model.ReceiptNumber,
		RecordedBy:    model.RecordedBy,
		VerifiedBy:    model.VerifiedBy,
		Month:         model.Month,
		Year:          model.Year,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ExpenseEditable contains the expense fields that clients can write.
//
// The json tags must not carry options since they double as the lookup key
// for httputil.GetBodyFields.
type ExpenseEditable struct {
	ExpenseDate   time.Time       `json:"expenseDate" example:"2025-03-14T00:00:00Z"`
	BudgetHead    string          `json:"budgetHead" example:"Building & Maintenance"`
	Amount        decimal.Decimal `json:"amount" example:"350"`
	Description   string          `json:"description" example:"Roof repair"`
	PaymentMethod string          `json:"paymentMethod" example:"Bank Transfer"`
	ReceiptNumber string          `json:"receiptNumber" example:"RCPT-2025-031"`
	RecordedBy    string          `json:"recordedBy" example:"Treasurer"`
	VerifiedBy    string          `json:"verifiedBy" example:"Pastor"`
}

func (e ExpenseEditable) model() models.Expense {
	return models.Expense{
		Date:          e.ExpenseDate,
		BudgetHead:    e.BudgetHead,
		Amount:        e.Amount,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		ReceiptNumber: e.ReceiptNumber,
		RecordedBy:    e.RecordedBy,
		VerifiedBy:    e.VerifiedBy,
	}
}

// ExpenseQueryFilter are the query parameters for listing expenses.
//
// BudgetHead, FromDate and ToDate are processed by explicit logic, only
// Month and Year filter the gorm query directly.
type ExpenseQueryFilter struct {
	Month      int    `form:"month"`
	Year       int    `form:"year"`
	BudgetHead string `form:"budgetHead" filterField:"false"`
	FromDate   string `form:"fromDate" filterField:"false"`
	ToDate     string `form:"toDate" filterField:"false"`
}

type ExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type ExpenseCreateResponse struct {
	Msg     string  `json:"msg" example:"Expense added successfully"`
	Expense Expense `json:"expense"`
}

type ExpenseDeleteResponse struct {
	Msg string `json:"msg" example:"Expense deleted successfully"`
}

type ExpenseListResponse struct {
	Expenses []Expense `json:"expenses"`
}

type ExpensesByHeadResponse struct {
	BudgetHead    string          `json:"budgetHead" example:"Building & Maintenance"`
	Month         int             `json:"month" example:"3"`
	Year          int             `json:"year" example:"2025"`
	Expenses      []Expense       `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"1250"`
	Count         int             `json:"count" example:"4"`
}

// ExpenseHeadSummary is the expense total for one budget head in the expense
// summary report.
type ExpenseHeadSummary struct {
	BudgetHead  string          `json:"budgetHead" example:"Building & Maintenance"`
	TotalAmount decimal.Decimal `json:"totalAmount" example:"1250"`
	Count       int64           `json:"count" example:"4"`
}

type ExpenseSummaryResponse struct {
	Month         int                  `json:"month" example:"3"`
	Year          int                  `json:"year" example:"2025"`
	Summary       []ExpenseHeadSummary `json:"summary"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses" example:"4200"`
}
