package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/churchops/backend/internal/controllers/v1"
	"github.com/churchops/backend/internal/models"
	"github.com/churchops/backend/internal/types"
	"github.com/churchops/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createBudget(month, year int, totalIncome int64) v1.BudgetCreateResponse {
	body := v1.BudgetEditable{
		Month:       month,
		Year:        year,
		TotalIncome: decimal.NewFromInt(totalIncome),
	}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) TestBudgetCreate() {
	suite.replaceTestSettings(settingsHead("Missions", 25), settingsHead("General", 75))

	response := suite.createBudget(3, 2025, 1000)

	assert.Equal(suite.T(), "Budget allocated successfully with carry-over", response.Msg)
	assert.Equal(suite.T(), 3, response.Budget.Month)
	require.Len(suite.T(), response.Budget.BudgetHeads, 2)
	assert.True(suite.T(), response.Budget.BudgetHeads[0].AllocatedAmount.Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), response.Budget.BudgetHeads[1].AllocatedAmount.Equal(decimal.NewFromInt(750)))
}

func (suite *TestSuiteStandard) TestBudgetCreateDuplicate() {
	suite.replaceTestSettings(settingsHead("General", 100))
	suite.createBudget(3, 2025, 1000)

	body := v1.BudgetEditable{Month: 3, Year: 2025, TotalIncome: decimal.NewFromInt(500)}
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetCreateInvalidMonth() {
	suite.replaceTestSettings(settingsHead("General", 100))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget", `{"month": 13, "year": 2025, "totalIncome": 100}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetGet() {
	suite.replaceTestSettings(settingsHead("General", 100))
	suite.createBudget(3, 2025, 1000)

	suite.createTestExpense(models.Expense{
		Date:       date(2025, 3, 5),
		BudgetHead: "General",
		Amount:     decimal.NewFromInt(400),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget?month=3&year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Reading the budget reconciles it against the expense ledger.
	require.Len(suite.T(), response.Budget.BudgetHeads, 1)
	assert.True(suite.T(), response.Budget.BudgetHeads[0].TotalExpenses.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), response.Budget.BudgetHeads[0].RemainingAmount.Equal(decimal.NewFromInt(600)))
}

func (suite *TestSuiteStandard) TestBudgetGetWithoutPeriod() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget?month=3&year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetAutoAllocate() {
	suite.replaceTestSettings(settingsHead("General", 100))

	previous := types.PeriodOf(time.Now()).Previous()
	start, _ := previous.Bounds()
	suite.createTestDonation(models.Donation{
		Amount: decimal.NewFromInt(800),
		Date:   start.Add(12 * time.Hour),
	})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget/auto-allocate", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Budget.TotalIncome.Equal(decimal.NewFromInt(800)))
	assert.Equal(suite.T(), "System", response.Budget.CreatedBy)
}

func (suite *TestSuiteStandard) TestBudgetAutoAllocateNoIncome() {
	suite.replaceTestSettings(settingsHead("General", 100))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget/auto-allocate", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetCollected() {
	suite.replaceTestSettings(settingsHead("General", 100))
	suite.createBudget(3, 2025, 1000)

	body := v1.CollectedEditable{
		Month:      3,
		Year:       2025,
		BudgetHead: "General",
		Amount:     decimal.NewFromInt(120),
	}

	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/budget/collected", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Budget.BudgetHeads[0].CollectedAmount.Equal(decimal.NewFromInt(120)))
}

func (suite *TestSuiteStandard) TestBudgetCollectedUnknownHead() {
	suite.replaceTestSettings(settingsHead("General", 100))
	suite.createBudget(3, 2025, 1000)

	body := v1.CollectedEditable{
		Month:      3,
		Year:       2025,
		BudgetHead: "No Such Head",
		Amount:     decimal.NewFromInt(10),
	}

	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/budget/collected", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	suite.replaceTestSettings(settingsHead("General", 100))
	suite.createBudget(12, 2024, 500)
	suite.createBudget(1, 2025, 600)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Budgets, 2)
	assert.Equal(suite.T(), 1, response.Budgets[0].Month)
	assert.Equal(suite.T(), 12, response.Budgets[1].Month)
}

func (suite *TestSuiteStandard) TestBudgetSummary() {
	suite.replaceTestSettings(settingsHead("A", 50), settingsHead("B", 50))
	suite.createBudget(3, 2025, 1000)

	suite.createTestExpense(models.Expense{
		Date:       date(2025, 3, 5),
		BudgetHead: "A",
		Amount:     decimal.NewFromInt(200),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-summary?month=3&year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response models.BudgetSummary
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.TotalExpenses.Equal(decimal.NewFromInt(200)))
	require.Len(suite.T(), response.Summary, 2)
	assert.Equal(suite.T(), int64(40), response.Summary[0].UtilizationPercentage)
}

func (suite *TestSuiteStandard) TestLastMonthIncome() {
	suite.createTestDonation(models.Donation{
		Amount: decimal.NewFromInt(450),
		Date:   date(2025, 2, 23),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/last-month-income?month=3&year=2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.LastMonthIncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.TotalIncome.Equal(decimal.NewFromInt(450)))
	assert.Equal(suite.T(), 2, response.Month)
	assert.Equal(suite.T(), 2025, response.Year)
	assert.Equal(suite.T(), "February", response.MonthName)
}

func (suite *TestSuiteStandard) TestExpenditureTracker() {
	suite.replaceTestSettings(settingsHead("General", 100))

	now := time.Now()
	suite.createTestExpense(models.Expense{
		Date:       now,
		BudgetHead: "General",
		Amount:     decimal.NewFromInt(75),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenditure-tracker?months=3", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenditureTrackerResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data, 3)
	last := response.Data[2]
	assert.Equal(suite.T(), now.UTC().Year(), last.Year)
	assert.True(suite.T(), last.TotalExpenses.Equal(decimal.NewFromInt(75)))
}
