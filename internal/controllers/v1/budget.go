package v1

import (
	"net/http"
	"time"

	"github.com/churchops/backend/internal/httputil"
	"github.com/churchops/backend/internal/models"
	"github.com/churchops/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets and the reports
// derived from them.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/budget", OptionsBudget)
		r.GET("/budget", GetBudget)
		r.POST("/budget", CreateBudget)
	}
	{
		r.OPTIONS("/budget/auto-allocate", OptionsBudgetAutoAllocate)
		r.POST("/budget/auto-allocate", AutoAllocateBudget)
	}
	{
		r.OPTIONS("/budget/collected", OptionsBudgetCollected)
		r.PUT("/budget/collected", UpdateCollectedAmount)
	}
	{
		r.OPTIONS("/budgets", OptionsBudgets)
		r.GET("/budgets", GetBudgets)
	}
	{
		r.OPTIONS("/budget-summary", OptionsBudgetSummary)
		r.GET("/budget-summary", GetBudgetSummary)
	}
	{
		r.OPTIONS("/last-month-income", OptionsLastMonthIncome)
		r.GET("/last-month-income", GetLastMonthIncome)
	}
	{
		r.OPTIONS("/expenditure-tracker", OptionsExpenditureTracker)
		r.GET("/expenditure-tracker", GetExpenditureTracker)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budget [options]
func OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budget/auto-allocate [options]
func OptionsBudgetAutoAllocate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budget/collected [options]
func OptionsBudgetCollected(c *gin.Context) {
	httputil.OptionsPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budget-summary [options]
func OptionsBudgetSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/last-month-income [options]
func OptionsLastMonthIncome(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/expenditure-tracker [options]
func OptionsExpenditureTracker(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get budget
// @Description	Returns the budget for a month, reconciled against the expense ledger
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		int	true	"Month"
// @Param			year	query		int	true	"Year"
// @Router			/v1/budget [get]
func GetBudget(c *gin.Context) {
	var query QueryPeriod
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errMonthAndYearRequired.Error()})
		return
	}

	budget, err := models.BudgetFor(query.period())
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// Reading a budget always reconciles it first, so the cached figures
	// cannot drift from the expense ledger.
	err = budget.Reconcile()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{newBudget(budget)})
}

// @Summary		Create budget
// @Description	Allocates the budget for a month from the active settings, including the carry-over from the previous month
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budget [post]
func CreateBudget(c *gin.Context) {
	var data BudgetEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if data.CreatedBy == "" {
		data.CreatedBy = defaultUpdatedBy
	}

	budget, err := models.CreateBudget(types.NewPeriod(data.Year, data.Month), data.TotalIncome, data.Notes, data.CreatedBy)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BudgetCreateResponse{
		Msg:    "Budget allocated successfully with carry-over",
		Budget: newBudget(budget),
	})
}

// @Summary		Auto-allocate budget
// @Description	Creates the budget for the current month from last month's donation income
// @Tags			Budgets
// @Produce		json
// @Success		201	{object}	BudgetCreateResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/budget/auto-allocate [post]
func AutoAllocateBudget(c *gin.Context) {
	budget, err := models.AutoAllocate(time.Now())
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BudgetCreateResponse{
		Msg:    "Budget automatically allocated from last month's income",
		Budget: newBudget(budget),
	})
}

// @Summary		Update collected amount
// @Description	Adds an amount to the collected counter of a budget head
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200			{object}	BudgetCreateResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			collected	body		CollectedEditable	true	"Collected amount"
// @Router			/v1/budget/collected [put]
func UpdateCollectedAmount(c *gin.Context) {
	var data CollectedEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	budget, err := models.AddCollected(types.NewPeriod(data.Year, data.Month), data.BudgetHead, data.Amount)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetCreateResponse{
		Msg:    "Collected amount updated successfully",
		Budget: newBudget(budget),
	})
}

// @Summary		List budgets
// @Description	Returns all budgets, newest month first
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	budgets, err := models.Budgets()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	list := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		list = append(list, newBudget(budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{list})
}

// @Summary		Get budget summary
// @Description	Returns the per-head reporting summary for a month, recomputed from the expense ledger
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	models.BudgetSummary
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		int	true	"Month"
// @Param			year	query		int	true	"Year"
// @Router			/v1/budget-summary [get]
func GetBudgetSummary(c *gin.Context) {
	var query QueryPeriod
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errMonthAndYearRequired.Error()})
		return
	}

	summary, err := models.Summarize(query.period())
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary		Get last month's income
// @Description	Returns the donation income of the month before the given or current one
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	LastMonthIncomeResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		int	false	"Month"
// @Param			year	query		int	false	"Year"
// @Router			/v1/last-month-income [get]
func GetLastMonthIncome(c *gin.Context) {
	var query struct {
		Month int `form:"month" binding:"omitempty,min=1,max=12"`
		Year  int `form:"year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return
	}

	period := types.PeriodOf(time.Now())
	if query.Month != 0 && query.Year != 0 {
		period = types.NewPeriod(query.Year, query.Month)
	}
	previous := period.Previous()

	income, err := models.DonationSum(previous)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, LastMonthIncomeResponse{
		TotalIncome: income,
		Month:       previous.Month,
		Year:        previous.Year,
		MonthName:   previous.MonthName(),
	})
}

// @Summary		Get expenditure history
// @Description	Returns per-month expense and budget totals for charting
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	ExpenditureTrackerResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			months	query		int	false	"Number of months, defaults to 6"
// @Router			/v1/expenditure-tracker [get]
func GetExpenditureTracker(c *gin.Context) {
	var query struct {
		Months int `form:"months" binding:"omitempty,min=1,max=36"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return
	}

	if query.Months == 0 {
		query.Months = 6
	}

	points, err := models.ExpenditureHistory(time.Now(), query.Months)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExpenditureTrackerResponse{points})
}
