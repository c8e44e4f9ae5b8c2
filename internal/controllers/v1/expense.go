package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/churchops/backend/internal/httputil"
	"github.com/churchops/backend/internal/models"
	"github.com/churchops/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// RegisterExpenseRoutes registers the routes for expenses.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenses)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}
	{
		r.OPTIONS("/summary", OptionsExpenseSummary)
		r.GET("/summary", GetExpenseSummary)
	}
	{
		r.OPTIONS("/by-head", OptionsExpensesByHead)
		r.GET("/by-head", GetExpensesByHead)
	}
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/summary [options]
func OptionsExpenseSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/by-head [options]
func OptionsExpensesByHead(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{httputil.ErrInvalidUUID.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// reconcileAfter recomputes the budget figures for every month and head an
// expense mutation touched. A reconciliation failure is logged but never
// fails the request, the next budget read reconciles again anyway.
func reconcileAfter(c *gin.Context, expenses ...models.Expense) {
	type triple struct {
		period types.Period
		head   string
	}

	seen := make(map[triple]bool)
	for _, expense := range expenses {
		t := triple{expense.Period(), expense.BudgetHead}
		if seen[t] {
			continue
		}
		seen[t] = true

		err := models.ReconcileHead(t.period, t.head)
		if err != nil {
			log.Error().
				Str("request-id", requestid.Get(c)).
				Str("period", t.period.String()).
				Str("budgetHead", t.head).
				Err(err).
				Msg("budget reconciliation failed")
		}
	}
}

// @Summary		Create expense
// @Description	Records an expense against a budget head and reconciles the month's budget
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseCreateResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var data ExpenseEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	expense := data.model()
	err = models.DB.Create(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	reconcileAfter(c, expense)

	c.JSON(http.StatusCreated, ExpenseCreateResponse{
		Msg:     "Expense added successfully",
		Expense: newExpense(expense),
	})
}

// @Summary		List expenses
// @Description	Returns expenses, optionally filtered by month, budget head pattern or date range
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			month		query		int		false	"Month"
// @Param			year		query		int		false	"Year"
// @Param			budgetHead	query		string	false	"Budget head, * matches any number of characters"
// @Param			fromDate	query		string	false	"Earliest expense date, formatted YYYY-MM-DD"
// @Param			toDate		query		string	false	"Latest expense date, formatted YYYY-MM-DD"
// @Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("date DESC").
		Where(&models.Expense{Month: filter.Month, Year: filter.Year}, queryFields...)

	if filter.FromDate != "" {
		from, err := time.Parse("2006-01-02", filter.FromDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{err.Error()})
			return
		}
		q = q.Where("date >= ?", from)
	}

	if filter.ToDate != "" {
		to, err := time.Parse("2006-01-02", filter.ToDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{err.Error()})
			return
		}
		// The whole day is included.
		q = q.Where("date < ?", to.AddDate(0, 0, 1))
	}

	pattern := strings.Contains(filter.BudgetHead, "*")
	if filter.BudgetHead != "" && !pattern {
		q = q.Where("budget_head = ?", filter.BudgetHead)
	}

	var expenses []models.Expense
	err := q.Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	list := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		if pattern && !glob.Glob(filter.BudgetHead, expense.BudgetHead) {
			continue
		}

		list = append(list, newExpense(expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{list})
}

// @Summary		Get expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{httputil.ErrInvalidUUID.Error()})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{newExpense(expense)})
}

// @Summary		Update expense
// @Description	Updates an expense and reconciles every month and budget head it touched
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseCreateResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{httputil.ErrInvalidUUID.Error()})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// The state before the update, its month and head need reconciliation
	// when the expense moves.
	before := expense

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var data ExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "ExpenseDate":
			expense.Date = data.ExpenseDate
		case "BudgetHead":
			expense.BudgetHead = data.BudgetHead
		case "Amount":
			expense.Amount = data.Amount
		case "Description":
			expense.Description = data.Description
		case "PaymentMethod":
			expense.PaymentMethod = data.PaymentMethod
		case "ReceiptNumber":
			expense.ReceiptNumber = data.ReceiptNumber
		case "RecordedBy":
			expense.RecordedBy = data.RecordedBy
		case "VerifiedBy":
			expense.VerifiedBy = data.VerifiedBy
		}
	}

	err = models.DB.Save(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	reconcileAfter(c, before, expense)

	c.JSON(http.StatusOK, ExpenseCreateResponse{
		Msg:     "Expense updated successfully",
		Expense: newExpense(expense),
	})
}

// @Summary		Delete expense
// @Description	Deletes an expense and reconciles the month's budget
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseDeleteResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{httputil.ErrInvalidUUID.Error()})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	reconcileAfter(c, expense)

	c.JSON(http.StatusOK, ExpenseDeleteResponse{Msg: "Expense deleted successfully"})
}

// @Summary		List expenses for one budget head
// @Description	Returns the expenses of one budget head in a month with their total
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpensesByHeadResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			month		query		int		true	"Month"
// @Param			year		query		int		true	"Year"
// @Param			budgetHead	query		string	true	"Budget head"
// @Router			/v1/expenses/by-head [get]
func GetExpensesByHead(c *gin.Context) {
	var query struct {
		QueryPeriod
		BudgetHead string `form:"budgetHead" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return
	}

	var expenses []models.Expense
	err := models.DB.
		Where(&models.Expense{Month: query.Month, Year: query.Year, BudgetHead: query.BudgetHead}).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	list := make([]Expense, 0, len(expenses))
	total := decimal.Zero
	for _, expense := range expenses {
		list = append(list, newExpense(expense))
		total = total.Add(expense.Amount)
	}

	c.JSON(http.StatusOK, ExpensesByHeadResponse{
		BudgetHead:    query.BudgetHead,
		Month:         query.Month,
		Year:          query.Year,
		Expenses:      list,
		TotalExpenses: total,
		Count:         len(list),
	})
}

// @Summary		Get expense summary
// @Description	Returns the per-head expense totals of a month
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseSummaryResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		int	true	"Month"
// @Param			year	query		int	true	"Year"
// @Router			/v1/expenses/summary [get]
func GetExpenseSummary(c *gin.Context) {
	var query QueryPeriod
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errMonthAndYearRequired.Error()})
		return
	}

	rows, err := models.DB.Model(&models.Expense{}).
		Where(&models.Expense{Month: query.Month, Year: query.Year}).
		Select("budget_head, SUM(amount), COUNT(*)").
		Group("budget_head").
		Order("SUM(amount) DESC").
		Rows()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}
	defer rows.Close()

	response := ExpenseSummaryResponse{
		Month:   query.Month,
		Year:    query.Year,
		Summary: make([]ExpenseHeadSummary, 0),
	}

	for rows.Next() {
		var entry ExpenseHeadSummary
		var total decimal.NullDecimal

		err = rows.Scan(&entry.BudgetHead, &total, &entry.Count)
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{err.Error()})
			return
		}

		entry.TotalAmount = total.Decimal
		response.Summary = append(response.Summary, entry)
		response.TotalExpenses = response.TotalExpenses.Add(entry.TotalAmount)
	}

	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
