package v1_test

import (
	"net/http"

	v1 "github.com/churchops/backend/internal/controllers/v1"
	"github.com/churchops/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettingsOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/budget-settings", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, PUT", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/budget-settings/reset", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSettingsGetBootstrapsDefaults() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-settings", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Settings.IsActive)
	assert.Equal(suite.T(), "System", response.Settings.UpdatedBy)
	assert.Len(suite.T(), response.Settings.BudgetHeads, 8)
	assert.Equal(suite.T(), "Missions & Outreach", response.Settings.BudgetHeads[0].HeadName)
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	body := v1.SettingsEditable{
		BudgetHeads: []v1.SettingsHead{
			{HeadName: "Building Fund", Percentage: decimal.NewFromInt(40)},
			{HeadName: "General", Percentage: decimal.NewFromInt(60)},
		},
		UpdatedBy: "Treasurer",
	}

	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/budget-settings", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SettingsUpdateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Budget settings updated successfully", response.Msg)
	assert.Equal(suite.T(), "Treasurer", response.Settings.UpdatedBy)
	assert.Len(suite.T(), response.Settings.BudgetHeads, 2)
}

func (suite *TestSuiteStandard) TestSettingsUpdateInvalidPercentages() {
	body := v1.SettingsEditable{
		BudgetHeads: []v1.SettingsHead{
			{HeadName: "Building Fund", Percentage: decimal.NewFromInt(40)},
			{HeadName: "General", Percentage: decimal.NewFromInt(40)},
		},
	}

	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/budget-settings", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSettingsUpdateEmptyBody() {
	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/budget-settings", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSettingsReset() {
	suite.replaceTestSettings(settingsHead("Only Head", 100))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget-settings/reset", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SettingsUpdateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Budget settings reset to default", response.Msg)
	assert.Equal(suite.T(), "Admin", response.Settings.UpdatedBy)
	assert.Len(suite.T(), response.Settings.BudgetHeads, 8)
}
