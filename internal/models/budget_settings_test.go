package models_test

import (
	"testing"

	"github.com/churchops/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestActiveSettingsBootstrap() {
	settings, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	assert.True(suite.T(), settings.IsActive())
	assert.Equal(suite.T(), "System", settings.UpdatedBy)
	assert.Len(suite.T(), settings.Heads, 8)

	sum := decimal.Zero
	for _, head := range settings.Heads {
		sum = sum.Add(head.Percentage)
	}
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(100)), "default percentages must sum to 100, but sum to %s", sum)

	// The second call returns the set created by the first one.
	again, err := models.ActiveSettings()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), settings.ID, again.ID)
}

func (suite *TestSuiteStandard) TestActiveSettingsHeadOrder() {
	settings, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "Missions & Outreach", settings.Heads[0].Name)
	assert.Equal(suite.T(), "Emergency / Reserve / Monthly Savings", settings.Heads[7].Name)

	for i, h := range settings.Heads {
		assert.Equal(suite.T(), uint(i), h.Position)
	}
}

func (suite *TestSuiteStandard) TestReplaceSettings() {
	first, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	settings := suite.replaceTestSettings(head("Building Fund", 40), head("General", 60))
	assert.True(suite.T(), settings.IsActive())
	assert.Len(suite.T(), settings.Heads, 2)
	assert.NotEqual(suite.T(), first.ID, settings.ID)

	active, err := models.ActiveSettings()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), settings.ID, active.ID)

	// The replaced set stays in the database, deactivated.
	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.BudgetSettings{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count)

	var activeCount int64
	require.Nil(suite.T(), models.DB.Model(&models.BudgetSettings{}).Where("active = ?", true).Count(&activeCount).Error)
	assert.Equal(suite.T(), int64(1), activeCount)
}

func (suite *TestSuiteStandard) TestReplaceSettingsValidation() {
	tests := []struct {
		name  string
		heads []models.SettingsHead
		err   error
	}{
		{"no heads", []models.SettingsHead{}, models.ErrSettingsNoHeads},
		{"empty name", []models.SettingsHead{head("", 100)}, models.ErrHeadNameEmpty},
		{"whitespace name", []models.SettingsHead{head("   ", 100)}, models.ErrHeadNameEmpty},
		{"duplicate name", []models.SettingsHead{head("General", 50), head("General", 50)}, models.ErrHeadNameNotUnique},
		{"negative percentage", []models.SettingsHead{head("General", -10), head("Rest", 110)}, models.ErrPercentageOutOfRange},
		{"sum too low", []models.SettingsHead{head("General", 40), head("Rest", 40)}, models.ErrPercentagesDoNotSumTo100},
		{"sum too high", []models.SettingsHead{head("General", 60), head("Rest", 60)}, models.ErrPercentagesDoNotSumTo100},
		{"valid", []models.SettingsHead{head("General", 60), head("Rest", 40)}, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.ReplaceSettings(tt.heads, "Test")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestReplaceSettingsTolerance() {
	// Percentages entered as floating point numbers may carry rounding noise.
	heads := []models.SettingsHead{
		{Name: "A", Percentage: decimal.NewFromFloat(33.33)},
		{Name: "B", Percentage: decimal.NewFromFloat(33.33)},
		{Name: "C", Percentage: decimal.NewFromFloat(33.335)},
	}

	_, err := models.ReplaceSettings(heads, "Test")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestResetSettings() {
	suite.replaceTestSettings(head("Only Head", 100))

	settings, err := models.ResetSettings("Admin")
	require.Nil(suite.T(), err)

	assert.Len(suite.T(), settings.Heads, 8)
	assert.Equal(suite.T(), "Admin", settings.UpdatedBy)
}

func (suite *TestSuiteStandard) TestSecondActiveSettingsRejected() {
	_, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	active := true
	second := models.BudgetSettings{
		Active:    &active,
		UpdatedBy: "Test",
		Heads:     []models.SettingsHead{head("General", 100)},
	}

	err = models.DB.Create(&second).Error
	assert.ErrorIs(suite.T(), err, models.ErrActiveSettingsExist)
}
