package models_test

import (
	"strings"
	"time"

	"github.com/churchops/backend/internal/models"
	"github.com/churchops/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDonationDefaults() {
	donation := suite.createTestDonation(models.Donation{
		Amount: decimal.NewFromInt(100),
	})

	assert.False(suite.T(), donation.Date.IsZero())
	assert.Equal(suite.T(), models.PaymentMethodCash, donation.PaymentMethod)
}

func (suite *TestSuiteStandard) TestDonationAmountMustBePositive() {
	for _, amount := range []int64{0, -10} {
		donation := models.Donation{Amount: decimal.NewFromInt(amount)}

		err := models.DB.Create(&donation).Error
		assert.ErrorIs(suite.T(), err, models.ErrDonationAmountNotPositive, "amount %d must be rejected", amount)
	}

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Donation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDonationPaymentMethodInvalid() {
	donation := models.Donation{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "IOU",
	}

	err := models.DB.Create(&donation).Error
	assert.ErrorIs(suite.T(), err, models.ErrPaymentMethodInvalid)
}

func (suite *TestSuiteStandard) TestDonationTrimWhitespace() {
	donor := "  Jane Doe "
	note := " Sunday offering  "

	donation := suite.createTestDonation(models.Donation{
		Amount: decimal.NewFromInt(100),
		Donor:  donor,
		Note:   note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(donor), donation.Donor)
	assert.Equal(suite.T(), strings.TrimSpace(note), donation.Note)
}

func (suite *TestSuiteStandard) TestDonationSumRespectsPeriodBounds() {
	for _, donation := range []models.Donation{
		{Amount: decimal.NewFromInt(100), Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(200), Date: time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)},
		{Amount: decimal.NewFromInt(400), Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	} {
		suite.createTestDonation(donation)
	}

	sum, err := models.DonationSum(types.NewPeriod(2025, 2))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(300)), "got %s", sum)

	sum, err = models.DonationSum(types.NewPeriod(2025, 3))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(400)), "got %s", sum)
}

func (suite *TestSuiteStandard) TestDonationSumEmptyMonth() {
	sum, err := models.DonationSum(types.NewPeriod(2025, 2))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.IsZero())
}

func (suite *TestSuiteStandard) TestDonationTotal() {
	for _, amount := range []int64{100, 250, 50} {
		suite.createTestDonation(models.Donation{Amount: decimal.NewFromInt(amount)})
	}

	total, err := models.DonationTotal()
	require.Nil(suite.T(), err)
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(400)), "got %s", total)
}

func (suite *TestSuiteStandard) TestDonationsNewestFirst() {
	for _, day := range []int{3, 23, 11} {
		suite.createTestDonation(models.Donation{
			Amount: decimal.NewFromInt(10),
			Date:   time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC),
		})
	}

	donations, err := models.Donations()
	require.Nil(suite.T(), err)
	require.Len(suite.T(), donations, 3)

	assert.Equal(suite.T(), 23, donations[0].Date.Day())
	assert.Equal(suite.T(), 11, donations[1].Date.Day())
	assert.Equal(suite.T(), 3, donations[2].Date.Day())
}
