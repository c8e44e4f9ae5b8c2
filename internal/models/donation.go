package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/churchops/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation is a single donation or offering entry. The monthly donation sums
// are the income source for budget allocation.
type Donation struct {
	DefaultModel
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date          time.Time       `gorm:"index"`
	Donor         string
	Fund          string
	PaymentMethod string
	RecordedBy    string
	Note          string
}

func (d *Donation) BeforeSave(_ *gorm.DB) error {
	d.Donor = strings.TrimSpace(d.Donor)
	d.Fund = strings.TrimSpace(d.Fund)
	d.RecordedBy = strings.TrimSpace(d.RecordedBy)
	d.Note = strings.TrimSpace(d.Note)

	if d.Date.IsZero() {
		d.Date = time.Now().In(time.UTC)
	}

	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentMethodCash
	}

	if !validPaymentMethod(d.PaymentMethod) {
		return ErrPaymentMethodInvalid
	}

	return nil
}

func (d *Donation) AfterSave(_ *gorm.DB) error {
	if !d.Amount.IsPositive() {
		return ErrDonationAmountNotPositive
	}

	return nil
}

// DonationSum returns the total donation income whose date falls within the
// given period.
func DonationSum(period types.Period) (decimal.Decimal, error) {
	start, end := period.Bounds()

	var sum decimal.NullDecimal

	err := DB.Model(&Donation{}).
		Where("date >= ? AND date < ?", start, end).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing donations for %s failed: %w", period, err)
	}

	return sum.Decimal, nil
}

// DonationTotal returns the all-time donation total.
func DonationTotal() (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Model(&Donation{}).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing donations failed: %w", err)
	}

	return sum.Decimal, nil
}

// Donations returns all donations, newest first.
func Donations() ([]Donation, error) {
	var donations []Donation

	err := DB.Order("date DESC").Find(&donations).Error

	return donations, err
}
