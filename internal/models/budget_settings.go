package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetSettings is one versioned set of budget heads with their percentage
// shares of new income. Settings are never edited in place: an update
// deactivates the current set and inserts a new one, so budgets created in
// earlier months keep the percentages they were allocated with.
type BudgetSettings struct {
	DefaultModel
	UpdatedBy string

	// Active is true for the single active set and NULL for all others.
	// The unique index makes the database reject a second active set, which
	// also guards the get-or-create bootstrap against concurrent first calls.
	Active *bool `gorm:"uniqueIndex"`

	Heads []SettingsHead `gorm:"foreignKey:SettingsID;references:ID;constraint:OnDelete:CASCADE"`
}

// SettingsHead is a single budget head within a settings set.
type SettingsHead struct {
	Timestamps
	SettingsID uuid.UUID       `gorm:"primaryKey"`
	Name       string          `gorm:"primaryKey"`
	Percentage decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Position   uint
}

func (s *BudgetSettings) BeforeSave(_ *gorm.DB) error {
	s.UpdatedBy = strings.TrimSpace(s.UpdatedBy)
	return nil
}

// IsActive reports whether this is the active settings set.
func (s BudgetSettings) IsActive() bool {
	return s.Active != nil && *s.Active
}

var hundred = decimal.NewFromInt(100)

// percentageTolerance allows for rounding noise in percentages
// entered as floating point numbers.
var percentageTolerance = decimal.NewFromFloat(0.01)

// defaultHeads returns the hard-coded default budget head set.
func defaultHeads() []SettingsHead {
	names := []struct {
		name       string
		percentage int64
	}{
		{"Missions & Outreach", 25},
		{"Assemblies of God (AG) Giving", 20},
		{"Building & Maintenance", 18},
		{"Ministry & Worship", 12},
		{"Youth Ministry", 8},
		{"Other Ministries (Children, Women, Men, Prayer cells, etc.)", 7},
		{"Church Operations / Admin", 5},
		{"Emergency / Reserve / Monthly Savings", 5},
	}

	heads := make([]SettingsHead, 0, len(names))
	for i, n := range names {
		heads = append(heads, SettingsHead{
			Name:       n.name,
			Percentage: decimal.NewFromInt(n.percentage),
			Position:   uint(i),
		})
	}

	return heads
}

// ActiveSettings returns the active budget settings set. If none exists yet,
// the default set is created and returned. The unique index on Active makes
// this safe when two requests bootstrap at the same time: one create succeeds,
// the other re-reads the winner's set.
func ActiveSettings() (BudgetSettings, error) {
	settings, err := activeSettings(DB)
	if err == nil {
		return settings, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return BudgetSettings{}, err
	}

	active := true
	settings = BudgetSettings{
		Active:    &active,
		UpdatedBy: "System",
		Heads:     defaultHeads(),
	}

	err = DB.Create(&settings).Error
	if err != nil {
		if errors.Is(err, ErrActiveSettingsExist) {
			// Lost the bootstrap race, another request created the defaults.
			return activeSettings(DB)
		}

		return BudgetSettings{}, err
	}

	return settings, nil
}

// activeSettings reads the active settings set with its heads in order.
func activeSettings(db *gorm.DB) (BudgetSettings, error) {
	var settings BudgetSettings

	err := db.
		Preload("Heads", sortHeadsByPosition).
		Where("active = ?", true).
		First(&settings).Error

	return settings, err
}

func sortHeadsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ReplaceSettings validates the new budget head set and atomically replaces
// the active settings with it. On validation failure, nothing is changed.
func ReplaceSettings(heads []SettingsHead, updatedBy string) (BudgetSettings, error) {
	err := validateHeads(heads)
	if err != nil {
		return BudgetSettings{}, err
	}

	for i := range heads {
		heads[i].Name = strings.TrimSpace(heads[i].Name)
		heads[i].Position = uint(i)
	}

	active := true
	settings := BudgetSettings{
		Active:    &active,
		UpdatedBy: updatedBy,
		Heads:     heads,
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&BudgetSettings{}).Where("active = ?", true).Update("active", nil).Error
		if err != nil {
			return err
		}

		return tx.Create(&settings).Error
	})
	if err != nil {
		return BudgetSettings{}, err
	}

	return settings, nil
}

// ResetSettings replaces the active settings with the hard-coded defaults.
func ResetSettings(updatedBy string) (BudgetSettings, error) {
	return ReplaceSettings(defaultHeads(), updatedBy)
}

func validateHeads(heads []SettingsHead) error {
	if len(heads) == 0 {
		return ErrSettingsNoHeads
	}

	sum := decimal.Zero
	seen := make(map[string]bool, len(heads))

	for _, head := range heads {
		name := strings.TrimSpace(head.Name)
		if name == "" {
			return ErrHeadNameEmpty
		}

		if seen[name] {
			return ErrHeadNameNotUnique
		}
		seen[name] = true

		if head.Percentage.IsNegative() || head.Percentage.GreaterThan(hundred) {
			return ErrPercentageOutOfRange
		}

		sum = sum.Add(head.Percentage)
	}

	if sum.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return ErrPercentagesDoNotSumTo100
	}

	return nil
}
