package v1

import (
	"time"

	"github.com/churchops/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsHead is one budget head with its percentage share of new income.
type SettingsHead struct {
	HeadName   string          `json:"headName" example:"Youth Ministry"`
	Percentage decimal.Decimal `json:"percentage" example:"8"`
}

// SettingsEditable contains the settings fields that clients can write.
type SettingsEditable struct {
	BudgetHeads []SettingsHead `json:"budgetHeads" binding:"required"`
	UpdatedBy   string         `json:"updatedBy" example:"Treasurer"`
}

// model returns the database head set for the editable settings.
func (e SettingsEditable) model() []models.SettingsHead {
	heads := make([]models.SettingsHead, 0, len(e.BudgetHeads))
	for _, head := range e.BudgetHeads {
		heads = append(heads, models.SettingsHead{
			Name:       head.HeadName,
			Percentage: head.Percentage,
		})
	}

	return heads
}

type Settings struct {
	ID          uuid.UUID      `json:"id" example:"d1b4b8c8-cbc5-4b94-97f7-2fdf2e159a76"`
	BudgetHeads []SettingsHead `json:"budgetHeads"`
	IsActive    bool           `json:"isActive" example:"true"`
	UpdatedBy   string         `json:"updatedBy" example:"Admin"`
	UpdatedAt   time.Time      `json:"updatedAt" example:"2025-03-01T07:23:42.069563Z"`
}

func newSettings(model models.BudgetSettings) Settings {
	heads := make([]SettingsHead, 0, len(model.Heads))
	for _, head := range model.Heads {
		heads = append(heads, SettingsHead{
			HeadName:   head.Name,
			Percentage: head.Percentage,
		})
	}

	return Settings{
		ID:          model.ID,
		BudgetHeads: heads,
		IsActive:    model.IsActive(),
		UpdatedBy:   model.UpdatedBy,
		UpdatedAt:   model.UpdatedAt,
	}
}

type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

type SettingsUpdateResponse struct {
	Msg      string   `json:"msg" example:"Budget settings updated successfully"`
	Settings Settings `json:"settings"`
}
