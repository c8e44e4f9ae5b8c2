package v1

import (
	"time"

	"github.com/churchops/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Donation is the response representation of one donation entry.
type Donation struct {
	ID            uuid.UUID       `json:"id" example:"27adcd91-5f6d-4c5a-b353-2f4bfb631f7b"`
	Amount        decimal.Decimal `json:"amount" example:"500"`
	DonationDate  time.Time       `json:"donationDate" example:"2025-02-23T00:00:00Z"`
	Donor         string          `json:"donor" example:"Anonymous"`
	Fund          string          `json:"fund" example:"General"`
	PaymentMethod string          `json:"paymentMethod" example:"Cash"`
	RecordedBy    string          `json:"recordedBy" example:"Treasurer"`
	Note          string          `json:"note" example:"Sunday offering"`
	CreatedAt     time.Time       `json:"createdAt" example:"2025-02-23T12:01:05.271152Z"`
	UpdatedAt     time.Time       `json:"updatedAt" example:"2025-02-23T12:01:05.271152Z"`
}

func newDonation(model models.Donation) Donation {
	return Donation{
		ID:            model.ID,
		Amount:        model.Amount,
		DonationDate:  model.Date,
		Donor:         model.Donor,
		Fund:          model.Fund,
		PaymentMethod: model.PaymentMethod,
		RecordedBy:    model.RecordedBy,
		Note:          model.Note,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// DonationEditable contains the donation fields that clients can write.
type DonationEditable struct {
	Amount        decimal.Decimal `json:"amount" binding:"required" example:"500"`
	DonationDate  time.Time       `json:"donationDate" example:"2025-02-23T00:00:00Z"`
	Donor         string          `json:"donor" example:"Anonymous"`
	Fund          string          `json:"fund" example:"General"`
	PaymentMethod string          `json:"paymentMethod" example:"Cash"`
	RecordedBy    string          `json:"recordedBy" example:"Treasurer"`
	Note          string          `json:"note" example:"Sunday offering"`
}

func (e DonationEditable) model() models.Donation {
	return models.Donation{
		Amount:        e.Amount,
		Date:          e.DonationDate,
		Donor:         e.Donor,
		Fund:          e.Fund,
		PaymentMethod: e.PaymentMethod,
		RecordedBy:    e.RecordedBy,
		Note:          e.Note,
	}
}

type DonationCreateResponse struct {
	Msg      string   `json:"msg" example:"Donation entry added successfully"`
	Donation Donation `json:"donation"`
}

type DonationListResponse struct {
	Donations []Donation `json:"donations"`
}

type DonationTotalResponse struct {
	TotalDonation decimal.Decimal `json:"totalDonation" example:"23500"`
}
