package v1

import (
	"github.com/churchops/backend/internal/types"
	"github.com/churchops/backend/internal/uuid"
)

// URIID is the URI parameter struct for all routes addressing a single
// resource by ID.
type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required" format:"UUID"`
}

// QueryPeriod binds the month and year query parameters that address a
// calendar month.
type QueryPeriod struct {
	Month int `form:"month" binding:"required,min=1,max=12" example:"3"`
	Year  int `form:"year" binding:"required" example:"2025"`
}

func (q QueryPeriod) period() types.Period {
	return types.NewPeriod(q.Year, q.Month)
}
