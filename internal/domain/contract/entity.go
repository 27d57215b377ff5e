package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCanceled   Status = "canceled"
)

// Contract - Funeral service contract. The payroll engine reads contracts to
// derive variable earnings; commission_amount is pre-computed by contract
// pricing and consumed as-is.
type Contract struct {
	ID               string
	CreatedByID      string
	DriverID         *string
	AssistantID      *string
	BranchID         string
	Status           Status
	NightShift       bool
	CommissionAmount decimal.Decimal
	ServiceDate      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
