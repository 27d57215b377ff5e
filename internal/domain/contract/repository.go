package contract

import (
	"context"
	"time"
)

// Filter narrows contract queries. Nil fields are ignored. Timestamp ranges
// are inclusive on both ends.
type Filter struct {
	CreatedByID *string
	DriverID    *string
	AssistantID *string
	Status      *Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	ServiceFrom *time.Time
	ServiceTo   *time.Time
}

// ContractRepository defines read access to contracts.
type ContractRepository interface {
	List(ctx context.Context, filter Filter) ([]Contract, error)
}
