package payroll

import (
	"context"
	"time"
)

// Filter narrows payroll record listings. Nil fields are ignored.
type Filter struct {
	Period  *string
	Status  *Status
	StaffID *string
}

// TxRunner executes fn inside a single storage transaction. Repository calls
// made with the context fn receives join that transaction; returning an error
// rolls it back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PayrollRepository defines data access for payroll records.
//
// Create must enforce the one-record-per-(staff, period) invariant at the
// storage level and surface a violation as ErrPayrollRecordAlreadyExists, so
// the invariant holds even when two batch runs race past the existence check.
//
// UpdateStatus must apply the transition conditionally: the row is touched
// only while its status still equals from, and the bool reports whether this
// caller won. Two concurrent approvals therefore cannot both succeed.
type PayrollRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	FindByStaffAndPeriod(ctx context.Context, staffID, period string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	UpdateStatus(ctx context.Context, id string, from, to Status, paymentDate *time.Time) (bool, error)
	GetSummary(ctx context.Context, period string) (Summary, error)
}
