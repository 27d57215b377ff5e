package staff

import "context"

// StaffRepository defines read access to staff members. The payroll engine
// never mutates staff data; staff CRUD lives elsewhere.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (StaffMember, error)
	ListActive(ctx context.Context) ([]StaffMember, error)
}
