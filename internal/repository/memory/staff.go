// Package memory holds in-memory repository implementations mirroring the
// PostgreSQL semantics (uniqueness on create, conditional status updates).
// They back the service tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
)

type StaffRepository struct {
	mu      sync.RWMutex
	members map[string]staff.StaffMember
}

func NewStaffRepository(members ...staff.StaffMember) *StaffRepository {
	r := &StaffRepository{members: make(map[string]staff.StaffMember)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *StaffRepository) Put(member staff.StaffMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.ID] = member
}

func (r *StaffRepository) GetByID(_ context.Context, id string) (staff.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return staff.StaffMember{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (r *StaffRepository) ListActive(_ context.Context) ([]staff.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []staff.StaffMember
	for _, m := range r.members {
		if m.IsActive {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].FullName < members[j].FullName })
	return members, nil
}
