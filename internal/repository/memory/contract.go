package memory

import (
	"context"
	"sync"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/contract"
)

type ContractRepository struct {
	mu        sync.RWMutex
	contracts []contract.Contract
}

func NewContractRepository(contracts ...contract.Contract) *ContractRepository {
	return &ContractRepository{contracts: contracts}
}

func (r *ContractRepository) Add(c contract.Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts = append(r.contracts, c)
}

func (r *ContractRepository) List(_ context.Context, filter contract.Filter) ([]contract.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []contract.Contract
	for _, c := range r.contracts {
		if matches(c, filter) {
			result = append(result, c)
		}
	}
	return result, nil
}

func matches(c contract.Contract, f contract.Filter) bool {
	if f.CreatedByID != nil && c.CreatedByID != *f.CreatedByID {
		return false
	}
	if f.DriverID != nil && (c.DriverID == nil || *c.DriverID != *f.DriverID) {
		return false
	}
	if f.AssistantID != nil && (c.AssistantID == nil || *c.AssistantID != *f.AssistantID) {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.CreatedFrom != nil && c.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && c.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	if f.ServiceFrom != nil && c.ServiceDate.Before(*f.ServiceFrom) {
		return false
	}
	if f.ServiceTo != nil && c.ServiceDate.After(*f.ServiceTo) {
		return false
	}
	return true
}
