package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
	"github.com/lassie-dev/funeraria-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
}

// staffHandlerImpl reads straight from the repository: the payroll engine
// only exposes the active staff listing, staff CRUD lives in another service.
type staffHandlerImpl struct {
	staffRepo staff.StaffRepository
}

func NewStaffHandler(staffRepo staff.StaffRepository) StaffHandler {
	return &staffHandlerImpl{staffRepo: staffRepo}
}

type staffResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	BranchID   string          `json:"branch_id"`
}

func (h *staffHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffRepo.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]staffResponse, 0, len(members))
	for _, m := range members {
		result = append(result, staffResponse{
			ID:         m.ID,
			FullName:   m.FullName,
			Role:       string(m.Role),
			BaseSalary: m.BaseSalary,
			BranchID:   m.BranchID,
		})
	}

	response.Success(w, result)
}
