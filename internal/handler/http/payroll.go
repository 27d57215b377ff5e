package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	"github.com/lassie-dev/funeraria-backend-go/internal/handler/http/response"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/validator"
	payrollService "github.com/lassie-dev/funeraria-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payrollService.PayrollService
}

func NewPayrollHandler(svc payrollService.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: svc}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req.Period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.Filter{}

	if period := r.URL.Query().Get("period"); period != "" {
		filter.Period = &period
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := payroll.Status(status)
		filter.Status = &s
	}
	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	approved, err := h.payrollService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !approved {
		response.Conflict(w, "Payroll record is not in draft status")
		return
	}

	response.Success(w, map[string]bool{"approved": true})
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	req := payroll.MarkPaidRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil {
		parsed, _ := validator.IsValidDate(*req.PaymentDate)
		paymentDate = &parsed
	}

	paid, err := h.payrollService.MarkPaid(r.Context(), id, paymentDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !paid {
		response.Conflict(w, "Payroll record is not in approved status")
		return
	}

	response.Success(w, map[string]bool{"paid": true})
}

func (h *payrollHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.Recalculate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		response.BadRequest(w, "period query parameter is required", nil)
		return
	}

	result, err := h.payrollService.Summary(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
