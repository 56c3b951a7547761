package handlers

import (
	"LoanKeeper/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoanHandler — операции над займами и сводка для дашборда.
type LoanHandler struct {
	Loans  *service.LoanService
	Users  *service.UserService
	Logger *zap.SugaredLogger
}

// NewLoanHandler создаёт хендлер займов
func NewLoanHandler(loans *service.LoanService, users *service.UserService, logger *zap.SugaredLogger) *LoanHandler {
	return &LoanHandler{Loans: loans, Users: users, Logger: logger}
}

// List отдаёт займы владельца, новые сверху.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}

	loans, err := h.Loans.List(r.Context(), user.ID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", user.ID, "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// Create заводит новый займ.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}

	var in service.CreateLoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	loan, err := h.Loans.Create(r.Context(), user.ID, in)
	if err != nil {
		if _, ok := err.(*service.ValidationError); !ok {
			h.Logger.Errorw("Create: service error", "user_id", user.ID, "error", err)
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// Get отдаёт займ с фотографиями и напоминаниями. Чужой займ — 404.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}

	loan, err := h.Loans.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if err != service.ErrLoanNotFound {
			h.Logger.Errorw("Get: service error", "user_id", user.ID, "error", err)
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// Return — переход "возвращён".
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}

	var in service.ReturnLoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.Logger.Warnw("Return: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	loan, err := h.Loans.Return(r.Context(), user.ID, chi.URLParam(r, "id"), in)
	if err != nil {
		switch err.(type) {
		case *service.ValidationError:
		default:
			if err != service.ErrLoanNotFound && err != service.ErrAlreadyReturned {
				h.Logger.Errorw("Return: service error", "user_id", user.ID, "error", err)
			}
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// statsResponse — сводка дашборда: корзины и их размеры.
type statsResponse struct {
	service.LoanBuckets
	Counts map[string]int `json:"counts"`
}

// Stats пересчитывает корзины на каждый запрос: "сейчас" движется.
func (h *LoanHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}

	loans, err := h.Loans.List(r.Context(), user.ID)
	if err != nil {
		h.Logger.Errorw("Stats: service error", "user_id", user.ID, "error", err)
		writeDomainError(w, err)
		return
	}

	buckets := service.Categorize(loans, time.Now().UTC())
	writeJSON(w, http.StatusOK, statsResponse{
		LoanBuckets: buckets,
		Counts: map[string]int{
			"active":   len(buckets.Active),
			"overdue":  len(buckets.Overdue),
			"returned": len(buckets.Returned),
		},
	})
}
