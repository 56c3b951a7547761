package handlers

import (
	"LoanKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

// errorBody — единый конверт ошибки: машинная категория + человекочитаемое
// сообщение (+ нарушенные поля для валидации). Внутренности инфраструктурных
// ошибок наружу не попадают никогда.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

// writeDomainError мапит доменную ошибку сервиса на HTTP-ответ.
// Всё неопознанное — 500 с generic-телом.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Code:    "validation",
			Message: "invalid input",
			Fields:  ve.Fields,
		})
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "email_taken", "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, service.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "too_many_attempts", "too many login attempts, try again later")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, service.ErrLoanNotFound):
		writeError(w, http.StatusNotFound, "not_found", "loan not found")
	case errors.Is(err, service.ErrAlreadyReturned):
		writeError(w, http.StatusBadRequest, "conflict", "loan already returned")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized", "authorization required")
}
