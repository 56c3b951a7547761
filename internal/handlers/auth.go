package handlers

import (
	"LoanKeeper/internal/config"
	"LoanKeeper/internal/middleware"
	"LoanKeeper/internal/service"
	"encoding/json"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler — регистрация, вход и выход.
type AuthHandler struct {
	Users  *service.UserService
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации
func NewAuthHandler(users *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register создаёт пользователя и сразу открывает сессию.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if _, ok := err.(*service.ValidationError); !ok && err != service.ErrEmailTaken {
			h.Logger.Errorw("Register: service error", "error", err)
		}
		writeDomainError(w, err)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to set login cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user created",
		"userId":  user.ID,
	})
}

// Login проверяет учётные данные и ставит cookie сессии. Ответ о неудаче
// одинаков для несуществующего email и неверного пароля.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password, throttleKey(req.Email, r))
	if err != nil {
		if err != service.ErrInvalidCredentials && err != service.ErrTooManyAttempts {
			h.Logger.Errorw("Login: service error", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
			return
		}
		writeDomainError(w, err)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set login cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Logout гасит cookie сессии.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}

// throttleKey — ключ ограничителя попыток: email + IP клиента.
func throttleKey(email string, r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return email + "|" + host
}
