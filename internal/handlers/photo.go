package handlers

import (
	"LoanKeeper/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PhotoHandler — загрузка и чтение фотографий займа.
type PhotoHandler struct {
	Photos *service.PhotoService
	Users  *service.UserService
	Logger *zap.SugaredLogger
}

// NewPhotoHandler создаёт хендлер фотографий
func NewPhotoHandler(photos *service.PhotoService, users *service.UserService, logger *zap.SugaredLogger) *PhotoHandler {
	return &PhotoHandler{Photos: photos, Users: users, Logger: logger}
}

// Upload принимает multipart-форму с полями file и type.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}
	loanID := chi.URLParam(r, "id")

	// Лимит общего тела запроса заметно шире лимита файла: файлы чуть больше
	// допустимого должны дойти до сервиса и вернуться типизированной ошибкой
	// валидации, а не обрезаться на чтении формы
	maxBody := h.Photos.MaxBytes() + 10<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeDomainError(w, &service.ValidationError{Fields: map[string]string{
				"file": fmt.Sprintf("file exceeds the %d MB limit", h.Photos.MaxBytes()/(1<<20)),
			}})
			return
		}
		h.Logger.Warnw("Upload: invalid multipart form", "loan_id", loanID, "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file", "loan_id", loanID, "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Warnw("Upload: failed to read file", "loan_id", loanID, "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	photoType := r.FormValue("type")

	photo, err := h.Photos.Attach(r.Context(), user.ID, loanID, data, header.Filename, contentType, photoType)
	if err != nil {
		switch err.(type) {
		case *service.ValidationError:
		default:
			if err != service.ErrLoanNotFound {
				h.Logger.Errorw("Upload: service error", "loan_id", loanID, "error", err)
			}
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// List отдаёт фотографии займа, свежие сверху.
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.Users)
	if !ok {
		return
	}
	loanID := chi.URLParam(r, "id")

	photos, err := h.Photos.ListPhotos(r.Context(), user.ID, loanID)
	if err != nil {
		if err != service.ErrLoanNotFound {
			h.Logger.Errorw("List photos: service error", "loan_id", loanID, "error", err)
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}
