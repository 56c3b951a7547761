package handlers

import (
	"LoanKeeper/internal/config"
	"LoanKeeper/internal/middleware"
	"LoanKeeper/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	loanService *service.LoanService,
	photoService *service.PhotoService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(userService, logger, config)
	loanHandler := NewLoanHandler(loanService, userService, logger)
	photoHandler := NewPhotoHandler(photoService, userService, logger)

	// Auth routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	// Loan routes
	r.Get("/loans", loanHandler.List)
	r.Post("/loans", loanHandler.Create)
	r.Get("/loans/{id}", loanHandler.Get)
	r.Patch("/loans/{id}/return", loanHandler.Return)
	r.Get("/loans/{id}/photos", photoHandler.List)
	r.Post("/loans/{id}/photos", photoHandler.Upload)

	// Dashboard
	r.Get("/dashboard/stats", loanHandler.Stats)

	// Раздача фотографий при файловом бекенде; для minio ссылки резолвит
	// внешний раздающий слой.
	if config.StorageBackend == "fs" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
			fs.ServeHTTP(w, req)
		})
	}

	return &Handler{Router: r}
}
