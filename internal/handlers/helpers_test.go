package handlers_test

import (
	"LoanKeeper/internal/config"
	"LoanKeeper/internal/handlers"
	"LoanKeeper/internal/middleware"
	"LoanKeeper/internal/model"
	"LoanKeeper/internal/repo"
	"LoanKeeper/internal/service"
	"LoanKeeper/internal/storage"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockLoanRepo struct{ mock.Mock }

func (m *mockLoanRepo) Create(ctx context.Context, loan *model.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Loan, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Loan); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Loan, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Loan); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) MarkReturned(ctx context.Context, userID int64, id string, stateEnd string, returnedAt time.Time) (int64, error) {
	args := m.Called(ctx, userID, id, stateEnd, returnedAt)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.LoanRepository = (*mockLoanRepo)(nil)

type mockPhotoRepo struct{ mock.Mock }

func (m *mockPhotoRepo) Create(ctx context.Context, photo *model.LoanPhoto) error {
	return m.Called(ctx, photo).Error(0)
}

func (m *mockPhotoRepo) ListByLoan(ctx context.Context, loanID string) ([]model.LoanPhoto, error) {
	args := m.Called(ctx, loanID)
	if v, ok := args.Get(0).([]model.LoanPhoto); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PhotoRepository = (*mockPhotoRepo)(nil)

// блоб-хранилище, пишущее в никуда
type nopBlobStore struct{ keys []string }

func (s *nopBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	s.keys = append(s.keys, key)
	_, _ = io.Copy(io.Discard, r)
	return "/uploads/" + key, nil
}

var _ storage.BlobStore = (*nopBlobStore)(nil)

// testEnv собирает роутер на реальных сервисах поверх мок-репозиториев
type testEnv struct {
	router http.Handler
	cfg    *config.Config
	users  *mockUserRepo
	loans  *mockLoanRepo
	photos *mockPhotoRepo
	blobs  *nopBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret", PhotoMaxSizeMB: 5, StorageBackend: "fs", UploadDir: t.TempDir()}
	logger := zap.NewNop().Sugar()

	ur := &mockUserRepo{}
	lr := &mockLoanRepo{}
	pr := &mockPhotoRepo{}
	bs := &nopBlobStore{}

	userSvc := service.NewUserService(ur, nil)
	loanSvc := service.NewLoanService(lr, logger)
	photoSvc := service.NewPhotoService(lr, pr, bs, int64(cfg.PhotoMaxSizeMB)<<20, logger)

	h := handlers.NewHandler(userSvc, loanSvc, photoSvc, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, users: ur, loans: lr, photos: pr, blobs: bs}
}

// expectUser — шлюз авторизации резолвит uid в строку users
func (e *testEnv) expectUser(id int64) {
	e.users.On("GetUserByID", mock.Anything, id).Return(&model.User{ID: id, Email: "owner@example.com"}, nil)
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
