package service

import (
	"LoanKeeper/internal/model"
	"LoanKeeper/internal/repo"
	"LoanKeeper/internal/storage"
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allowedImageTypes — белый список MIME-типов загружаемых фотографий.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var safeExtRe = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// PhotoService — прикрепление фотографий к займу. Порядок проверок
// фиксирован: сначала принадлежность займа владельцу, потом валидность
// файла — чужим займам нельзя прощупывать поведение валидации.
type PhotoService struct {
	loans    repo.LoanRepository
	photos   repo.PhotoRepository
	store    storage.BlobStore
	maxBytes int64
	logger   *zap.SugaredLogger
}

func NewPhotoService(loans repo.LoanRepository, photos repo.PhotoRepository, store storage.BlobStore, maxBytes int64, logger *zap.SugaredLogger) *PhotoService {
	return &PhotoService{loans: loans, photos: photos, store: store, maxBytes: maxBytes, logger: logger}
}

// MaxBytes — действующий лимит размера файла.
func (s *PhotoService) MaxBytes() int64 { return s.maxBytes }

// objectKey строит имя объекта, не доверяя имени загруженного файла:
// id займа + уникальный суффикс + расширение.
func objectKey(loanID, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !safeExtRe.MatchString(ext) {
		ext = extByType[contentType]
	}
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Int63n(1e9))
	return fmt.Sprintf("loans/%s-%s%s", loanID, suffix, ext)
}

// Attach валидирует и сохраняет фотографию займа.
func (s *PhotoService) Attach(ctx context.Context, userID int64, loanID string, data []byte, filename, contentType, photoType string) (*model.LoanPhoto, error) {
	// 1) принадлежность — до любых проверок файла
	if _, err := s.loans.GetByID(ctx, userID, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	// 2) тип файла
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, &ValidationError{Fields: map[string]string{
			"file": "only JPG, PNG or WebP images are allowed",
		}}
	}

	// 3) размер
	if int64(len(data)) > s.maxBytes {
		return nil, &ValidationError{Fields: map[string]string{
			"file": fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes/(1<<20)),
		}}
	}

	if photoType == "" {
		photoType = "loan"
	}

	key := objectKey(loanID, filename, contentType)
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	photo := &model.LoanPhoto{
		ID:     uuid.NewString(),
		LoanID: loanID,
		URL:    url,
		Type:   photoType,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		// блоб уже записан; сирота остаётся до внешней уборки
		s.logger.Warnw("photo row insert failed after blob write, orphan left",
			"loan_id", loanID, "key", key, "error", err)
		return nil, err
	}
	return photo, nil
}

// ListPhotos возвращает фотографии займа владельца, свежие сверху.
func (s *PhotoService) ListPhotos(ctx context.Context, userID int64, loanID string) ([]model.LoanPhoto, error) {
	if _, err := s.loans.GetByID(ctx, userID, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return s.photos.ListByLoan(ctx, loanID)
}
