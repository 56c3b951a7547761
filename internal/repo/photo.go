package repo

import (
	"LoanKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// PhotoRepository — контракт доступа к LoanPhoto. Принадлежность займа
// владельцу проверяет слой сервиса до обращения сюда.
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.LoanPhoto) error

	// ListByLoan возвращает фотографии займа, свежие сверху.
	ListByLoan(ctx context.Context, loanID string) ([]model.LoanPhoto, error)
}

type photoRepo struct {
	db *gorm.DB
}

// NewPhotoRepository создаёт реализацию репозитория для LoanPhoto.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepo{db: db}
}

func (r *photoRepo) Create(ctx context.Context, photo *model.LoanPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepo) ListByLoan(ctx context.Context, loanID string) ([]model.LoanPhoto, error) {
	var photos []model.LoanPhoto
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("uploaded_at DESC").
		Find(&photos).Error
	return photos, err
}
