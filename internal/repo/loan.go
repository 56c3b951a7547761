package repo

import (
	"LoanKeeper/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// LoanRepository — контракт доступа к Loan. Все выборки и изменения
// фильтруются по владельцу прямо в SQL: чужой займ неотличим от отсутствующего.
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error

	// ListByOwner возвращает займы пользователя, новые сверху, с фотографиями.
	ListByOwner(ctx context.Context, userID int64) ([]model.Loan, error)

	// GetByID ищет займ по id в рамках владельца, подтягивая фотографии и
	// напоминания. Отсутствие или чужой займ — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, userID int64, id string) (*model.Loan, error)

	// MarkReturned — условное атомарное обновление: returned_at и state_end
	// выставляются одним UPDATE и только если займ ещё открыт.
	// Возвращает число затронутых строк; 0 — займ уже закрыт (или исчез).
	MarkReturned(ctx context.Context, userID int64, id string, stateEnd string, returnedAt time.Time) (int64, error)
}

type loanRepo struct {
	db *gorm.DB
}

// NewLoanRepository создаёт реализацию репозитория для Loan.
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepo{db: db}
}

func (r *loanRepo) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Loan, error) {
	var loan model.Loan
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at DESC") }).
		Preload("Reminders").
		First(&loan, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepo) MarkReturned(ctx context.Context, userID int64, id string, stateEnd string, returnedAt time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("id = ? AND user_id = ? AND returned_at IS NULL", id, userID).
		Updates(map[string]any{
			"state_end":   stateEnd,
			"returned_at": returnedAt,
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
