package service

import (
	"LoanKeeper/internal/model"
	"LoanKeeper/internal/repo"
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LoanService — жизненный цикл займа: создание, чтение в рамках владельца,
// единственный переход "возвращён". Статус "просрочен" всегда выводится из
// returned_at и return_by относительно текущего времени, нигде не хранится.
type LoanService struct {
	loans  repo.LoanRepository
	logger *zap.SugaredLogger
}

func NewLoanService(loans repo.LoanRepository, logger *zap.SugaredLogger) *LoanService {
	return &LoanService{loans: loans, logger: logger}
}

// CreateLoanInput — форма создания займа. Временные поля приходят строками
// (RFC 3339) и проверяются вместе с остальными, чтобы в ответе были
// перечислены все нарушения разом.
type CreateLoanInput struct {
	RecipientName string `json:"recipient_name"`
	ItemName      string `json:"item_name"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	BorrowedAt    string `json:"borrowed_at"`
	ReturnBy      string `json:"return_by"`
	StateStart    string `json:"state_start"`
}

// ReturnLoanInput — форма перехода "возвращён".
type ReturnLoanInput struct {
	StateEnd   string `json:"state_end"`
	ReturnedAt string `json:"returned_at"`
}

func minLen(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

// Create валидирует форму целиком и создаёт займ владельца.
func (s *LoanService) Create(ctx context.Context, userID int64, in CreateLoanInput) (*model.Loan, error) {
	fe := fieldErrors{}
	if !minLen(in.RecipientName, 2) {
		fe.add("recipient_name", "must be at least 2 characters")
	}
	if !minLen(in.ItemName, 2) {
		fe.add("item_name", "must be at least 2 characters")
	}
	if in.Quantity < 1 {
		fe.add("quantity", "must be a positive integer")
	}
	if !minLen(in.StateStart, 2) {
		fe.add("state_start", "must be at least 2 characters")
	}

	borrowedAt, err := time.Parse(time.RFC3339, in.BorrowedAt)
	if err != nil {
		fe.add("borrowed_at", "must be a valid RFC 3339 timestamp")
	}
	returnBy, err := time.Parse(time.RFC3339, in.ReturnBy)
	if err != nil {
		fe.add("return_by", "must be a valid RFC 3339 timestamp")
	}
	// серверное ужесточение: срок возврата не раньше даты выдачи
	if _, bad := fe["borrowed_at"]; !bad {
		if _, bad := fe["return_by"]; !bad && returnBy.Before(borrowedAt) {
			fe.add("return_by", "must not be before borrowed_at")
		}
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	loan := &model.Loan{
		ID:            uuid.NewString(),
		UserID:        userID,
		RecipientName: in.RecipientName,
		ItemName:      in.ItemName,
		Description:   in.Description,
		Quantity:      in.Quantity,
		StateStart:    in.StateStart,
		BorrowedAt:    borrowedAt.UTC(),
		ReturnBy:      returnBy.UTC(),
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// List возвращает займы владельца, новые сверху, с вычисленным overdue.
func (s *LoanService) List(ctx context.Context, userID int64) ([]model.Loan, error) {
	loans, err := s.loans.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range loans {
		loans[i].Derive(now)
	}
	return loans, nil
}

// Get возвращает займ владельца с фотографиями и напоминаниями.
func (s *LoanService) Get(ctx context.Context, userID int64, id string) (*model.Loan, error) {
	loan, err := s.loans.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	loan.Derive(time.Now().UTC())
	return loan, nil
}

// Return — единственный переход состояния: открытый займ становится
// возвращённым, returned_at и state_end выставляются атомарно. Повторный
// возврат — ErrAlreadyReturned; это же покрывает гонку двух одновременных
// возвратов: проигравший увидит ноль затронутых строк.
func (s *LoanService) Return(ctx context.Context, userID int64, id string, in ReturnLoanInput) (*model.Loan, error) {
	loan, err := s.loans.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	if loan.Returned() {
		return nil, ErrAlreadyReturned
	}

	fe := fieldErrors{}
	if !minLen(in.StateEnd, 2) {
		fe.add("state_end", "must be at least 2 characters")
	}
	returnedAt, perr := time.Parse(time.RFC3339, in.ReturnedAt)
	if perr != nil {
		fe.add("returned_at", "must be a valid RFC 3339 timestamp")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	rows, err := s.loans.MarkReturned(ctx, userID, id, in.StateEnd, returnedAt.UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// условный UPDATE никого не задел: займ закрыли параллельно
		return nil, ErrAlreadyReturned
	}

	updated, err := s.loans.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	updated.Derive(time.Now().UTC())
	return updated, nil
}
