package service

import (
	"LoanKeeper/internal/limiter"
	"LoanKeeper/internal/model"
	"LoanKeeper/internal/repo"
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — регистрация и проверка учётных данных.
type UserService struct {
	repo     repo.UserRepository
	attempts limiter.AttemptLimiter
}

func NewUserService(r repo.UserRepository, attempts limiter.AttemptLimiter) *UserService {
	return &UserService{repo: r, attempts: attempts}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dummyHash — заготовленный bcrypt-хеш для выравнивания времени ответа:
// при отсутствующем пользователе сравнение всё равно выполняется.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("loankeeper-dummy"), bcrypt.DefaultCost)
	return h
}()

func validateCredentials(email, password string) error {
	fe := fieldErrors{}
	if email != strings.TrimSpace(email) || !emailRe.MatchString(email) {
		fe.add("email", "invalid email")
	}
	if len(password) < 6 {
		fe.add("password", "password must be at least 6 characters")
	}
	return fe.err()
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{Email: email, PasswordHash: string(hash)})
}

// Login проверяет пару email/пароль. Неудача единообразна: несуществующий
// пользователь и неверный пароль дают один и тот же ErrInvalidCredentials,
// bcrypt-сравнение выполняется в обоих случаях. clientKey — ключ
// ограничителя попыток (email + IP).
func (s *UserService) Login(ctx context.Context, email, password, clientKey string) (*model.User, error) {
	if s.attempts != nil {
		ok, err := s.attempts.Allow(ctx, clientKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrTooManyAttempts
		}
	}

	if password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID резолвит идентичность сессии в строку users. Отсутствие —
// ErrUserNotFound (это не то же самое, что "нет сессии").
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
