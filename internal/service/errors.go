package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Доменные ошибки. Хендлеры мапят их на HTTP-статусы; всё, что не из этого
// набора, считается инфраструктурной ошибкой и наружу не показывается.
var (
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials — неверная пара email/пароль. Возвращается
	// одинаково и для несуществующего пользователя, и для неверного пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts — сработал ограничитель попыток входа.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrUserNotFound — валидная сессия ссылается на исчезнувшего пользователя.
	ErrUserNotFound = errors.New("user not found")

	// ErrLoanNotFound — займ отсутствует или принадлежит другому владельцу;
	// эти случаи намеренно неразличимы.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrAlreadyReturned — попытка повторного возврата закрытого займа.
	ErrAlreadyReturned = errors.New("loan already returned")
)

// ValidationError перечисляет ВСЕ нарушенные поля, не только первое.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// fieldErrors копит нарушения по ходу проверки формы.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, dup := f[field]; !dup {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
