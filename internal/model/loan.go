package model

import "time"

// Loan — запись о вещи, отданной во временное пользование.
// returned_at == nil означает, что займ ещё открыт; это единственный
// хранимый признак закрытия. "Просрочен" — всегда вычисляемое состояние.
type Loan struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID int64  `gorm:"not null;index" json:"user_id"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	RecipientName string `gorm:"size:200;not null" json:"recipient_name"`
	ItemName      string `gorm:"size:200;not null" json:"item_name"`
	Description   string `json:"description,omitempty"`
	Quantity      int    `gorm:"not null;default:1" json:"quantity"`

	StateStart string  `gorm:"size:500;not null" json:"state_start"`
	StateEnd   *string `gorm:"size:500" json:"state_end,omitempty"`

	BorrowedAt time.Time  `gorm:"not null" json:"borrowed_at"`
	ReturnBy   time.Time  `gorm:"index;not null" json:"return_by"`
	ReturnedAt *time.Time `gorm:"index" json:"returned_at,omitempty"`

	Photos    []LoanPhoto   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"photos,omitempty"`
	Reminders []ReminderLog `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reminders,omitempty"`

	// Не хранится: пересчитывается на каждое чтение относительно "сейчас".
	Overdue bool `gorm:"-" json:"overdue"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Returned — закрыт ли займ.
func (l *Loan) Returned() bool { return l.ReturnedAt != nil }

// IsOverdue — не возвращён и срок вышел.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.ReturnedAt == nil && now.After(l.ReturnBy)
}

// Derive заполняет вычисляемые поля перед отдачей наружу.
func (l *Loan) Derive(now time.Time) {
	l.Overdue = l.IsOverdue(now)
}
