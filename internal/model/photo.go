package model

import "time"

// LoanPhoto — фотография состояния вещи. Байты лежат во внешнем хранилище,
// здесь только ссылка (store-relative URL). Запись неизменяема после создания.
type LoanPhoto struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	LoanID string `gorm:"type:uuid;not null;index" json:"loan_id"`

	URL  string `gorm:"size:500;not null" json:"url"`
	Type string `gorm:"size:20;not null;default:'loan'" json:"type"` // start/end/loan

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
