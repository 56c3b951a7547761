package model

import "time"

// ReminderLog — журнал отправленных напоминаний. Append-only; пишет его
// внешний процесс рассылки, сервер только читает вместе с займом.
type ReminderLog struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	LoanID string `gorm:"type:uuid;not null;index" json:"loan_id"`

	Subject string    `gorm:"size:200;not null" json:"subject"`
	SentAt  time.Time `gorm:"autoCreateTime" json:"sent_at"`
}
