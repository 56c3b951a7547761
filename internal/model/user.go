package model

import "time"

// User — владелец займов. Email служит логином, хеш пароля наружу не отдаём.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
