package repo

import (
	"LoanKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к Postgres и накатывает схему.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Loan{},
		&model.LoanPhoto{},
		&model.ReminderLog{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
