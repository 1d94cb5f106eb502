package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError mapeia violações de unicidade para gorm.ErrDuplicatedKey
	// (proposta duplicada, e-mail já cadastrado).
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}
