package database

import (
	"strings"

	"networth-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from a DSN. Postgres URLs get the postgres driver with
// PreferSimpleProtocol (avoids 42P05 "prepared statement already exists" behind
// poolers like PgBouncer); anything else is treated as a SQLite path, which is
// the default for a single-tenant local deployment.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate runs migrations for all portfolio models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Cash{},
		&domain.Investment{},
		&domain.Crypto{},
		&domain.Transaction{},
		&domain.PortfolioSnapshot{},
	)
}
