package repo

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"LoreKeeper/internal/model"
)

// InitDB opens the database selected by the DSN and runs migrations.
// A postgres:// DSN selects PostgreSQL; anything else is treated as a
// SQLite path (modernc driver, no cgo).
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "lorekeeper.db"
	}

	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Campaign{},
		&model.VaultItem{},
		&model.Session{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	return db, nil
}
