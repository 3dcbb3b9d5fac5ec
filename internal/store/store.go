// Package store is the on-device persistence of the client: the credential
// pair that survives restarts, plus a snapshot cache of the last invoice
// fetch so the shell has something to show when the backend is unreachable.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens (creating directories as needed) the client's embedded
// sqlite database and migrates its two tables.
func NewDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: crear directorio %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: abrir sqlite: %w", err)
	}

	if err := db.AutoMigrate(&Credencial{}, &FacturaSnapshot{}); err != nil {
		return nil, fmt.Errorf("store: migrar: %w", err)
	}
	return db, nil
}
