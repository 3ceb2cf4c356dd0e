package journal

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultJournalName = "journal.db"
	defaultJournalDir  = ".config/gametracker"
)

type DB struct {
	*gorm.DB
}

func GetDefaultJournalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	journalDir := filepath.Join(homeDir, defaultJournalDir)
	if err := os.MkdirAll(journalDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create journal directory: %w", err)
	}

	return filepath.Join(journalDir, defaultJournalName), nil
}

func Connect(journalPath string) (*DB, error) {
	if journalPath == "" {
		var err error
		journalPath, err = GetDefaultJournalPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(journalPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Initialize() error {
	err := db.AutoMigrate(&SessionRecord{}, &ErrorLog{})
	if err != nil {
		return fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
