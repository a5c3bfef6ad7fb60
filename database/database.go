package database

import (
	"errors"
	"fmt"
	"os"
	"time"

	"restaurant-cms/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=restaurant_cms port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.DocumentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return nil
}

// ImportFileDocument seeds the documents table from a JSON file written by
// the file backend, so switching backends keeps the content. It does nothing
// when a row already exists or the file is absent, and reports whether it
// imported.
func ImportFileDocument(db *gorm.DB, path string, logger *zap.Logger) (bool, error) {
	var count int64
	if err := db.Model(&models.DocumentRecord{}).Where("id = ?", models.DocumentRecordID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check documents table: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	body, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	record := models.DocumentRecord{ID: models.DocumentRecordID, Body: string(body)}
	if err := db.Create(&record).Error; err != nil {
		return false, fmt.Errorf("failed to import document: %w", err)
	}

	logger.Info("imported document from file", zap.String("path", path))
	return true, nil
}
