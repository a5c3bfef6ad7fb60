package store

import (
	"context"
	"errors"
	"fmt"

	"restaurant-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend keeps the document in the documents table. The projection
// script is still a file so static pages can include it.
type GormBackend struct {
	DB         *gorm.DB
	ScriptPath string
}

func NewGormBackend(db *gorm.DB, scriptPath string) *GormBackend {
	return &GormBackend{DB: db, ScriptPath: scriptPath}
}

func (b *GormBackend) Read(ctx context.Context) ([]byte, error) {
	var rec models.DocumentRecord
	err := b.DB.WithContext(ctx).Where("id = ?", models.DocumentRecordID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Body), nil
}

// Write upserts the row and writes the script inside one transaction; a
// failed script write rolls the row back.
func (b *GormBackend) Write(ctx context.Context, document, script []byte) error {
	return b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := models.DocumentRecord{ID: models.DocumentRecordID, Body: string(document)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to upsert document row: %w", err)
		}
		return WriteFilesAtomic(map[string][]byte{b.ScriptPath: script})
	})
}
