package models

import "time"

// DocumentRecordID is the primary key of the only row in the documents table.
const DocumentRecordID uint = 1

// DocumentRecord stores the serialized document when the database backend is used.
type DocumentRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DocumentRecord) TableName() string {
	return "documents"
}
