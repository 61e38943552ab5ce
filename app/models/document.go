package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document kinds accepted as supporting evidence.
const (
	DocumentKindEvidence  = "evidence"  // uploaded by the applicant
	DocumentKindGenerated = "generated" // produced by the pipeline (plan PDF)
)

// Document is one supporting file attached to a business plan.
type Document struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UUID      string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	PlanID    uint   `gorm:"index" json:"plan_id"`
	UserID    uint   `gorm:"index" json:"user_id"`
	Kind      string `gorm:"type:varchar(20);default:'evidence'" json:"kind"`
	FileName  string `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath  string `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize  int64  `gorm:"type:bigint" json:"file_size"`
	MimeType  string `gorm:"type:varchar(100)" json:"mime_type"`
	ObjectKey string `gorm:"type:varchar(500)" json:"-"` // S3 key when archived
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return nil
}

// IsArchived reports whether the document has been copied to object storage.
func (d *Document) IsArchived() bool {
	return d.ObjectKey != ""
}
