package repository

import (
	"github.com/VisaPilotUK/VisaPilot/app/models"
	"gorm.io/gorm"
)

// documentRepository implements the DocumentRepository interface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository instance
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create creates a new document record in the database
func (r *documentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// GetByID retrieves a document by its ID
func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByUUID retrieves a document by its UUID
func (r *documentRepository) GetByUUID(uuid string) (*models.Document, error) {
	var doc models.Document
	err := r.db.Where("uuid = ?", uuid).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByPlanID retrieves all documents attached to a plan, newest first
func (r *documentRepository) GetByPlanID(planID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("plan_id = ?", planID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

// GetByUserID retrieves a paginated list of a user's documents
func (r *documentRepository) GetByUserID(userID uint, offset, limit int) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&docs).Error
	return docs, err
}

// Update updates an existing document in the database
func (r *documentRepository) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

// SetObjectKey records the object storage key after a successful archive upload
func (r *documentRepository) SetObjectKey(id uint, objectKey string) error {
	return r.db.Model(&models.Document{}).Where("id = ?", id).
		Update("object_key", objectKey).Error
}

// Delete soft deletes a document by its ID
func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// CountByUserID returns the number of documents owned by a user
func (r *documentRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByPlanID returns the number of evidence documents attached to a plan
func (r *documentRepository) CountByPlanID(planID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).
		Where("plan_id = ? AND kind = ?", planID, models.DocumentKindEvidence).
		Count(&count).Error
	return count, err
}

// StorageUsageByUserID returns the summed file size of a user's documents in bytes
func (r *documentRepository) StorageUsageByUserID(userID uint) (int64, error) {
	var usage int64
	err := r.db.Model(&models.Document{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(file_size), 0)").Row().Scan(&usage)
	return usage, err
}

// GetUnarchived retrieves documents not yet copied to object storage
func (r *documentRepository) GetUnarchived(limit int) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("object_key = '' OR object_key IS NULL").
		Order("created_at ASC").Limit(limit).Find(&docs).Error
	return docs, err
}
