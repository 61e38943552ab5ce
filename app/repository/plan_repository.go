package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new business plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new business plan in the database
func (r *planRepository) Create(plan *models.BusinessPlan) error {
	return r.db.Create(plan).Error
}

// GetByID retrieves a business plan by its ID
func (r *planRepository) GetByID(id uint) (*models.BusinessPlan, error) {
	var plan models.BusinessPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByUUID retrieves a business plan by its UUID
func (r *planRepository) GetByUUID(uuid string) (*models.BusinessPlan, error) {
	var plan models.BusinessPlan
	err := r.db.Preload("Documents").Where("uuid = ?", uuid).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByShareLink retrieves a business plan by its share link
func (r *planRepository) GetByShareLink(shareLink string) (*models.BusinessPlan, error) {
	var plan models.BusinessPlan
	err := r.db.Where("share_link = ?", shareLink).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves a paginated list of plans for a user, newest first
func (r *planRepository) GetByUserID(userID uint, offset, limit int) ([]models.BusinessPlan, error) {
	var plans []models.BusinessPlan
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&plans).Error
	return plans, err
}

// Update updates an existing business plan in the database
func (r *planRepository) Update(plan *models.BusinessPlan) error {
	return r.db.Save(plan).Error
}

// UpdateStatus moves a plan to the given pipeline status
func (r *planRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.BusinessPlan{}).Where("id = ?", id).
		Update("status", status).Error
}

// SetGenerated stores pipeline output and marks the plan complete
func (r *planRepository) SetGenerated(id uint, content string) error {
	return r.db.Model(&models.BusinessPlan{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"generated_content": content,
			"status":            models.PlanStatusComplete,
		}).Error
}

// SetPDFURL stores the rendered PDF location for a plan
func (r *planRepository) SetPDFURL(id uint, pdfURL string) error {
	return r.db.Model(&models.BusinessPlan{}).Where("id = ?", id).
		Update("pdf_url", pdfURL).Error
}

// Delete soft deletes a business plan by its ID
func (r *planRepository) Delete(id uint) error {
	return r.db.Delete(&models.BusinessPlan{}, id).Error
}

// List retrieves a paginated list of all plans
func (r *planRepository) List(offset, limit int) ([]models.BusinessPlan, error) {
	var plans []models.BusinessPlan
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&plans).Error
	return plans, err
}

// Count returns the total number of plans
func (r *planRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BusinessPlan{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of plans owned by a user
func (r *planRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BusinessPlan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of plans in the given pipeline status
func (r *planRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BusinessPlan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Search searches plans by business name or industry
func (r *planRepository) Search(query string) ([]models.BusinessPlan, error) {
	var plans []models.BusinessPlan
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("business_name LIKE ? OR industry LIKE ?", searchPattern, searchPattern).
		Find(&plans).Error
	return plans, err
}

// GetRecent retrieves the most recently submitted plans
func (r *planRepository) GetRecent(limit int) ([]models.BusinessPlan, error) {
	var plans []models.BusinessPlan
	err := r.db.Order("created_at DESC").Limit(limit).Find(&plans).Error
	return plans, err
}

// GetDailyStats returns daily plan submission statistics for a date range
func (r *planRepository) GetDailyStats(startDate, endDate time.Time) ([]models.DailyStats, error) {
	var results []struct {
		Date  string `json:"date"`
		Count int64  `json:"count"`
	}

	err := r.db.Model(&models.BusinessPlan{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') as date, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE_FORMAT(created_at, '%Y-%m-%d')").
		Order("date").
		Find(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get daily plan stats: %w", err)
	}

	dailyStats := make([]models.DailyStats, len(results))
	for i, result := range results {
		dailyStats[i] = models.DailyStats{
			Date:  result.Date,
			Count: int(result.Count),
		}
	}

	return dailyStats, nil
}
