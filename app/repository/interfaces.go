package repository

import (
	"time"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	GetStatsByUserID(userID uint) (*UserStats, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
	GetWithStats(offset, limit int) ([]UserWithStats, error)
	SearchWithStats(query string) ([]UserWithStats, error)
	GetDailyStats(startDate, endDate time.Time) ([]models.DailyStats, error)
}

// PlanRepository defines the interface for business plan database operations
type PlanRepository interface {
	Create(plan *models.BusinessPlan) error
	GetByID(id uint) (*models.BusinessPlan, error)
	GetByUUID(uuid string) (*models.BusinessPlan, error)
	GetByShareLink(shareLink string) (*models.BusinessPlan, error)
	GetByUserID(userID uint, offset, limit int) ([]models.BusinessPlan, error)
	Update(plan *models.BusinessPlan) error
	UpdateStatus(id uint, status string) error
	SetGenerated(id uint, content string) error
	SetPDFURL(id uint, pdfURL string) error
	Delete(id uint) error
	List(offset, limit int) ([]models.BusinessPlan, error)
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
	CountByStatus(status string) (int64, error)
	Search(query string) ([]models.BusinessPlan, error)
	GetRecent(limit int) ([]models.BusinessPlan, error)
	GetDailyStats(startDate, endDate time.Time) ([]models.DailyStats, error)
}

// DocumentRepository defines the interface for supporting-document operations
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id uint) (*models.Document, error)
	GetByUUID(uuid string) (*models.Document, error)
	GetByPlanID(planID uint) ([]models.Document, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Document, error)
	Update(doc *models.Document) error
	SetObjectKey(id uint, objectKey string) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
	CountByPlanID(planID uint) (int64, error)
	StorageUsageByUserID(userID uint) (int64, error)
	GetUnarchived(limit int) ([]models.Document, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// PageRepository defines the interface for page-related operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetActive() ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// NewsRepository defines the interface for news-related operations
type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id uint) (*models.News, error)
	GetBySlug(slug string) (*models.News, error)
	GetPublished(offset, limit int) ([]models.News, error)
	GetAll(offset, limit int) ([]models.News, error)
	GetAllWithoutPagination() ([]models.News, error)
	Update(news *models.News) error
	Delete(id uint) error
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// QueueRepository defines the interface for cache/queue operations
type QueueRepository interface {
	GetAllKeys() ([]string, error)
	GetValue(key string) (string, error)
	GetTTL(key string) (time.Duration, error)
	DeleteKey(key string) (int64, error)
	GetListLength(key string) (int64, error)
	FindKeysByPatterns(patterns []string) ([]string, error)
	DeleteKeys(keys []string) (int64, error)
}

// UserWithStats represents a user with additional statistics
type UserWithStats struct {
	User          models.User
	PlanCount     int64
	DocumentCount int64
	StorageUsage  int64
}

// UserStats provides aggregated counts for a single user (plans, documents, storage usage).
type UserStats struct {
	PlanCount     int64
	DocumentCount int64
	StorageUsage  int64
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Plan     PlanRepository
	Document DocumentRepository
	Setting  SettingRepository
	Page     PageRepository
	News     NewsRepository
	Queue    QueueRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Plan:     NewPlanRepository(db),
		Document: NewDocumentRepository(db),
		Setting:  NewSettingRepository(db),
		Page:     NewPageRepository(db),
		News:     NewNewsRepository(db),
		Queue:    NewQueueRepository(),
	}
}
