package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/scoring"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/shortener"
)

// Business plan pipeline states. A plan is written once on questionnaire
// submission and afterwards only the generation pipeline may mutate it
// (generated_content, pdf_url, status).
const (
	PlanStatusDraft      = "draft"
	PlanStatusQueued     = "queued"
	PlanStatusGenerating = "generating"
	PlanStatusComplete   = "complete"
	PlanStatusFailed     = "failed"
)

// BusinessPlan is one applicant submission from the questionnaire.
type BusinessPlan struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UUID   string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID uint   `gorm:"index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	BusinessName string `gorm:"type:varchar(255);not null" json:"business_name" validate:"required,min=2,max=255"`
	Industry     string `gorm:"type:varchar(255)" json:"industry" validate:"max=255"`

	// Questionnaire narrative fields.
	Problem            string `gorm:"type:text" json:"problem"`
	Uniqueness         string `gorm:"type:text" json:"uniqueness"`
	Technology         string `gorm:"type:text" json:"technology"`
	Experience         string `gorm:"type:text" json:"experience"`
	RevenueModel       string `gorm:"type:text" json:"revenue_model"`
	Expansion          string `gorm:"type:text" json:"expansion"`
	Vision             string `gorm:"type:text" json:"vision"`
	CustomerInterviews string `gorm:"type:text" json:"customer_interviews"`
	ProductStatus      string `gorm:"type:varchar(255)" json:"product_status"`

	FundingAmount int `gorm:"type:int;default:0" json:"funding_amount" validate:"min=0"`
	JobCreation   int `gorm:"type:int;default:0" json:"job_creation" validate:"min=0,max=1000"`

	// Extended fields consumed only by the scoring engine.
	PatentStatus       string  `gorm:"type:varchar(100)" json:"patent_status"`
	CustomerAcqCost    float64 `gorm:"type:decimal(12,2);default:0" json:"customer_acq_cost"`
	LifetimeValue      float64 `gorm:"type:decimal(12,2);default:0" json:"lifetime_value"`
	PaybackMonths      int     `gorm:"type:int;default:0" json:"payback_months"`
	MonthlyProjections string  `gorm:"type:text" json:"monthly_projections"`

	// Set exclusively by the generation pipeline.
	GeneratedContent string `gorm:"type:longtext" json:"generated_content,omitempty"`
	PDFURL           string `gorm:"type:varchar(500)" json:"pdf_url,omitempty"`
	Status           string `gorm:"type:varchar(50);default:'draft'" json:"status" validate:"oneof=draft queued generating complete failed"`

	ShareLink string `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"share_link"`

	// Flushed periodically from Redis counters.
	ViewCount     int `gorm:"default:0" json:"view_count"`
	DownloadCount int `gorm:"default:0" json:"download_count"`

	Documents []Document `gorm:"foreignKey:PlanID" json:"documents,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *BusinessPlan) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// BeforeCreate assigns the UUID and a placeholder share link.
func (p *BusinessPlan) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.ShareLink == "" {
		p.ShareLink = "temp-" + p.UUID[:8]
	}
	if p.Status == "" {
		p.Status = PlanStatusDraft
	}
	return nil
}

// AfterCreate swaps the placeholder share link for the ID-derived short link.
func (p *BusinessPlan) AfterCreate(tx *gorm.DB) error {
	if len(p.ShareLink) >= 5 && p.ShareLink[:5] == "temp-" {
		p.ShareLink = shortener.EncodeID(p.ID)
		return tx.Model(p).Update("share_link", p.ShareLink).Error
	}
	return nil
}

// IsGenerated reports whether the pipeline has produced content for this plan.
func (p *BusinessPlan) IsGenerated() bool {
	return p.Status == PlanStatusComplete && p.GeneratedContent != ""
}

// ScoringInput maps the persisted row into the scoring engine's input shape.
func (p *BusinessPlan) ScoringInput() scoring.PlanInput {
	return scoring.PlanInput{
		BusinessName:       p.BusinessName,
		Industry:           p.Industry,
		Problem:            p.Problem,
		Uniqueness:         p.Uniqueness,
		Technology:         p.Technology,
		Experience:         p.Experience,
		RevenueModel:       p.RevenueModel,
		Expansion:          p.Expansion,
		Vision:             p.Vision,
		CustomerInterviews: p.CustomerInterviews,
		ProductStatus:      p.ProductStatus,
		FundingAmount:      p.FundingAmount,
		JobCreation:        p.JobCreation,
		PatentStatus:       p.PatentStatus,
		CustomerAcqCost:    p.CustomerAcqCost,
		LifetimeValue:      p.LifetimeValue,
		PaybackMonths:      p.PaybackMonths,
		MonthlyProjections: p.MonthlyProjections,
	}
}
