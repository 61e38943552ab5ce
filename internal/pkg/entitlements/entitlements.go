package entitlements

import (
	"strings"

	"github.com/VisaPilotUK/VisaPilot/app/models"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPro     Plan = "pro"
	PlanFounder Plan = "founder"
)

// Per-period usage limits. A negative limit means unlimited.
type Limits struct {
	ChatMessages    int
	PlanGenerations int
	DocumentUploads int
	MaxUploadBytes  int64
}

// LimitsFor returns the usage limits granted by a plan.
func LimitsFor(plan Plan) Limits {
	switch plan {
	case PlanFounder:
		return Limits{
			ChatMessages:    -1,
			PlanGenerations: -1,
			DocumentUploads: 100,
			MaxUploadBytes:  50 << 20,
		}
	case PlanPro:
		return Limits{
			ChatMessages:    200,
			PlanGenerations: 10,
			DocumentUploads: 25,
			MaxUploadBytes:  20 << 20,
		}
	default:
		return Limits{
			ChatMessages:    20,
			PlanGenerations: 1,
			DocumentUploads: 5,
			MaxUploadBytes:  10 << 20,
		}
	}
}

// ParsePlan maps arbitrary input onto a known plan, defaulting to free.
func ParsePlan(raw string) Plan {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(PlanPro):
		return PlanPro
	case string(PlanFounder):
		return PlanFounder
	default:
		return PlanFree
	}
}

// CanSendChatMessage combines admin settings and per-plan quota against
// the user's counters for the current usage period.
func CanSendChatMessage(us *models.UserSettings, app *models.AppSettings) bool {
	if app != nil && !app.IsChatEnabled() {
		return false
	}
	if us == nil {
		return false
	}
	limit := LimitsFor(ParsePlan(us.Plan)).ChatMessages
	return limit < 0 || us.ChatMessagesUsed < limit
}

// CanGeneratePlan reports whether the user may queue another plan generation.
func CanGeneratePlan(us *models.UserSettings) bool {
	if us == nil {
		return false
	}
	limit := LimitsFor(ParsePlan(us.Plan)).PlanGenerations
	return limit < 0 || us.PlansGenerated < limit
}

// CanUploadDocument checks the per-plan document count quota.
func CanUploadDocument(us *models.UserSettings, app *models.AppSettings, currentCount int64) bool {
	if app != nil && !app.IsUploadsEnabled() {
		return false
	}
	if us == nil {
		return false
	}
	limit := LimitsFor(ParsePlan(us.Plan)).DocumentUploads
	return limit < 0 || currentCount < int64(limit)
}
