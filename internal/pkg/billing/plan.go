package billing

import (
	"strings"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
)

func normalizePlan(plan string) string {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(entitlements.PlanPro):
		return string(entitlements.PlanPro)
	case string(entitlements.PlanFounder):
		return string(entitlements.PlanFounder)
	default:
		return string(entitlements.PlanFree)
	}
}

func planRank(plan string) int {
	switch normalizePlan(plan) {
	case string(entitlements.PlanFounder):
		return 2
	case string(entitlements.PlanPro):
		return 1
	default:
		return 0
	}
}

func normalizeInterval(interval string) string {
	i := strings.ToLower(strings.TrimSpace(interval))
	switch i {
	case "month", "year":
		return i
	default:
		return "unknown"
	}
}

func isEntitlingStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "trialing", "past_due":
		return true
	default:
		return false
	}
}
