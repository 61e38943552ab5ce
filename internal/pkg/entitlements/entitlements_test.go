package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VisaPilotUK/VisaPilot/app/models"
)

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanFree, ParsePlan(""))
	assert.Equal(t, PlanFree, ParsePlan("unknown"))
	assert.Equal(t, PlanPro, ParsePlan("PRO"))
	assert.Equal(t, PlanFounder, ParsePlan(" founder "))
}

func TestCanSendChatMessageQuota(t *testing.T) {
	us := &models.UserSettings{Plan: "free", ChatMessagesUsed: 19}
	assert.True(t, CanSendChatMessage(us, nil))

	us.ChatMessagesUsed = 20
	assert.False(t, CanSendChatMessage(us, nil))

	us.Plan = "founder"
	assert.True(t, CanSendChatMessage(us, nil), "founder chat is unlimited")
}

func TestCanSendChatMessageAdminToggle(t *testing.T) {
	us := &models.UserSettings{Plan: "pro"}
	app := &models.AppSettings{ChatEnabled: false}
	assert.False(t, CanSendChatMessage(us, app))
}

func TestCanGeneratePlan(t *testing.T) {
	us := &models.UserSettings{Plan: "free", PlansGenerated: 0}
	assert.True(t, CanGeneratePlan(us))

	us.PlansGenerated = 1
	assert.False(t, CanGeneratePlan(us))

	us.Plan = "pro"
	assert.True(t, CanGeneratePlan(us))
}

func TestCanUploadDocument(t *testing.T) {
	us := &models.UserSettings{Plan: "free"}
	assert.True(t, CanUploadDocument(us, nil, 4))
	assert.False(t, CanUploadDocument(us, nil, 5))
	assert.False(t, CanUploadDocument(nil, nil, 0))
}
