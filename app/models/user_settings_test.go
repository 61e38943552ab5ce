package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSettingsIssueAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 1}

	key, err := us.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.NotEmpty(t, us.APIKeyHash)
	assert.NotEmpty(t, us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyCreatedAt)
	assert.Nil(t, us.APIKeyLastUsedAt)
	assert.True(t, us.HasActiveAPIKey())
	assert.Equal(t, HashAPIKey(key), us.APIKeyHash)
}

func TestUserSettingsRevokeAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 99}
	_, err := us.IssueAPIKey()
	require.NoError(t, err)

	us.RevokeAPIKey()

	assert.False(t, us.HasActiveAPIKey())
	assert.Equal(t, "", us.APIKeyHash)
	assert.Equal(t, "", us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyRevokedAt)
}

func TestUserSettingsResetUsageIfStale(t *testing.T) {
	now := time.Now()

	fresh := now.Add(-10 * 24 * time.Hour)
	us := &UserSettings{UserID: 1, Plan: "pro", ChatMessagesUsed: 40, PlansGenerated: 2, UsagePeriodStart: &fresh}
	assert.False(t, us.ResetUsageIfStale(now))
	assert.Equal(t, 40, us.ChatMessagesUsed)
	assert.Equal(t, 2, us.PlansGenerated)

	stale := now.Add(-31 * 24 * time.Hour)
	us.UsagePeriodStart = &stale
	assert.True(t, us.ResetUsageIfStale(now))
	assert.Equal(t, 0, us.ChatMessagesUsed)
	assert.Equal(t, 0, us.PlansGenerated)
	require.NotNil(t, us.UsagePeriodStart)
	assert.Equal(t, now, *us.UsagePeriodStart)

	// missing period start counts as stale
	us2 := &UserSettings{UserID: 2, ChatMessagesUsed: 5}
	assert.True(t, us2.ResetUsageIfStale(now))
	assert.Equal(t, 0, us2.ChatMessagesUsed)
}
