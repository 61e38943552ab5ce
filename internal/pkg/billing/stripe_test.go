package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signStripePayload(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	secret := "whsec_test"
	now := time.Now()

	header := signStripePayload(t, payload, secret, now)
	assert.True(t, VerifyStripeWebhookSignature(payload, header, secret, now, DefaultWebhookTolerance))

	// wrong secret
	assert.False(t, VerifyStripeWebhookSignature(payload, header, "whsec_other", now, DefaultWebhookTolerance))

	// tampered payload
	assert.False(t, VerifyStripeWebhookSignature([]byte(`{}`), header, secret, now, DefaultWebhookTolerance))

	// stale timestamp
	old := signStripePayload(t, payload, secret, now.Add(-10*time.Minute))
	assert.False(t, VerifyStripeWebhookSignature(payload, old, secret, now, DefaultWebhookTolerance))

	// malformed header
	assert.False(t, VerifyStripeWebhookSignature(payload, "v1=zzzz", secret, now, DefaultWebhookTolerance))
	assert.False(t, VerifyStripeWebhookSignature(payload, "", secret, now, DefaultWebhookTolerance))
}

func TestParseWebhookEvent(t *testing.T) {
	event, err := ParseWebhookEvent([]byte(`{"id":"evt_9","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "evt_9", event.ID)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.NotEmpty(t, event.Data.Object)

	_, err = ParseWebhookEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseWebhookEvent([]byte(`{"id":"evt_10"}`))
	assert.Error(t, err, "missing event type")
}

func TestStripePriceIDForPlan(t *testing.T) {
	c := &StripeClient{SecretKey: "sk_test", PriceIDPro: "price_pro", PriceIDFounder: "price_founder"}

	id, err := c.PriceIDForPlan("pro")
	require.NoError(t, err)
	assert.Equal(t, "price_pro", id)

	id, err = c.PriceIDForPlan("FOUNDER")
	require.NoError(t, err)
	assert.Equal(t, "price_founder", id)

	_, err = c.PriceIDForPlan("free")
	assert.Error(t, err)
}

func TestStripeNormalizeSubscription(t *testing.T) {
	c := &StripeClient{}
	var sub StripeSubscription
	raw := `{
		"id": "sub_1",
		"customer": "cus_1",
		"status": "active",
		"current_period_start": 1700000000,
		"current_period_end": 1702592000,
		"items": {"data": [{"price": {"id": "price_pro", "recurring": {"interval": "month"}}}]}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &sub))

	n := c.NormalizeSubscription(7, &sub, `{"raw":true}`)
	assert.Equal(t, uint(7), n.UserID)
	assert.Equal(t, "stripe", n.Provider)
	assert.Equal(t, "sub_1", n.ProviderSubscriptionID)
	assert.Equal(t, "price_pro", n.ProviderPlanRef)
	assert.Equal(t, "month", n.BillingInterval)
	require.NotNil(t, n.CurrentPeriodStart)
	require.NotNil(t, n.CurrentPeriodEnd)
	assert.True(t, n.CurrentPeriodEnd.After(*n.CurrentPeriodStart))
}
