package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient is a thin form-encoded client for the parts of the Stripe API
// the billing flow needs: Checkout Sessions, Billing Portal and subscription
// lookups. Webhook payloads are verified separately (see webhook_signature.go).
type StripeClient struct {
	SecretKey     string
	WebhookSecret string

	PriceIDPro     string
	PriceIDFounder string

	SuccessURL string
	CancelURL  string

	APIBaseURL string
	HTTPClient *http.Client
}

// StripeCheckoutSession is the subset of a checkout session we consume.
type StripeCheckoutSession struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// StripeSubscription is the subset of a subscription object we consume.
type StripeSubscription struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	Items              struct {
		Data []struct {
			Price struct {
				ID        string `json:"id"`
				Recurring struct {
					Interval string `json:"interval"`
				} `json:"recurring"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// StripeWebhookEvent is the envelope of a webhook payload.
type StripeWebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

func NewStripeClientFromEnv() *StripeClient {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	successURL := strings.TrimSpace(env.GetEnv("STRIPE_SUCCESS_URL", ""))
	if successURL == "" && base != "" {
		successURL = base + "/user/settings/billing?checkout=success"
	}
	cancelURL := strings.TrimSpace(env.GetEnv("STRIPE_CANCEL_URL", ""))
	if cancelURL == "" && base != "" {
		cancelURL = base + "/pricing"
	}

	return &StripeClient{
		SecretKey:      strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		WebhookSecret:  strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
		PriceIDPro:     strings.TrimSpace(env.GetEnv("STRIPE_PRICE_PRO", "")),
		PriceIDFounder: strings.TrimSpace(env.GetEnv("STRIPE_PRICE_FOUNDER", "")),
		SuccessURL:     successURL,
		CancelURL:      cancelURL,
		APIBaseURL:     strings.TrimSpace(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured reports whether checkout can be offered at all.
func (c *StripeClient) IsConfigured() bool {
	return c != nil && c.SecretKey != "" && (c.PriceIDPro != "" || c.PriceIDFounder != "")
}

// PriceIDForPlan resolves an internal plan name to the configured price ID.
func (c *StripeClient) PriceIDForPlan(plan string) (string, error) {
	switch normalizePlan(plan) {
	case "pro":
		if c.PriceIDPro == "" {
			return "", errors.New("STRIPE_PRICE_PRO is not configured")
		}
		return c.PriceIDPro, nil
	case "founder":
		if c.PriceIDFounder == "" {
			return "", errors.New("STRIPE_PRICE_FOUNDER is not configured")
		}
		return c.PriceIDFounder, nil
	default:
		return "", fmt.Errorf("plan %q has no checkout price", plan)
	}
}

// CreateCheckoutSession starts a subscription checkout for the given user.
// The user ID travels in client_reference_id so the webhook can link the
// resulting customer back to a local account.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, userID uint, email, plan string) (*StripeCheckoutSession, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	if userID == 0 {
		return nil, errors.New("user id is required")
	}
	priceID, err := c.PriceIDForPlan(plan)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("client_reference_id", fmt.Sprintf("%d", userID))
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.SuccessURL)
	form.Set("cancel_url", c.CancelURL)
	if e := strings.TrimSpace(email); e != "" {
		form.Set("customer_email", e)
	}

	var session StripeCheckoutSession
	if err := c.postForm(ctx, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, errors.New("stripe returned a checkout session without a URL")
	}
	return &session, nil
}

// GetSubscription fetches a subscription by ID.
func (c *StripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*StripeSubscription, error) {
	id := strings.TrimSpace(subscriptionID)
	if id == "" {
		return nil, errors.New("subscription id is required")
	}
	var sub StripeSubscription
	if err := c.get(ctx, "/subscriptions/"+url.PathEscape(id), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateBillingPortalSession returns a URL where the customer can manage
// their subscription.
func (c *StripeClient) CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	id := strings.TrimSpace(customerID)
	if id == "" {
		return "", errors.New("customer id is required")
	}
	form := url.Values{}
	form.Set("customer", id)
	if r := strings.TrimSpace(returnURL); r != "" {
		form.Set("return_url", r)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.postForm(ctx, "/billing_portal/sessions", form, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// NormalizeSubscription converts a Stripe subscription into the
// provider-neutral shape the billing service syncs.
func (c *StripeClient) NormalizeSubscription(userID uint, sub *StripeSubscription, rawPayload string) NormalizedSubscription {
	out := NormalizedSubscription{
		UserID:                 userID,
		Provider:               "stripe",
		ProviderSubscriptionID: sub.ID,
		Status:                 sub.Status,
		CancelAtPeriodEnd:      sub.CancelAtPeriodEnd,
		RawPayloadJSON:         rawPayload,
	}
	if len(sub.Items.Data) > 0 {
		out.ProviderPlanRef = sub.Items.Data[0].Price.ID
		out.BillingInterval = sub.Items.Data[0].Price.Recurring.Interval
	}
	if sub.CurrentPeriodStart > 0 {
		t := time.Unix(sub.CurrentPeriodStart, 0)
		out.CurrentPeriodStart = &t
	}
	if sub.CurrentPeriodEnd > 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0)
		out.CurrentPeriodEnd = &t
	}
	return out
}

// ParseWebhookEvent decodes a webhook payload envelope.
func ParseWebhookEvent(payload []byte) (*StripeWebhookEvent, error) {
	var event StripeWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if event.Type == "" {
		return nil, errors.New("webhook payload has no event type")
	}
	return &event, nil
}

func (c *StripeClient) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(path), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *StripeClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *StripeClient) apiURL(path string) string {
	base := strings.TrimRight(c.APIBaseURL, "/")
	if base == "" {
		base = defaultStripeAPIBaseURL
	}
	return base + path
}

func (c *StripeClient) do(req *http.Request, out interface{}) error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("STRIPE_SECRET_KEY is not configured")
	}
	req.SetBasicAuth(c.SecretKey, "")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stripe request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
