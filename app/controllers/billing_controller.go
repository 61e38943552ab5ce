package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/billing"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/session"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"
)

// HandleBillingCheckout starts a Stripe subscription checkout for the
// requested plan and redirects the user to the hosted payment page.
func HandleBillingCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	plan := strings.TrimSpace(c.FormValue("plan", c.Query("plan")))
	if plan == "" {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "No plan selected"}).Redirect("/pricing")
	}

	client := billing.NewStripeClientFromEnv()
	if !client.IsConfigured() {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Payments are not configured yet. Please try again later."}).Redirect("/pricing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var user models.User
	email := ""
	if err := database.GetDB().First(&user, userCtx.UserID).Error; err == nil {
		email = user.Email
	}

	checkout, err := client.CreateCheckoutSession(ctx, userCtx.UserID, email, plan)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not start checkout: " + err.Error()}).Redirect("/pricing")
	}

	return c.Redirect(checkout.URL, fiber.StatusSeeOther)
}

// HandleBillingPortal sends the user to the Stripe customer portal to manage
// their subscription.
func HandleBillingPortal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	account, err := svc.GetBillingAccountByUser(ctx, userCtx.UserID, models.BillingProviderStripe)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "No billing account linked yet. Subscribe to a plan first."}).Redirect("/user/settings/billing")
	}

	client := billing.NewStripeClientFromEnv()
	returnURL := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/") + "/user/settings/billing"
	portalURL, err := client.CreateBillingPortalSession(ctx, account.ProviderAccountID, returnURL)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not open the billing portal"}).Redirect("/user/settings/billing")
	}

	return c.Redirect(portalURL, fiber.StatusSeeOther)
}

// HandleStripeWebhook ingests Stripe webhook events. Every delivery is
// persisted before processing so duplicates are answered idempotently.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signatureValid := billing.VerifyStripeWebhookSignature(rawBody, signature, secret, time.Now(), billing.DefaultWebhookTolerance)

	event, parseErr := billing.ParseWebhookEvent(rawBody)
	eventID := ""
	eventType := ""
	if event != nil {
		eventID = event.ID
		eventType = event.Type
	}

	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}
	if parseErr != nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	var procErr error
	switch event.Type {
	case "checkout.session.completed":
		procErr = processCheckoutCompleted(ctx, svc, event.Data.Object)
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		procErr = processSubscriptionEvent(ctx, svc, event.Data.Object)
	default:
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	_ = svc.MarkWebhookProcessed(ctx, stored.ID, procErr)
	if procErr != nil {
		if errors.Is(procErr, errNoLinkedAccount) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_sync_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

var errNoLinkedAccount = errors.New("no linked local account for stripe customer")

// processCheckoutCompleted links the new Stripe customer to the local user
// (client_reference_id) and syncs the subscription the checkout created.
func processCheckoutCompleted(ctx context.Context, svc *billing.Service, object json.RawMessage) error {
	var checkout struct {
		Customer          string `json:"customer"`
		CustomerEmail     string `json:"customer_email"`
		ClientReferenceID string `json:"client_reference_id"`
		Subscription      string `json:"subscription"`
	}
	if err := json.Unmarshal(object, &checkout); err != nil {
		return fmt.Errorf("invalid checkout session object: %w", err)
	}

	userID64, err := strconv.ParseUint(strings.TrimSpace(checkout.ClientReferenceID), 10, 32)
	if err != nil || userID64 == 0 {
		return errors.New("checkout session has no usable client_reference_id")
	}
	userID := uint(userID64)

	if _, err := svc.UpsertBillingAccount(ctx, userID, models.BillingProviderStripe, checkout.Customer, checkout.CustomerEmail, "", "", nil); err != nil {
		return err
	}

	if checkout.Subscription == "" {
		return nil
	}

	client := billing.NewStripeClientFromEnv()
	sub, err := client.GetSubscription(ctx, checkout.Subscription)
	if err != nil {
		return err
	}

	_, _, syncErr := svc.SyncSubscription(ctx, client.NormalizeSubscription(userID, sub, ""))
	return syncErr
}

// processSubscriptionEvent syncs a subscription lifecycle event for an
// already linked customer.
func processSubscriptionEvent(ctx context.Context, svc *billing.Service, object json.RawMessage) error {
	var sub billing.StripeSubscription
	if err := json.Unmarshal(object, &sub); err != nil {
		return fmt.Errorf("invalid subscription object: %w", err)
	}
	if sub.Customer == "" {
		return errors.New("subscription event has no customer")
	}

	account, err := svc.GetBillingAccountByProviderAccountID(ctx, models.BillingProviderStripe, sub.Customer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoLinkedAccount
		}
		return err
	}

	client := billing.NewStripeClientFromEnv()
	_, _, syncErr := svc.SyncSubscription(ctx, client.NormalizeSubscription(account.UserID, &sub, string(object)))
	return syncErr
}

// HandleUserBillingResync recalculates the user's effective plan from the
// stored subscriptions.
func HandleUserBillingResync(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	effectivePlan, err := svc.ReconcileUserPlan(ctx, userCtx.UserID)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Plan re-sync failed"}).Redirect("/user/settings/billing")
	}

	_ = session.SetSessionValue(c, "user_plan", effectivePlan)
	msg := fmt.Sprintf("Plan recalculated. Active plan: %s", effectivePlan)
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": msg}).Redirect("/user/settings/billing")
}
