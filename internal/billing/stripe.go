// Package billing connects organizations to Stripe so they can sell paid
// tickets. Each organization owns an Express connected account; ticket
// revenue is paid out to it.
package billing

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/accountlink"
	"github.com/stripe/stripe-go/v79/loginlink"
	"github.com/stripe/stripe-go/v79/webhook"
)

// EventAccountUpdated is sent by Stripe whenever a connected account changes.
const EventAccountUpdated = "account.updated"

// AccountStatus is the part of a connected account the platform caches.
type AccountStatus struct {
	AccountID        string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
}

// Ready returns true when the account can take payments and receive payouts.
func (s AccountStatus) Ready() bool {
	return s.ChargesEnabled && s.PayoutsEnabled
}

// Service defines the connected-account operations.
type Service interface {
	// CreateAccount creates an Express account and returns its id.
	CreateAccount(email, country string) (string, error)

	// GetAccountStatus fetches the live status of an account.
	GetAccountStatus(accountID string) (AccountStatus, error)

	// CreateOnboardingLink returns a one-time URL where the organizer finishes
	// the account setup.
	CreateOnboardingLink(accountID, refreshURL, returnURL string) (string, error)

	// CreateDashboardLink returns a login link to the Express dashboard where
	// payouts are managed.
	CreateDashboardLink(accountID string) (string, error)

	// VerifyWebhookSignature verifies the Stripe webhook signature and returns the event.
	VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error)
}

type stripeService struct {
	webhookSecret string
}

// NewStripeService creates a billing service. secretKey authenticates API
// calls; webhookSecret verifies incoming webhooks.
func NewStripeService(secretKey, webhookSecret string) Service {
	stripe.Key = secretKey
	return &stripeService{webhookSecret: webhookSecret}
}

func (s *stripeService) CreateAccount(email, country string) (string, error) {
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Email:   stripe.String(email),
		Country: stripe.String(country),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	acct, err := account.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create account: %w", err)
	}
	return acct.ID, nil
}

func (s *stripeService) GetAccountStatus(accountID string) (AccountStatus, error) {
	acct, err := account.GetByID(accountID, nil)
	if err != nil {
		return AccountStatus{}, fmt.Errorf("stripe get account: %w", err)
	}
	return statusOf(acct), nil
}

func (s *stripeService) CreateOnboardingLink(accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	link, err := accountlink.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create account link: %w", err)
	}
	return link.URL, nil
}

func (s *stripeService) CreateDashboardLink(accountID string) (string, error) {
	link, err := loginlink.New(&stripe.LoginLinkParams{Account: stripe.String(accountID)})
	if err != nil {
		return "", fmt.Errorf("stripe create login link: %w", err)
	}
	return link.URL, nil
}

func (s *stripeService) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("stripe webhook signature verification failed: %w", err)
	}
	return event, nil
}

// ParseAccountEvent extracts the account status from an account.updated event.
func ParseAccountEvent(event stripe.Event) (AccountStatus, error) {
	if event.Type != EventAccountUpdated {
		return AccountStatus{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	if event.Data == nil {
		return AccountStatus{}, fmt.Errorf("event %s has no data", event.ID)
	}
	var acct stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
		return AccountStatus{}, fmt.Errorf("parse account: %w", err)
	}
	if acct.ID == "" {
		return AccountStatus{}, fmt.Errorf("event %s: account id missing", event.ID)
	}
	return statusOf(&acct), nil
}

func statusOf(acct *stripe.Account) AccountStatus {
	return AccountStatus{
		AccountID:        acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}
}
