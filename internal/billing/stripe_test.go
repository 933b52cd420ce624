package billing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

func accountEventPayload(accountID string, charges, payouts bool) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": %q,
		"type": "account.updated",
		"data": {"object": {"id": %q, "object": "account", "charges_enabled": %t, "payouts_enabled": %t, "details_submitted": true}}
	}`, stripe.APIVersion, accountID, charges, payouts))
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewStripeService("sk_test_x", "whsec_test")
	payload := accountEventPayload("acct_123", true, true)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    "whsec_test",
		Timestamp: time.Now(),
	})

	event, err := svc.VerifyWebhookSignature(payload, signed.Header)
	require.NoError(t, err)

	status, err := ParseAccountEvent(event)
	require.NoError(t, err)
	assert.Equal(t, AccountStatus{AccountID: "acct_123", ChargesEnabled: true, PayoutsEnabled: true, DetailsSubmitted: true}, status)
	assert.True(t, status.Ready())

	_, err = svc.VerifyWebhookSignature(payload, "t=1,v1=bogus")
	assert.Error(t, err)
}

func TestParseAccountEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   stripe.Event
		wantErr bool
		ready   bool
	}{
		{
			name:  "payouts pending",
			event: stripe.Event{Type: EventAccountUpdated, Data: &stripe.EventData{Raw: []byte(`{"id":"acct_1","charges_enabled":true}`)}},
		},
		{
			name:  "ready",
			event: stripe.Event{Type: EventAccountUpdated, Data: &stripe.EventData{Raw: []byte(`{"id":"acct_1","charges_enabled":true,"payouts_enabled":true}`)}},
			ready: true,
		},
		{
			name:    "wrong type",
			event:   stripe.Event{Type: "invoice.paid", Data: &stripe.EventData{Raw: []byte(`{}`)}},
			wantErr: true,
		},
		{
			name:    "missing id",
			event:   stripe.Event{Type: EventAccountUpdated, Data: &stripe.EventData{Raw: []byte(`{"charges_enabled":true}`)}},
			wantErr: true,
		},
		{
			name:    "no data",
			event:   stripe.Event{Type: EventAccountUpdated},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseAccountEvent(tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acct_1", status.AccountID)
			assert.Equal(t, tt.ready, status.Ready())
		})
	}
}
