package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/courtside")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "local", cfg.StorageProvider)
	assert.Equal(t, "PT", cfg.StripeAccountCountry)
	assert.Equal(t, 60, cfg.LocationSearchRate)

	policy, err := cfg.FormPolicy()
	require.NoError(t, err)
	assert.Equal(t, 1.00, policy.MinPaidPrice)
	assert.Equal(t, 1, policy.SplitThreshold)
	assert.Equal(t, language.Portuguese, policy.Language)
	assert.Equal(t, "Europe/Lisbon", policy.Location.String())
}

func TestNewConfig_PolicyOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/courtside")
	t.Setenv("MIN_TICKET_PRICE", "2.5")
	t.Setenv("FREE_SPLIT_THRESHOLD", "3")
	t.Setenv("DISPLAY_LANGUAGE", "en")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := NewConfig()
	require.NoError(t, err)

	policy, err := cfg.FormPolicy()
	require.NoError(t, err)
	assert.Equal(t, 2.5, policy.MinPaidPrice)
	assert.Equal(t, 3, policy.SplitThreshold)
	assert.Equal(t, language.English, policy.Language)
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL"},
		{"bad storage", map[string]string{"STORAGE_PROVIDER": "s3"}, "STORAGE_PROVIDER"},
		{"r2 without account", map[string]string{"STORAGE_PROVIDER": "r2"}, "R2_ACCOUNT_ID"},
		{"negative price", map[string]string{"MIN_TICKET_PRICE": "-1"}, "MIN_TICKET_PRICE"},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"webhook secret in production", map[string]string{"ENV": "production", "STRIPE_SECRET_KEY": "sk_live_x"}, "STRIPE_WEBHOOK_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/courtside")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
