package main

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	config, err := parseConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, SortStoreSQLite, config.SortStore)
	assert.Equal(t, "./clients.db", config.DatabasePath)
	assert.Equal(t, "en", config.Locale)
	assert.Equal(t, 31536000, config.SessionMaxAge)
	assert.Equal(t, 30*time.Minute, config.SessionCacheTTL)
	assert.Equal(t, "Clients!A2:G", config.GoogleSheetRange)
	assert.Equal(t, 120, config.RateLimitPerMinute)
	assert.Equal(t, 60, config.RateLimitBurst)
	assert.Len(t, config.SessionSecret, 64, "generated development secret")
	assert.False(t, config.IsProduction())
}

func TestParseConfigOverrides(t *testing.T) {
	config, err := parseConfig(env.Options{Environment: map[string]string{
		"PORT":              "9000",
		"SORT_STORE":        "Cookie",
		"LOCALE":            "fr",
		"SESSION_CACHE_TTL": "5m",
		"SESSION_SECRET":    strings.Repeat("x", 40),
		"GOOGLE_SHEET_ID":   "sheet-123",
	}})
	require.NoError(t, err)

	assert.Equal(t, "9000", config.Port)
	assert.Equal(t, SortStoreCookie, config.SortStore)
	assert.Equal(t, "fr", config.Locale)
	assert.Equal(t, 5*time.Minute, config.SessionCacheTTL)
	assert.Equal(t, strings.Repeat("x", 40), config.SessionSecret)
	assert.Equal(t, "sheet-123", config.GoogleSheetID)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
		{"short secret", map[string]string{"SESSION_SECRET": "short"}},
		{"unknown store", map[string]string{"SORT_STORE": "redis"}},
		{"bad max age", map[string]string{"SESSION_MAX_AGE": "soon"}},
		{"zero rate", map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(env.Options{Environment: tt.env})
			assert.Error(t, err)
		})
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	b, err := GenerateSecureToken(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
