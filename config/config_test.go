package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("IDENTITY_URL", "")
	t.Setenv("IDENTITY_TIMEOUT", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("EVENT_CACHE_TTL", "")
	t.Setenv("MAIL_PROVIDER", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8081", cfg.IdentityURL)
	assert.Equal(t, 5*time.Second, cfg.IdentityTimeout)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.EventCacheTTL)
	assert.Equal(t, "noop", cfg.Mail.Provider)
	assert.NotEmpty(t, cfg.DBUrl)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9000")
	t.Setenv("IDENTITY_TIMEOUT", "750ms")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.IdentityTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Mail.InsecureSkipVerify)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("IDENTITY_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDENTITY_TIMEOUT")
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVICE_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}
