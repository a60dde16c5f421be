package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8000", cfg.EndpointAddr)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 20*time.Minute, cfg.GuestTokenValidityDuration)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads/resumes", cfg.UploadDir)
}

func TestParseEnvOverlay(t *testing.T) {
	t.Setenv("TRACKIT_ADDR", ":9999")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/trackit")
	t.Setenv("TRACKIT_GUEST_TOKEN_MINUTES", "5")
	t.Setenv("TRACKIT_STORAGE", StorageS3)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/trackit", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.GuestTokenValidityDuration)
	assert.Equal(t, StorageS3, cfg.StorageBackend)
	// Untouched fields keep their defaults.
	assert.Equal(t, "secretKey", cfg.SecretKey)
}

func TestParseEnvIgnoresMalformedMinutes(t *testing.T) {
	t.Setenv("TRACKIT_ACCESS_TOKEN_MINUTES", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
}
