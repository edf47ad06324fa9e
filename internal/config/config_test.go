package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ledger?sslmode=disable")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 24*time.Hour, cfg.GetLoanCacheTTL())
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestValidateRejectsBadDurations(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ledger?sslmode=disable")
	t.Setenv("REDIS_LOAN_TTL", "not-a-duration")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_LOAN_TTL")
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
	}

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
