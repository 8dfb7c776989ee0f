package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvString(t *testing.T) {
	t.Setenv("TD_TEST_STRING", "value")
	assert.Equal(t, "value", envString("TD_TEST_STRING", "default"))
	assert.Equal(t, "default", envString("TD_TEST_MISSING", "default"))
}

func TestEnvInt(t *testing.T) {
	t.Setenv("TD_TEST_INT", "42")
	assert.Equal(t, 42, envInt("TD_TEST_INT", 7))

	t.Setenv("TD_TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, envInt("TD_TEST_INT_BAD", 7))

	assert.Equal(t, 7, envInt("TD_TEST_INT_MISSING", 7))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TD_TEST_DURATION", "30s")
	assert.Equal(t, 30*time.Second, envDuration("TD_TEST_DURATION", time.Minute))

	t.Setenv("TD_TEST_DURATION_BAD", "soon")
	assert.Equal(t, time.Minute, envDuration("TD_TEST_DURATION_BAD", time.Minute))
}

func TestEnvModes(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.AppEnv = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
