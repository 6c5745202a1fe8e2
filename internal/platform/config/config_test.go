package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 50.0, cfg.Matching.MinScore)
	assert.Equal(t, 5, cfg.Matching.ScanTopN)
	assert.Equal(t, 10, cfg.Matching.TriggerTopN)
	assert.Zero(t, cfg.Matching.ScanInterval)
	assert.Equal(t, "lostfound.events", cfg.RabbitMQExchange)
	assert.False(t, cfg.AllowAllRoles)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"PORT":                "9000",
		"MATCH_MIN_SCORE":     "65.5",
		"MATCH_SCAN_TOP_N":    "3",
		"MATCH_SCAN_INTERVAL": "15m",
		"ALLOW_ALL_ROLES":     "true",
		"MINIO_USE_SSL":       "1",
	}))

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 65.5, cfg.Matching.MinScore)
	assert.Equal(t, 3, cfg.Matching.ScanTopN)
	assert.Equal(t, 15*time.Minute, cfg.Matching.ScanInterval)
	assert.True(t, cfg.AllowAllRoles)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"MATCH_MIN_SCORE":     "150",
		"MATCH_SCAN_TOP_N":    "-2",
		"MATCH_SCAN_INTERVAL": "soon",
	}))

	assert.Equal(t, DefaultMinScore, cfg.Matching.MinScore)
	assert.Equal(t, DefaultScanTopN, cfg.Matching.ScanTopN)
	assert.Zero(t, cfg.Matching.ScanInterval)
}
