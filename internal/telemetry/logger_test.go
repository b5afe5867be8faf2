package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	env := map[string]string{"LOG_LEVEL": "debug", "LOG_JSON": "false", "LOG_FILE": "off"}
	get := func(k, d string) string {
		if v, ok := env[k]; ok {
			return v
		}
		return d
	}

	cfg := FromEnv(get)
	assert.Equal(t, "debug", cfg.Level)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.File)
	assert.Equal(t, 10, cfg.MaxSizeMB)
	assert.True(t, cfg.Compress)
}

func TestInitLevelFallback(t *testing.T) {
	l := Init(Config{Level: "not-a-level", JSON: true})
	assert.Equal(t, "info", l.GetLevel().String())
	assert.Equal(t, l.GetLevel(), L().GetLevel())
}
