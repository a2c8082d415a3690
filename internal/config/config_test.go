package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("USE_BROWSER", "")

	cfg := FromEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "resumes", cfg.OutputDir)
	assert.False(t, cfg.UseBrowser)
}

func TestFromEnv_ReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("PORT", "9090")
	t.Setenv("USE_BROWSER", "true")
	t.Setenv("OUTPUT_DIR", "/tmp/out")

	cfg := FromEnv()

	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestFromEnv_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	assert.Equal(t, 8080, FromEnv().Port)
}

func TestValidate_PortRange(t *testing.T) {
	cfg := FromEnv()
	cfg.Port = 0

	require.Error(t, cfg.Validate())

	cfg.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AuthRequiresPasswordHash(t *testing.T) {
	cfg := FromEnv()
	cfg.AuthSecret = "secret"
	cfg.AdminPasswordHash = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")
}

func TestEnvBool_Variants(t *testing.T) {
	for _, value := range []string{"1", "true", "YES", "On"} {
		t.Setenv("USE_BROWSER", value)
		assert.True(t, FromEnv().UseBrowser, "value %q", value)
	}
	for _, value := range []string{"", "0", "false", "off"} {
		t.Setenv("USE_BROWSER", value)
		assert.False(t, FromEnv().UseBrowser, "value %q", value)
	}
}
