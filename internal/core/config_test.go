package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepmind9/symbot/pkg/constants"
)

const validYAML = `
symphony:
  host: "foundation.symphony.com"
  public_key: "/etc/symbot/bot.cert.pem"
  private_key: "/etc/symbot/bot.key.pem"
  passphrase: "changeit"
adapter:
  fail_connect_after: 3
  retry_delay: "100ms"
logging:
  level: "debug"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "foundation.symphony.com", cfg.Symphony.Host)
	assert.Equal(t, 3, cfg.Adapter.FailConnectAfter)
	assert.Equal(t, 100*time.Millisecond, cfg.Adapter.RetryDelayDuration())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "symphony: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadConfig_EachMissingParameterIsNamed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"host",
			"symphony:\n  public_key: a\n  private_key: b\n  passphrase: c\n",
			"host undefined",
		},
		{
			"public_key",
			"symphony:\n  host: a\n  private_key: b\n  passphrase: c\n",
			"public_key undefined",
		},
		{
			"private_key",
			"symphony:\n  host: a\n  public_key: b\n  passphrase: c\n",
			"private_key undefined",
		},
		{
			"passphrase",
			"symphony:\n  host: a\n  public_key: b\n  private_key: c\n",
			"passphrase undefined",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_AllMissingParametersReported(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "logging:\n  level: info\n"))
	require.Error(t, err)
	for _, want := range []string{"host undefined", "public_key undefined", "private_key undefined", "passphrase undefined"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadConfig_RestoringParameterSucceeds(t *testing.T) {
	missing := "symphony:\n  public_key: a\n  private_key: b\n  passphrase: c\n"
	_, err := LoadConfig(writeConfig(t, missing))
	require.Error(t, err)

	restored := missing + "  host: foundation.symphony.com\n"
	_, err = LoadConfig(writeConfig(t, restored))
	assert.NoError(t, err)
}

func TestLoadConfig_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("SYMBOT_TEST_PASSPHRASE", "s3cret")

	yaml := `
symphony:
  host: "foundation.symphony.com"
  public_key: "/etc/symbot/bot.cert.pem"
  private_key: "/etc/symbot/bot.key.pem"
  passphrase: "${SYMBOT_TEST_PASSPHRASE}"
`
	cfg, err := LoadConfig(writeConfig(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Symphony.Passphrase)
}

func TestLoadConfig_MissingEnvironmentVariable(t *testing.T) {
	yaml := `
symphony:
  host: "foundation.symphony.com"
  public_key: "/etc/symbot/bot.cert.pem"
  private_key: "/etc/symbot/bot.key.pem"
  passphrase: "${SYMBOT_TEST_UNSET_VAR}"
`
	_, err := LoadConfig(writeConfig(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYMBOT_TEST_UNSET_VAR")
}

func TestValidateConfig_AppliesDefaults(t *testing.T) {
	cfg := &Config{Symphony: SymphonyConfig{
		Host: "a", PublicKey: "b", PrivateKey: "c", Passphrase: "d",
	}}
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, constants.DefaultFailConnectAfter, cfg.Adapter.FailConnectAfter)
	assert.Equal(t, constants.DefaultRetryDelay, cfg.Adapter.RetryDelayDuration())
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, constants.DefaultLogMaxSize, cfg.Logging.MaxSize)
	assert.Equal(t, constants.DefaultLogMaxBackups, cfg.Logging.MaxBackups)
	assert.Equal(t, constants.DefaultLogMaxAge, cfg.Logging.MaxAge)
}

func TestRetryDelayDuration_Fallback(t *testing.T) {
	assert.Equal(t, constants.DefaultRetryDelay, AdapterConfig{}.RetryDelayDuration())
	assert.Equal(t, constants.DefaultRetryDelay, AdapterConfig{RetryDelay: "nonsense"}.RetryDelayDuration())
	assert.Equal(t, 2*time.Second, AdapterConfig{RetryDelay: "2s"}.RetryDelayDuration())
}
