package registrybot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registrybot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validConfig = `
telegram:
  token: "123456:test-token"
  run_mode: longpoll
database:
  host: localhost
  port: "5432"
  user: registrybot
  name: registrybot
  sslmode: disable
content:
  dir: content
  bot_photo: database_bot_photo.png
registration:
  session_ttl_minutes: 15
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", cfg.Core.Telegram.Token)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
	assert.Equal(t, "registrybot", cfg.Database.Name)
	assert.Equal(t, 15, cfg.Registration.SessionTTLMinutes)
	assert.Equal(t, "content", cfg.Content.Dir)
	require.NotNil(t, cfg.CoreConfig())
}

func TestLoadConfigMissingToken(t *testing.T) {
	if os.Getenv("BOT_TOKEN") != "" {
		t.Skip("BOT_TOKEN set in environment")
	}
	_, err := LoadConfig(writeConfig(t, `
telegram:
  run_mode: longpoll
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadConfigNegativeTTL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  token: "123456:test-token"
registration:
  session_ttl_minutes: -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_ttl_minutes")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
