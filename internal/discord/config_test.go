package discord

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "DISCORD_TOKEN", "GENSHIN_UID", "GENSHIN_TOKEN", "DATABASE_URL", "ADMIN_IDS", "EMOJI_UPLOAD_DELAY", "REQUEST_TIMEOUT", "MAX_TOKENS"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, config.EmojiUploadDelay)
	assert.Equal(t, 300, config.MaxTokens)
	assert.Error(t, config.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
discord_token: file-token
genshin_uid: 1234
genshin_token: ltoken
database_url: postgres://localhost/genshin
admin_ids: ["1", "2"]
control_guild_id: "844307839488622662"
emoji_upload_delay: 2s
`), 0o644))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("ADMIN_IDS", "227541695225397250, 3")

	config, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "env-token", config.DiscordToken)
	assert.Equal(t, 1234, config.GenshinUID)
	assert.Equal(t, 2*time.Second, config.EmojiUploadDelay)
	assert.Equal(t, []string{"227541695225397250", "3"}, config.AdminIDs)
}

func TestLoadConfig_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENSHIN_UID", "abc")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "GENSHIN_UID")

	t.Setenv("GENSHIN_UID", "1")
	t.Setenv("EMOJI_UPLOAD_DELAY", "ten")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "EMOJI_UPLOAD_DELAY")
}

func TestConfig_IsAdmin(t *testing.T) {
	config := &Config{AdminIDs: []string{"42"}, ControlGuildID: "home"}

	assert.True(t, config.IsAdmin("42", "home"))
	assert.False(t, config.IsAdmin("42", "elsewhere"))
	assert.False(t, config.IsAdmin("7", "home"))
	assert.False(t, (&Config{AdminIDs: []string{"42"}}).IsAdmin("42", ""))
}
