package discord

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmojiUploadDelay: 10 * time.Second,
		RequestTimeout:   30 * time.Second,
		MaxTokens:        300,
		Temperature:      0.7,
		LogLevel:         "info",
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.loadEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.DiscordToken, "DISCORD_TOKEN")
	setString(&c.GuildID, "GUILD_ID")
	setString(&c.ErrorChannelID, "DISCORD_BASE_ERROR_CHANNEL")
	setString(&c.GenshinToken, "GENSHIN_TOKEN")
	setString(&c.HoyolabURL, "HOYOLAB_URL")
	setString(&c.GenshinDevURL, "GENSHIN_DEV_ENDPOINT")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.ControlGuildID, "CONTROL_GUILD_ID")
	setString(&c.OpenAIToken, "OPENAI_API_KEY")
	setString(&c.LogLevel, "LOG_LEVEL")

	if ids := os.Getenv("ADMIN_IDS"); ids != "" {
		c.AdminIDs = nil
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.AdminIDs = append(c.AdminIDs, id)
			}
		}
	}

	if v := os.Getenv("GENSHIN_UID"); v != "" {
		uid, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GENSHIN_UID must be a number: %w", err)
		}
		c.GenshinUID = uid
	}
	if v := os.Getenv("EMOJI_UPLOAD_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EMOJI_UPLOAD_DELAY: %w", err)
		}
		c.EmojiUploadDelay = d
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("MAX_TOKENS"); v != "" {
		if mt, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = mt
		}
	}
	if v := os.Getenv("TEMPERATURE"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = temp
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that everything needed to run the bot is set.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.GenshinUID == 0 || c.GenshinToken == "" {
		return fmt.Errorf("GENSHIN_UID and GENSHIN_TOKEN are required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.EmojiUploadDelay < 0 {
		return fmt.Errorf("EMOJI_UPLOAD_DELAY must not be negative")
	}
	return nil
}

// IsAdmin reports whether userID may run admin commands in guildID.
func (c *Config) IsAdmin(userID, guildID string) bool {
	if c.ControlGuildID == "" || guildID != c.ControlGuildID {
		return false
	}
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
