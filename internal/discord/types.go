package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sashabaranov/go-openai"

	"github.com/teyvat-tools/genshinbot/internal/emoji"
	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
	"github.com/teyvat-tools/genshinbot/internal/talents"
)

// DiscordBot represents a Discord bot
type DiscordBot struct {
	Session         *discordgo.Session
	Config          *Config
	Genshin         GenshinData
	DevData         MaterialData
	Emojis          EmojiStore
	OpenAI          *OpenAIClient
	BotUserID       string
	GuildID         string
	Commands        []*discordgo.ApplicationCommand
	CommandHandlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds Discord bot configuration
type Config struct {
	DiscordToken     string        `yaml:"discord_token"`
	GuildID          string        `yaml:"guild_id"`
	ErrorChannelID   string        `yaml:"error_channel_id"`
	GenshinUID       int           `yaml:"genshin_uid"`
	GenshinToken     string        `yaml:"genshin_token"`
	HoyolabURL       string        `yaml:"hoyolab_url"`
	GenshinDevURL    string        `yaml:"genshin_dev_endpoint"`
	DatabaseURL      string        `yaml:"database_url"`
	AdminIDs         []string      `yaml:"admin_ids"`
	ControlGuildID   string        `yaml:"control_guild_id"`
	EmojiUploadDelay time.Duration `yaml:"emoji_upload_delay"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	OpenAIToken      string        `yaml:"openai_api_key"`
	MaxTokens        int           `yaml:"max_tokens"`
	Temperature      float64       `yaml:"temperature"`
	LogLevel         string        `yaml:"log_level"`
}

// OpenAIClient wraps the OpenAI API client
type OpenAIClient struct {
	client      *openai.Client
	maxTokens   int
	temperature float32
}

// GenshinData is the game record source behind /stats, /characters and /search.
type GenshinData interface {
	Info(ctx context.Context, hoyolabUID int) (*hoyolab.PlayerInfo, error)
	RecordCard(ctx context.Context, hoyolabUID int) (*hoyolab.RecordCard, error)
	PlayerCharacters(ctx context.Context, uid int, names []string) (map[string]hoyolab.Character, error)
	Search(ctx context.Context, keyword string) ([]hoyolab.SearchResult, error)
}

// MaterialData is the static game data source behind /talents and emoji management.
type MaterialData interface {
	TalentMaterials(ctx context.Context, character string) (talents.Materials, error)
	Characters(ctx context.Context) ([]string, error)
	CharacterIconURL(id string) string
	ElementIconURL(element string) string
	Download(ctx context.Context, url string) ([]byte, error)
}

// EmojiStore persists uploaded emojis.
type EmojiStore interface {
	Migrate(ctx context.Context) error
	Add(ctx context.Context, name, category, url string, overwrite bool) (bool, error)
	Get(ctx context.Context, name string) (*emoji.Entry, error)
	ByCategory(ctx context.Context, category string) ([]emoji.Entry, error)
	SetDiscordID(ctx context.Context, name, discordID string) error
	DiscordID(ctx context.Context, name string) string
}

// emojiGuild is the part of *discordgo.Session that manages guild emojis.
type emojiGuild interface {
	GuildEmojiCreate(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error)
	GuildEmojiDelete(guildID, emojiID string, options ...discordgo.RequestOption) error
	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
}
