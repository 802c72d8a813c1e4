package discord

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Embed colours
const (
	colorInfo  = 0x5865f2
	colorGold  = 0xffd700
	colorError = 0xff0000
)

var userOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "user",
	Description: "HoYoLAB community UID or nickname",
	Required:    true,
}

// Command definitions
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "stats",
		Description: "Fetches general stats about a player",
		Options:     []*discordgo.ApplicationCommandOption{userOption},
	},
	{
		Name:        "characters",
		Description: "Fetches all the player's characters or details about specific characters",
		Options: []*discordgo.ApplicationCommandOption{
			userOption,
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "names",
				Description: "Character names separated by commas (e.g. 'Amber, Hu Tao')",
				Required:    false,
			},
		},
	},
	{
		Name:        "search",
		Description: "Searches for a player based on their community nickname",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "HoYoLAB nickname",
				Required:    true,
			},
		},
	},
	{
		Name:        "talents",
		Description: "Materials needed to level a character's talent",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "character",
				Description: "Character name (e.g. 'Hu Tao')",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "from",
				Description: "Current talent level (1-9, default: 1)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "to",
				Description: "Desired talent level (2-10, default: 10)",
				Required:    false,
			},
		},
	},
	{Name: "serverid", Description: "Admin: show this guild's ID"},
	{Name: "makeemojitable", Description: "Admin: create the emoji table"},
	{Name: "getemojis", Description: "Admin: record every character icon in the emoji table"},
	{
		Name:        "addemojis",
		Description: "Admin: upload emojis from the emoji table",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Category to upload (default: character)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "names",
				Description: "Specific entries separated by commas, overrides category",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "reload",
				Description: "Upload entries that already have an emoji again",
				Required:    false,
			},
		},
	},
	{Name: "clearemojis", Description: "Admin: delete every custom emoji of this guild"},
}

var chatCommand = &discordgo.ApplicationCommand{
	Name:        "chat",
	Description: "Ask the Genshin assistant a question",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "prompt",
			Description: "Your question",
			Required:    true,
		},
	},
}

// NewDiscordBot creates a new Discord bot with the provided configuration
func NewDiscordBot(config *Config, genshin GenshinData, devData MaterialData, emojis EmojiStore) (*DiscordBot, error) {
	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bot := &DiscordBot{
		Session:         session,
		Config:          config,
		Genshin:         genshin,
		DevData:         devData,
		Emojis:          emojis,
		GuildID:         config.GuildID,
		CommandHandlers: make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)),
		ctx:             ctx,
		cancel:          cancel,
	}

	// Set up command handlers
	bot.CommandHandlers["stats"] = bot.handleStatsCommand
	bot.CommandHandlers["characters"] = bot.handleCharactersCommand
	bot.CommandHandlers["search"] = bot.handleSearchCommand
	bot.CommandHandlers["talents"] = bot.handleTalentsCommand
	bot.CommandHandlers["serverid"] = bot.adminOnly(bot.handleServerIDCommand)
	bot.CommandHandlers["makeemojitable"] = bot.adminOnly(bot.handleMakeEmojiTableCommand)
	bot.CommandHandlers["getemojis"] = bot.adminOnly(bot.handleGetEmojisCommand)
	bot.CommandHandlers["addemojis"] = bot.adminOnly(bot.handleAddEmojisCommand)
	bot.CommandHandlers["clearemojis"] = bot.adminOnly(bot.handleClearEmojisCommand)

	if config.OpenAIToken != "" {
		bot.OpenAI = NewOpenAIClient(config.OpenAIToken, config.MaxTokens, config.Temperature)
		bot.CommandHandlers["chat"] = bot.handleChatCommand
	}

	return bot, nil
}

// Start starts the Discord bot
func (b *DiscordBot) Start() error {
	// Get bot user ID
	user, err := b.Session.User("@me")
	if err != nil {
		return fmt.Errorf("error getting bot user: %w", err)
	}
	b.BotUserID = user.ID

	b.Session.AddHandler(b.readyHandler)
	b.Session.AddHandler(b.interactionHandler)

	// Open a websocket connection to Discord
	err = b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}

	registeredCommands, err := b.registerCommands()
	if err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}
	b.Commands = registeredCommands

	log.Info("slash commands registered", "count", len(registeredCommands), "guild", b.GuildID)
	return nil
}

// Stop cancels running work, removes the registered commands and closes the session
func (b *DiscordBot) Stop() error {
	b.cancel()

	log.Info("removing commands", "count", len(b.Commands))
	for _, cmd := range b.Commands {
		err := b.Session.ApplicationCommandDelete(b.Session.State.User.ID, b.GuildID, cmd.ID)
		if err != nil {
			log.Error("removing command", "command", cmd.Name, "err", err)
		}
	}

	return b.Session.Close()
}

// commandDefinitions returns the commands the bot should register.
func (b *DiscordBot) commandDefinitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(commands)+1)
	defs = append(defs, commands...)
	if b.OpenAI != nil {
		defs = append(defs, chatCommand)
	}
	return defs
}

// registerCommands registers the defined slash commands
func (b *DiscordBot) registerCommands() ([]*discordgo.ApplicationCommand, error) {
	defs := b.commandDefinitions()
	registeredCommands := make([]*discordgo.ApplicationCommand, len(defs))

	for i, cmd := range defs {
		registered, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.GuildID, cmd)
		if err != nil {
			return nil, fmt.Errorf("error creating command '%s': %w", cmd.Name, err)
		}
		registeredCommands[i] = registered
	}

	return registeredCommands, nil
}

func (b *DiscordBot) readyHandler(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateGameStatus(0, "Genshin Impact"); err != nil {
		log.Warn("setting presence", "err", err)
	}
	log.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
}

// interactionHandler handles Discord interaction events
func (b *DiscordBot) interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name
	if handler, ok := b.CommandHandlers[commandName]; ok {
		log.Debug("command", "name", commandName, "user", requesterID(i), "guild", i.GuildID)
		handler(s, i)
	}
}

// requestContext returns a context bounded by the configured request timeout.
func (b *DiscordBot) requestContext() (context.Context, context.CancelFunc) {
	timeout := b.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(b.ctx, timeout)
}

// deferResponse acknowledges the interaction so the handler may take longer than 3 seconds.
func (b *DiscordBot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Error("acknowledging interaction", "err", err)
		return false
	}
	return true
}

// sendContent replaces the deferred response with plain text.
func (b *DiscordBot) sendContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		log.Error("editing interaction response", "err", err)
	}
}

// Discord message limits
const (
	maxEmbedsPerMessage = 10
	maxEmbedChars       = 6000
)

// embedLength counts the characters Discord charges against a message's
// embed total.
func embedLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}

// batchEmbeds groups embeds into messages holding at most ten embeds and
// 6000 characters each.
func batchEmbeds(embeds []*discordgo.MessageEmbed) [][]*discordgo.MessageEmbed {
	var batches [][]*discordgo.MessageEmbed
	var current []*discordgo.MessageEmbed
	size := 0
	for _, e := range embeds {
		n := embedLength(e)
		if len(current) > 0 && (len(current) == maxEmbedsPerMessage || size+n > maxEmbedChars) {
			batches = append(batches, current)
			current, size = nil, 0
		}
		current = append(current, e)
		size += n
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// sendEmbeds replaces the deferred response with the first batch of embeds
// and sends the rest as follow-ups.
func (b *DiscordBot) sendEmbeds(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed) {
	batches := batchEmbeds(embeds)
	if len(batches) == 0 {
		return
	}

	first := batches[0]
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &first,
	}); err != nil {
		log.Error("editing interaction response", "err", err)
		return
	}
	b.sendFollowups(s, i, batches[1:])
}

// sendFollowups sends each batch as its own follow-up message.
func (b *DiscordBot) sendFollowups(s *discordgo.Session, i *discordgo.InteractionCreate, batches [][]*discordgo.MessageEmbed) {
	for _, batch := range batches {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: batch,
		}); err != nil {
			log.Error("sending follow-up", "err", err)
			return
		}
	}
}

// sendError sends an error embed
func (b *DiscordBot) sendError(s *discordgo.Session, i *discordgo.InteractionCreate, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorError,
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Error("editing error response", "err", err)
	}
}

// reportError logs a failed command and forwards it to the error channel.
func (b *DiscordBot) reportError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	command := i.ApplicationCommandData().Name
	log.Error("command failed", "command", command, "user", requesterID(i), "err", err)

	if b.Config.ErrorChannelID == "" {
		return
	}
	msg := fmt.Sprintf("`/%s` by <@%s> failed: %v", command, requesterID(i), err)
	if _, sendErr := s.ChannelMessageSend(b.Config.ErrorChannelID, msg); sendErr != nil {
		log.Error("reporting to error channel", "err", sendErr)
	}
}
