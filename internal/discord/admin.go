package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/teyvat-tools/genshinbot/internal/emoji"
)

const (
	characterCategory = "character"
	elementCategory   = "element"
)

var elements = []string{"anemo", "cryo", "dendro", "electro", "geo", "hydro", "pyro"}

// adminOnly wraps a handler so it only runs for configured admins in the
// control guild.
func (b *DiscordBot) adminOnly(handler func(s *discordgo.Session, i *discordgo.InteractionCreate)) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if !b.Config.IsAdmin(requesterID(i), i.GuildID) {
			if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "This command is restricted to bot admins.",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}); err != nil {
				log.Error("responding to interaction", "err", err)
			}
			return
		}
		handler(s, i)
	}
}

func (b *DiscordBot) handleServerIDCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: "Guild ID: " + i.GuildID},
	}); err != nil {
		log.Error("responding to interaction", "err", err)
	}
}

func (b *DiscordBot) handleMakeEmojiTableCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	if err := b.Emojis.Migrate(ctx); err != nil {
		b.reportError(s, i, err)
		b.sendError(s, i, "Database Error", "Could not create the emoji table")
		return
	}
	b.sendContent(s, i, "Created emoji table")
}

func (b *DiscordBot) handleGetEmojisCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	added, err := b.uploader(s, nil).Collect(ctx, true)
	if err != nil {
		b.reportError(s, i, err)
		b.sendError(s, i, "Request Failed", "Could not collect character icons")
		return
	}
	b.sendContent(s, i, fmt.Sprintf("Obtained %d emojis:\n%s", len(added), strings.Join(added, ", ")))
}

func (b *DiscordBot) handleAddEmojisCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}

	options := optionMap(i)
	category := characterCategory
	if opt, ok := options["category"]; ok && opt.StringValue() != "" {
		category = opt.StringValue()
	}
	var names []string
	if opt, ok := options["names"]; ok {
		names = splitList(opt.StringValue())
	}
	reload := false
	if opt, ok := options["reload"]; ok {
		reload = opt.BoolValue()
	}

	b.sendContent(s, i, "Starting Upload")

	// Uploads are throttled and may outlive the interaction token, so progress
	// goes to the channel.
	progress := func(msg string) {
		if _, err := s.ChannelMessageSend(i.ChannelID, msg); err != nil {
			log.Warn("sending upload progress", "err", err)
		}
	}
	up := b.uploader(s, progress)

	ctx := b.ctx
	entries, err := up.Entries(ctx, category, names)
	if err != nil {
		b.reportError(s, i, err)
		progress("Could not read the emoji table")
		return
	}

	added, err := up.Upload(ctx, i.GuildID, entries, reload)
	if err != nil {
		b.reportError(s, i, err)
	}
	progress(fmt.Sprintf("Created %d emojis.", added))
}

func (b *DiscordBot) handleClearEmojisCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}

	deleted, err := b.uploader(s, nil).Clear(b.ctx, i.GuildID)
	if err != nil {
		b.reportError(s, i, err)
	}
	if _, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("Deleted %d emojis.", deleted)); err != nil {
		log.Warn("sending clear result", "err", err)
	}
	b.sendContent(s, i, "Done")
}

func (b *DiscordBot) uploader(guild emojiGuild, progress func(string)) *emojiUploader {
	if progress == nil {
		progress = func(string) {}
	}
	return &emojiUploader{
		guild:    guild,
		store:    b.Emojis,
		data:     b.DevData,
		delay:    b.Config.EmojiUploadDelay,
		progress: progress,
	}
}

// emojiUploader moves icons between genshin.dev, the emoji table and a guild.
type emojiUploader struct {
	guild    emojiGuild
	store    EmojiStore
	data     MaterialData
	delay    time.Duration
	progress func(string)
}

// Collect records the icon of every character and element in the emoji table
// and returns the names that were added.
func (u *emojiUploader) Collect(ctx context.Context, overwrite bool) ([]string, error) {
	ids, err := u.data.Characters(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	var added []string
	for _, id := range ids {
		ok, err := u.store.Add(ctx, id, characterCategory, u.data.CharacterIconURL(id), overwrite)
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, id)
		}
	}
	for _, element := range elements {
		ok, err := u.store.Add(ctx, element, elementCategory, u.data.ElementIconURL(element), overwrite)
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, element)
		}
	}
	return added, nil
}

// Entries returns the named entries, or the whole category when names is empty.
func (u *emojiUploader) Entries(ctx context.Context, category string, names []string) ([]emoji.Entry, error) {
	if len(names) == 0 {
		return u.store.ByCategory(ctx, category)
	}

	entries := make([]emoji.Entry, 0, len(names))
	for _, name := range names {
		entry, err := u.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			u.progress(fmt.Sprintf("%s: not in the emoji table", name))
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Upload creates a guild emoji for every entry and records it. Entries that
// already have an emoji are skipped unless reload is set. Uploads are spaced
// by the configured delay.
func (u *emojiUploader) Upload(ctx context.Context, guildID string, entries []emoji.Entry, reload bool) (int, error) {
	added, attempts := 0, 0
	for _, entry := range entries {
		if entry.DiscordID != "" && !reload {
			continue
		}
		if attempts > 0 {
			if err := wait(ctx, u.delay); err != nil {
				return added, err
			}
		}
		attempts++

		rendered, err := u.uploadOne(ctx, guildID, entry)
		if err != nil {
			log.Error("uploading emoji", "name", entry.Name, "err", err)
			u.progress(fmt.Sprintf("%s: %v", entry.Name, err))
			continue
		}
		added++
		u.progress(fmt.Sprintf("%s: %s", entry.Name, rendered))
	}
	return added, nil
}

func (u *emojiUploader) uploadOne(ctx context.Context, guildID string, entry emoji.Entry) (string, error) {
	raw, err := u.data.Download(ctx, entry.URL)
	if err != nil {
		return "", fmt.Errorf("downloading icon: %w", err)
	}
	pngData, err := emoji.ConvertToPNG(raw)
	if err != nil {
		return "", err
	}

	created, err := u.guild.GuildEmojiCreate(guildID, &discordgo.EmojiParams{
		Name:  emoji.EmojiName(entry.Name),
		Image: emoji.DataURI(pngData),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("creating guild emoji: %w", err)
	}

	rendered := fmt.Sprintf("<:%s:%s>", created.Name, created.ID)
	if err := u.store.SetDiscordID(ctx, entry.Name, rendered); err != nil {
		return "", err
	}
	return rendered, nil
}

// Clear deletes every custom emoji of a guild and returns how many were deleted.
func (u *emojiUploader) Clear(ctx context.Context, guildID string) (int, error) {
	emojis, err := u.guild.GuildEmojis(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("listing guild emojis: %w", err)
	}

	deleted := 0
	for _, e := range emojis {
		if deleted > 0 {
			if err := wait(ctx, u.delay); err != nil {
				return deleted, err
			}
		}
		if err := u.guild.GuildEmojiDelete(guildID, e.ID, discordgo.WithContext(ctx)); err != nil {
			return deleted, fmt.Errorf("deleting emoji %s: %w", e.Name, err)
		}
		deleted++
	}
	return deleted, nil
}

// wait sleeps for d unless ctx is done first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
