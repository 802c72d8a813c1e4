package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
)

const (
	maxEmbedFields  = 25
	separatorLine   = "----------------------------------------------"
	characterColors = colorGold
)

// handleCharactersCommand handles the /characters command
func (b *DiscordBot) handleCharactersCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	options := optionMap(i)
	lookup, err := b.identify(ctx, options["user"].StringValue())
	if err != nil {
		b.lookupFailed(s, i, 0, err)
		return
	}

	var names []string
	if opt, ok := options["names"]; ok {
		names = splitList(opt.StringValue())
	}
	requester := requesterName(i)

	if len(names) == 0 {
		info, err := b.Genshin.Info(ctx, lookup.UID)
		if err != nil || info == nil {
			b.lookupFailed(s, i, lookup.UID, err)
			return
		}
		b.sendWithNotice(s, i, lookup, createCharactersEmbeds(info, requester, b.emojiLookup(ctx)))
		return
	}

	card, err := b.Genshin.RecordCard(ctx, lookup.UID)
	if err != nil || card == nil {
		b.lookupFailed(s, i, lookup.UID, err)
		return
	}
	uid, err := strconv.Atoi(card.GameRoleID)
	if err != nil {
		b.lookupFailed(s, i, lookup.UID, err)
		return
	}

	characters, err := b.Genshin.PlayerCharacters(ctx, uid, names)
	if err != nil {
		b.lookupFailed(s, i, lookup.UID, err)
		return
	}

	var embeds []*discordgo.MessageEmbed
	var missing []string
	for _, name := range names {
		character, ok := characters[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		embeds = append(embeds, createPlayerCharacterEmbeds(card.Nickname, character, requester)...)
	}
	if len(embeds) == 0 {
		b.sendError(s, i, "Character Not Found", fmt.Sprintf("%s does not own %s", card.Nickname, strings.Join(names, ", ")))
		return
	}
	if len(missing) > 0 {
		lookup.Notice = lookup.withNotice(fmt.Sprintf("Not owned: %s", strings.Join(missing, ", ")))
	}
	b.sendWithNotice(s, i, lookup, embeds)
}

func (b *DiscordBot) sendWithNotice(s *discordgo.Session, i *discordgo.InteractionCreate, lookup *PlayerLookup, embeds []*discordgo.MessageEmbed) {
	if lookup.Notice != "" {
		b.sendContent(s, i, lookup.Notice)
		b.sendFollowups(s, i, batchEmbeds(embeds))
		return
	}
	b.sendEmbeds(s, i, embeds)
}

// emojiLookup returns a function resolving character names to uploaded emojis.
func (b *DiscordBot) emojiLookup(ctx context.Context) func(string) string {
	if b.Emojis == nil {
		return func(string) string { return "" }
	}
	return func(name string) string {
		return b.Emojis.DiscordID(ctx, characterID(name))
	}
}

// createCharactersEmbeds lists every character of a player, splitting the list
// over several embeds when it exceeds Discord's field limit.
func createCharactersEmbeds(info *hoyolab.PlayerInfo, requester string, emojiFor func(string) string) []*discordgo.MessageEmbed {
	title := fmt.Sprintf("%s's Characters", info.Nickname)

	var embeds []*discordgo.MessageEmbed
	for start := 0; start < len(info.Characters) || start == 0; start += maxEmbedFields {
		end := min(start+maxEmbedFields, len(info.Characters))
		embed := &discordgo.MessageEmbed{Title: title, Color: characterColors}
		if start > 0 {
			embed.Title = title + " (cont.)"
		}

		for _, c := range info.Characters[start:end] {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("__%s%s__", emojiFor(c.Name), c.Name),
				Value:  fmt.Sprintf("%s%s\n**Level**: %d\n**Friendship**: %d", emojiFor(c.Element), stars(c.Rarity), c.Level, c.Friendship),
				Inline: true,
			})
		}
		embeds = append(embeds, embed)
		if end >= len(info.Characters) {
			break
		}
	}

	embeds[len(embeds)-1].Footer = requestedBy(requester)
	return embeds
}

// createPlayerCharacterEmbeds details one character: the character itself, its
// weapon and its artifacts.
func createPlayerCharacterEmbeds(nick string, c hoyolab.Character, requester string) []*discordgo.MessageEmbed {
	embeds := []*discordgo.MessageEmbed{createCharacterEmbed(nick, c, requester)}
	if c.Weapon != nil {
		embeds = append(embeds, createWeaponEmbed(c.Weapon, requester))
	}
	if len(c.Artifacts) > 0 {
		embeds = append(embeds, createArtifactsEmbed(c.Artifacts, requester))
	}
	return embeds
}

func createCharacterEmbed(nick string, c hoyolab.Character, requester string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's %s", nick, c.Name),
		Description: fmt.Sprintf("%s\n**Level**: %d\n**Friendship**: %d\n**Constellation**: %d",
			stars(c.Rarity), c.Level, c.Friendship, c.Constellation),
		Color:  characterColors,
		Footer: requestedBy(requester),
	}
	if c.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Icon}
	}
	return embed
}

func createWeaponEmbed(w *hoyolab.Weapon, requester string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("__Weapon:__ %s", w.Name),
		Description: fmt.Sprintf("%s\n**Level:** %d\n**Ascension:** %d\n**Refinement:** %d",
			stars(w.Rarity), w.Level, w.Ascension, w.Refinement),
		Color:  characterColors,
		Footer: requestedBy(requester),
	}
	if w.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: w.Icon}
	}
	return embed
}

// createArtifactsEmbed lists equipped artifacts followed by the set bonuses
// that are active for the equipped piece counts.
func createArtifactsEmbed(artifacts []hoyolab.Artifact, requester string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       separatorLine + "\nArtifacts",
		Description: "**" + separatorLine + "**",
		Color:       characterColors,
		Footer:      requestedBy(requester),
	}

	var setOrder []string
	setCount := make(map[string]int)
	setEffects := make(map[string][]hoyolab.SetEffect)
	for _, a := range artifacts {
		name := a.Set.Name
		if _, ok := setCount[name]; !ok {
			setOrder = append(setOrder, name)
			setEffects[name] = a.Set.Effects
		}
		setCount[name]++

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("__%s:__ %s", titleCase(a.PosName), a.Name),
			Value:  fmt.Sprintf("%s\n**Set:** %s\n**Level:** %d", stars(a.Rarity), name, a.Level),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   separatorLine + "\nArtifact Set Bonus",
		Value:  "**" + separatorLine + "**",
		Inline: false,
	})
	for _, name := range setOrder {
		for _, effect := range setEffects[name] {
			if setCount[name] >= effect.Pieces {
				embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
					Name:   fmt.Sprintf("__%d-Piece Set:__ %s", effect.Pieces, name),
					Value:  effect.Effect,
					Inline: true,
				})
			}
		}
	}
	return embed
}
