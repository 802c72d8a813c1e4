package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
)

// handleStatsCommand handles the /stats command
func (b *DiscordBot) handleStatsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	lookup, err := b.identify(ctx, optionMap(i)["user"].StringValue())
	if err != nil {
		b.lookupFailed(s, i, 0, err)
		return
	}

	info, err := b.Genshin.Info(ctx, lookup.UID)
	if err != nil || info == nil {
		b.lookupFailed(s, i, lookup.UID, err)
		return
	}

	content := lookup.withNotice("")
	embeds := []*discordgo.MessageEmbed{createStatsEmbed(info, requesterName(i))}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	}); err != nil {
		b.reportError(s, i, err)
	}
}

// createStatsEmbed formats a player's headline stats
func createStatsEmbed(info *hoyolab.PlayerInfo, requester string) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Nickname", Value: info.Nickname, Inline: true},
		{Name: "Adventure Rank", Value: strconv.Itoa(info.AdventureRank), Inline: true},
		{Name: "Region", Value: info.Region, Inline: false},
		{Name: "Achievements", Value: strconv.Itoa(info.Stats.Achievements), Inline: true},
		{Name: "Active Days", Value: strconv.Itoa(info.Stats.ActiveDays), Inline: true},
	}
	if info.Stats.SpiralAbyss != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Spiral Abyss", Value: info.Stats.SpiralAbyss, Inline: true})
	}
	for _, e := range info.Explorations {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   e.Name,
			Value:  fmt.Sprintf("%.1f%% explored", e.Percentage),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s's Stats", info.Nickname),
		Color:  colorInfo,
		Fields: fields,
		Footer: requestedBy(requester),
	}
}
