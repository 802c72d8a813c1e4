package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
)

// handleSearchCommand handles the /search command
func (b *DiscordBot) handleSearchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	name := optionMap(i)["name"].StringValue()
	results, err := b.Genshin.Search(ctx, name)
	if err != nil {
		b.reportError(s, i, err)
		b.sendError(s, i, "API Error", "Error searching HoYoLAB")
		return
	}

	b.sendEmbeds(s, i, []*discordgo.MessageEmbed{createSearchEmbed(name, results, requesterName(i))})
}

func createSearchEmbed(name string, results []hoyolab.SearchResult, requester string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Users matching %q", name),
		Color:  colorInfo,
		Footer: requestedBy(requester),
	}
	if len(results) == 0 {
		embed.Description = "No users found"
		return embed
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("**%s** • UID `%s`", r.Nickname, r.UID))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
