package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/genshindev"
	"github.com/teyvat-tools/genshinbot/internal/talents"
)

// handleTalentsCommand handles the /talents command
func (b *DiscordBot) handleTalentsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	options := optionMap(i)
	name := options["character"].StringValue()
	current, desired := talents.MinLevel, talents.MaxLevel
	if opt, ok := options["from"]; ok {
		current = int(opt.IntValue())
	}
	if opt, ok := options["to"]; ok {
		desired = int(opt.IntValue())
	}

	if current < talents.MinLevel || desired > talents.MaxLevel || current >= desired {
		b.sendError(s, i, "Invalid Levels",
			fmt.Sprintf("Talent levels must satisfy %d ≤ from < to ≤ %d", talents.MinLevel, talents.MaxLevel))
		return
	}

	id := characterID(name)
	materials, err := b.DevData.TalentMaterials(ctx, id)
	if err != nil {
		var reqErr *genshindev.RequestError
		switch {
		case errors.Is(err, genshindev.ErrCharacterNotFound):
			b.sendError(s, i, "Character Not Found", fmt.Sprintf("Could not find talent materials for `%s`", name))
		case errors.As(err, &reqErr):
			b.reportError(s, i, err)
			b.sendError(s, i, "Request Failed", fmt.Sprintf("genshin.dev answered with status %d", reqErr.Status))
		default:
			b.reportError(s, i, err)
			b.sendError(s, i, "Request Failed", "Error fetching talent materials")
		}
		return
	}

	lines, err := talents.Plan(current, desired, materials)
	if err != nil {
		b.reportError(s, i, err)
		b.sendError(s, i, "Invalid Levels", err.Error())
		return
	}

	embed := createTalentsEmbed(titleCase(id), current, desired, lines, requesterName(i))
	b.sendEmbeds(s, i, []*discordgo.MessageEmbed{embed})
}

// createTalentsEmbed renders one field per material requirement and a
// description with the totals.
func createTalentsEmbed(character string, current, desired int, lines []talents.Line, requester string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s's Talent Materials (Lv. %d → %d)", character, current, desired),
		Color:  colorGold,
		Footer: requestedBy(requester + " • per talent"),
	}

	for _, l := range lines {
		if l.Amount == 0 {
			continue
		}
		if len(embed.Fields) == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Lv. %d → %d: %s", l.Start, l.End, l.Name),
			Value:  fmt.Sprintf("%s\n**Amount:** %d", stars(l.Rarity), l.Amount),
			Inline: true,
		})
	}

	totals := talents.Totals(lines)
	if len(totals) == 0 {
		embed.Description = "No materials needed"
		return embed
	}
	summary := make([]string, 0, len(totals))
	for _, t := range totals {
		summary = append(summary, fmt.Sprintf("**%d×** %s", t.Amount, t.Name))
	}
	embed.Description = "**Total**\n" + strings.Join(summary, "\n")
	return embed
}
