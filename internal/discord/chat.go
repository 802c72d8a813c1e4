package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// maxDescription stays under Discord's 4096 character embed description limit.
const maxDescription = 4000

// handleChatCommand handles the /chat command
func (b *DiscordBot) handleChatCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	prompt := optionMap(i)["prompt"].StringValue()
	response, err := b.OpenAI.GenerateResponse(ctx, prompt)
	if err != nil {
		b.reportError(s, i, err)
		b.sendError(s, i, "AI Error", "Sorry, I couldn't process your request. Please try again later.")
		return
	}

	b.sendEmbeds(s, i, createChatEmbeds(response))
}

// createChatEmbeds splits a response over as many embeds as needed
func createChatEmbeds(response string) []*discordgo.MessageEmbed {
	chunks := chunkString(response, maxDescription)

	embeds := make([]*discordgo.MessageEmbed, 0, len(chunks))
	for i, chunk := range chunks {
		embed := &discordgo.MessageEmbed{
			Title:       "Paimon says",
			Description: chunk,
			Color:       colorInfo,
		}
		if len(chunks) > 1 {
			embed.Title = fmt.Sprintf("Paimon says (Part %d of %d)", i+1, len(chunks))
		}

		// Add footer only to the last embed
		if i == len(chunks)-1 {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "Powered by OpenAI"}
			embed.Timestamp = time.Now().Format(time.RFC3339)
		}
		embeds = append(embeds, embed)
	}
	return embeds
}

// chunkString splits a string into parts of at most chunkSize bytes, preferring
// line breaks
func chunkString(s string, chunkSize int) []string {
	if len(s) <= chunkSize {
		return []string{s}
	}

	var chunks []string
	currentChunk := ""

	for _, line := range strings.Split(s, "\n") {
		if len(currentChunk)+len(line)+1 <= chunkSize {
			if currentChunk == "" {
				currentChunk = line
			} else {
				currentChunk += "\n" + line
			}
			continue
		}

		if currentChunk != "" {
			chunks = append(chunks, currentChunk)
			currentChunk = ""
		}

		// The line itself is too long, split it on rune boundaries
		for len(line) > chunkSize {
			cut := chunkSize
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = chunkSize
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		currentChunk = line
	}

	if currentChunk != "" {
		chunks = append(chunks, currentChunk)
	}
	return chunks
}
