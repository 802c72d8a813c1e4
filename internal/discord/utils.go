package discord

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// SetupCloseHandler creates a handler that will catch SIGINT and SIGTERM signals
// and gracefully close the application
func SetupCloseHandler(cleanupFunc func() error) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("shutting down")
		if err := cleanupFunc(); err != nil {
			log.Error("cleanup failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
}

// requesterID returns the ID of the user who ran the interaction.
func requesterID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// requesterName returns the display name of the user who ran the interaction.
func requesterName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			return userDisplayName(i.Member.User)
		}
	}
	if i.User != nil {
		return userDisplayName(i.User)
	}
	return "unknown"
}

func userDisplayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func requestedBy(name string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: "Requested by " + name}
}

// stars renders a rarity as star emojis.
func stars(rarity int) string {
	if rarity <= 0 {
		return ""
	}
	return strings.Repeat(":star:", rarity)
}

// splitList splits a comma separated option value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// optionMap indexes command options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// characterID turns a display name into a genshin.dev id ("Hu Tao" -> "hu-tao").
func characterID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// titleCase turns a genshin.dev id back into a display name ("hu-tao" -> "Hu Tao").
func titleCase(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
