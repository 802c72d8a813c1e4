package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCharacterIDAndTitleCase(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"Hu Tao", "hu-tao"},
		{"amber", "amber"},
		{"  Raiden   Shogun ", "raiden-shogun"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.id, characterID(tt.name))
	}

	assert.Equal(t, "Hu Tao", titleCase("hu-tao"))
	assert.Equal(t, "Amber", titleCase("amber"))
	assert.Equal(t, "", titleCase(""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Amber", "Hu Tao"}, splitList("Amber, Hu Tao,,"))
	assert.Nil(t, splitList(" "))
}

func TestStars(t *testing.T) {
	assert.Equal(t, ":star::star::star:", stars(3))
	assert.Equal(t, "", stars(0))
}

func TestRequester(t *testing.T) {
	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "Outrider", User: &discordgo.User{ID: "1", Username: "amber"}},
	}}
	assert.Equal(t, "1", requesterID(member))
	assert.Equal(t, "Outrider", requesterName(member))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "2", Username: "lumine", GlobalName: "Lumine"},
	}}
	assert.Equal(t, "2", requesterID(dm))
	assert.Equal(t, "Lumine", requesterName(dm))

	assert.Equal(t, "unknown", requesterName(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}

func TestCommandDefinitions(t *testing.T) {
	bot := &DiscordBot{}
	names := make(map[string]bool)
	for _, cmd := range bot.commandDefinitions() {
		names[cmd.Name] = true
	}
	for _, want := range []string{"stats", "characters", "search", "talents", "addemojis", "clearemojis"} {
		assert.True(t, names[want], want)
	}
	assert.False(t, names["chat"])

	bot.OpenAI = &OpenAIClient{}
	assert.Len(t, bot.commandDefinitions(), len(commands)+1)
}
