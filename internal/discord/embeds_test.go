package discord

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
	"github.com/teyvat-tools/genshinbot/internal/talents"
)

func TestCreateTalentsEmbed(t *testing.T) {
	lines := []talents.Line{
		{Start: 6, End: 8, Category: talents.TalentBook, Name: "Philosophies of Freedom", Rarity: 4, Amount: 10},
		{Start: 6, End: 8, Category: talents.CommonAscensionMaterial, Name: "Lieutenant's Insignia", Rarity: 3, Amount: 10},
		{Start: 6, End: 8, Category: talents.BossMaterial, Name: "Shard of a Foul Legacy", Rarity: 5, Amount: 2},
	}

	embed := createTalentsEmbed("Tartaglia", 6, 8, lines, "Paimon")

	assert.Equal(t, "Tartaglia's Talent Materials (Lv. 6 → 8)", embed.Title)
	assert.Equal(t, colorGold, embed.Color)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Lv. 6 → 8: Philosophies of Freedom", embed.Fields[0].Name)
	assert.Equal(t, ":star::star::star::star:\n**Amount:** 10", embed.Fields[0].Value)
	assert.Equal(t, "Requested by Paimon • per talent", embed.Footer.Text)
	assert.Equal(t,
		"**Total**\n**10×** Philosophies of Freedom\n**10×** Lieutenant's Insignia\n**2×** Shard of a Foul Legacy",
		embed.Description)
}

func TestCreateTalentsEmbed_SumsRepeatedMaterials(t *testing.T) {
	lines := []talents.Line{
		{Start: 1, End: 2, Name: "Teachings of Freedom", Category: talents.TalentBook, Rarity: 2, Amount: 3},
		{Start: 2, End: 6, Name: "Teachings of Freedom", Category: talents.TalentBook, Rarity: 2, Amount: 4},
		{Start: 2, End: 6, Name: "Empty", Category: talents.Crown, Rarity: 5, Amount: 0},
	}

	embed := createTalentsEmbed("Amber", 1, 6, lines, "Paimon")

	assert.Len(t, embed.Fields, 2)
	assert.Equal(t, "**Total**\n**7×** Teachings of Freedom", embed.Description)
}

func TestCreateTalentsEmbed_Empty(t *testing.T) {
	embed := createTalentsEmbed("Amber", 9, 9, nil, "Paimon")
	assert.Empty(t, embed.Fields)
	assert.Equal(t, "No materials needed", embed.Description)
}

func TestCreateStatsEmbed(t *testing.T) {
	info := &hoyolab.PlayerInfo{
		Nickname:      "Traveler",
		AdventureRank: 55,
		Region:        "os_euro",
		Stats:         hoyolab.Stats{Achievements: 412, ActiveDays: 600, SpiralAbyss: "12-3"},
		Explorations: []hoyolab.Exploration{
			{Name: "Mondstadt", Percentage: 100},
			{Name: "Liyue", Percentage: 87.5},
		},
	}

	embed := createStatsEmbed(info, "Paimon")

	assert.Equal(t, "Traveler's Stats", embed.Title)
	require.Len(t, embed.Fields, 8)
	assert.Equal(t, "Adventure Rank", embed.Fields[1].Name)
	assert.Equal(t, "55", embed.Fields[1].Value)
	assert.Equal(t, "Spiral Abyss", embed.Fields[5].Name)
	assert.Equal(t, "12-3", embed.Fields[5].Value)
	assert.Equal(t, "87.5% explored", embed.Fields[7].Value)
	assert.Equal(t, "Requested by Paimon", embed.Footer.Text)
}

func TestCreateStatsEmbed_NoAbyss(t *testing.T) {
	embed := createStatsEmbed(&hoyolab.PlayerInfo{Nickname: "Lumine"}, "Paimon")
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Spiral Abyss", f.Name)
	}
}

func TestCreateCharactersEmbeds_SplitsFields(t *testing.T) {
	info := &hoyolab.PlayerInfo{Nickname: "Aether"}
	for n := range 30 {
		info.Characters = append(info.Characters, hoyolab.Character{Name: fmt.Sprintf("Character %d", n), Rarity: 4, Level: 80})
	}
	emojiFor := func(name string) string {
		if name == "Character 0" {
			return "<:c0:1>"
		}
		return ""
	}

	embeds := createCharactersEmbeds(info, "Paimon", emojiFor)

	require.Len(t, embeds, 2)
	assert.Equal(t, "Aether's Characters", embeds[0].Title)
	assert.Equal(t, "Aether's Characters (cont.)", embeds[1].Title)
	assert.Len(t, embeds[0].Fields, maxEmbedFields)
	assert.Len(t, embeds[1].Fields, 5)
	assert.Equal(t, "__<:c0:1>Character 0__", embeds[0].Fields[0].Name)
	assert.Nil(t, embeds[0].Footer)
	assert.Equal(t, "Requested by Paimon", embeds[1].Footer.Text)
}

func TestBatchEmbeds_CharacterListWithEmojis(t *testing.T) {
	info := &hoyolab.PlayerInfo{Nickname: "Aether"}
	for n := range 60 {
		info.Characters = append(info.Characters, hoyolab.Character{
			Name:       fmt.Sprintf("Character %02d", n),
			Element:    "Pyro",
			Rarity:     5,
			Level:      90,
			Friendship: 10,
		})
	}
	emojiFor := func(name string) string {
		return fmt.Sprintf("<:%s:123456789012345678>", characterID(name))
	}
	embeds := createCharactersEmbeds(info, "Paimon", emojiFor)
	require.Len(t, embeds, 3)
	require.Greater(t, embedLength(embeds[0])+embedLength(embeds[1]), maxEmbedChars)

	batches := batchEmbeds(embeds)
	require.Greater(t, len(batches), 1)

	total := 0
	for _, batch := range batches {
		size := 0
		for _, e := range batch {
			size += embedLength(e)
		}
		assert.LessOrEqual(t, size, maxEmbedChars)
		assert.LessOrEqual(t, len(batch), maxEmbedsPerMessage)
		total += len(batch)
	}
	assert.Equal(t, len(embeds), total)
}

func TestBatchEmbeds_CountLimit(t *testing.T) {
	var embeds []*discordgo.MessageEmbed
	for range 23 {
		embeds = append(embeds, &discordgo.MessageEmbed{Title: "small"})
	}

	batches := batchEmbeds(embeds)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 10)
	assert.Len(t, batches[2], 3)
	assert.Empty(t, batchEmbeds(nil))
}

func TestEmbedLength(t *testing.T) {
	e := &discordgo.MessageEmbed{
		Title:       "Title",
		Description: "→→",
		Footer:      &discordgo.MessageEmbedFooter{Text: "foot"},
		Fields:      []*discordgo.MessageEmbedField{{Name: "ab", Value: "cde"}},
	}
	assert.Equal(t, 5+2+4+5, embedLength(e))
}

func TestCreateCharactersEmbeds_NoCharacters(t *testing.T) {
	embeds := createCharactersEmbeds(&hoyolab.PlayerInfo{Nickname: "Aether"}, "Paimon", func(string) string { return "" })
	require.Len(t, embeds, 1)
	assert.Empty(t, embeds[0].Fields)
	assert.NotNil(t, embeds[0].Footer)
}

func TestCreatePlayerCharacterEmbeds(t *testing.T) {
	gladiator := hoyolab.ArtifactSet{
		Name: "Gladiator's Finale",
		Effects: []hoyolab.SetEffect{
			{Pieces: 2, Effect: "ATK +18%."},
			{Pieces: 4, Effect: "Normal Attack DMG +35%."},
		},
	}
	noblesse := hoyolab.ArtifactSet{
		Name:    "Noblesse Oblige",
		Effects: []hoyolab.SetEffect{{Pieces: 2, Effect: "Elemental Burst DMG +20%."}},
	}
	c := hoyolab.Character{
		Name:   "Keqing",
		Rarity: 5,
		Level:  90,
		Weapon: &hoyolab.Weapon{Name: "Mistsplitter Reforged", Rarity: 5, Level: 90, Refinement: 1},
		Artifacts: []hoyolab.Artifact{
			{Name: "Gladiator's Nostalgia", PosName: "flower of life", Rarity: 5, Level: 20, Set: gladiator},
			{Name: "Gladiator's Destiny", PosName: "plume of death", Rarity: 5, Level: 20, Set: gladiator},
			{Name: "Royal Pocket Watch", PosName: "sands of eon", Rarity: 5, Level: 20, Set: noblesse},
		},
	}

	embeds := createPlayerCharacterEmbeds("Aether", c, "Paimon")
	require.Len(t, embeds, 3)
	assert.Equal(t, "Aether's Keqing", embeds[0].Title)
	assert.Equal(t, "__Weapon:__ Mistsplitter Reforged", embeds[1].Title)

	artifacts := embeds[2]
	require.Len(t, artifacts.Fields, 5)
	assert.Equal(t, "__Flower Of Life:__ Gladiator's Nostalgia", artifacts.Fields[0].Name)
	assert.True(t, strings.HasSuffix(artifacts.Fields[3].Name, "Artifact Set Bonus"))
	assert.Equal(t, "__2-Piece Set:__ Gladiator's Finale", artifacts.Fields[4].Name)
	assert.Equal(t, "ATK +18%.", artifacts.Fields[4].Value)
}

func TestCreatePlayerCharacterEmbeds_NoGear(t *testing.T) {
	embeds := createPlayerCharacterEmbeds("Aether", hoyolab.Character{Name: "Amber"}, "Paimon")
	assert.Len(t, embeds, 1)
}

func TestCreateSearchEmbed(t *testing.T) {
	embed := createSearchEmbed("paimon", []hoyolab.SearchResult{
		{UID: "1234", Nickname: "Paimon"},
		{UID: "5678", Nickname: "PaimonFan"},
	}, "Aether")
	assert.Equal(t, "**Paimon** • UID `1234`\n**PaimonFan** • UID `5678`", embed.Description)

	empty := createSearchEmbed("nobody", nil, "Aether")
	assert.Equal(t, "No users found", empty.Description)
}

func TestChunkString(t *testing.T) {
	assert.Equal(t, []string{"short"}, chunkString("short", 10))

	chunks := chunkString("aaaa\nbbbb\ncccc", 9)
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)

	chunks = chunkString(strings.Repeat("x", 25), 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
}

func TestChunkString_KeepsRunesWhole(t *testing.T) {
	line := strings.Repeat("é", 12)

	chunks := chunkString(line, 5)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c), "%q", c)
		assert.LessOrEqual(t, len(c), 5)
	}
	assert.Equal(t, line, strings.Join(chunks, ""))
}

func TestCreateChatEmbeds(t *testing.T) {
	single := createChatEmbeds("Ad astra abyssosque!")
	require.Len(t, single, 1)
	assert.Equal(t, "Paimon says", single[0].Title)
	assert.Equal(t, "Powered by OpenAI", single[0].Footer.Text)

	long := strings.Repeat(strings.Repeat("a", 99)+"\n", 50)
	multi := createChatEmbeds(long)
	require.Len(t, multi, 2)
	assert.Equal(t, "Paimon says (Part 1 of 2)", multi[0].Title)
	assert.Nil(t, multi[0].Footer)
	assert.NotNil(t, multi[1].Footer)
}
