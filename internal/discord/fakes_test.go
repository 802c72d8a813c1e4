package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/emoji"
	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
	"github.com/teyvat-tools/genshinbot/internal/talents"
)

type fakeGenshin struct {
	results []hoyolab.SearchResult
	err     error
	queries []string
}

func (f *fakeGenshin) Info(context.Context, int) (*hoyolab.PlayerInfo, error) {
	return nil, f.err
}

func (f *fakeGenshin) RecordCard(context.Context, int) (*hoyolab.RecordCard, error) {
	return nil, f.err
}

func (f *fakeGenshin) PlayerCharacters(context.Context, int, []string) (map[string]hoyolab.Character, error) {
	return nil, f.err
}

func (f *fakeGenshin) Search(_ context.Context, keyword string) ([]hoyolab.SearchResult, error) {
	f.queries = append(f.queries, keyword)
	return f.results, f.err
}

type fakeMaterials struct {
	characters []string
	icons      map[string][]byte
}

func (f *fakeMaterials) TalentMaterials(context.Context, string) (talents.Materials, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMaterials) Characters(context.Context) ([]string, error) {
	return f.characters, nil
}

func (f *fakeMaterials) CharacterIconURL(id string) string {
	return "https://example.test/characters/" + id + "/icon"
}

func (f *fakeMaterials) ElementIconURL(element string) string {
	return "https://example.test/elements/" + element + "/icon"
}

func (f *fakeMaterials) Download(_ context.Context, url string) ([]byte, error) {
	data, ok := f.icons[url]
	if !ok {
		return nil, fmt.Errorf("no icon at %s", url)
	}
	return data, nil
}

type fakeEmojiStore struct {
	entries map[string]*emoji.Entry
}

func newFakeEmojiStore() *fakeEmojiStore {
	return &fakeEmojiStore{entries: make(map[string]*emoji.Entry)}
}

func (f *fakeEmojiStore) Migrate(context.Context) error { return nil }

func (f *fakeEmojiStore) Add(_ context.Context, name, category, url string, overwrite bool) (bool, error) {
	if _, ok := f.entries[name]; ok && !overwrite {
		return false, nil
	}
	f.entries[name] = &emoji.Entry{Name: name, Category: category, URL: url}
	return true, nil
}

func (f *fakeEmojiStore) Get(_ context.Context, name string) (*emoji.Entry, error) {
	e, ok := f.entries[name]
	if !ok {
		return nil, nil
	}
	entry := *e
	return &entry, nil
}

func (f *fakeEmojiStore) ByCategory(_ context.Context, category string) ([]emoji.Entry, error) {
	var out []emoji.Entry
	for _, e := range f.entries {
		if e.Category == category {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeEmojiStore) SetDiscordID(_ context.Context, name, discordID string) error {
	e, ok := f.entries[name]
	if !ok {
		return fmt.Errorf("no emoji named %s", name)
	}
	e.DiscordID = discordID
	return nil
}

func (f *fakeEmojiStore) DiscordID(_ context.Context, name string) string {
	if e, ok := f.entries[strings.ToLower(name)]; ok {
		return e.DiscordID
	}
	return ""
}

type fakeGuild struct {
	emojis  []*discordgo.Emoji
	created []*discordgo.EmojiParams
	deleted []string
}

func (f *fakeGuild) GuildEmojiCreate(_ string, data *discordgo.EmojiParams, _ ...discordgo.RequestOption) (*discordgo.Emoji, error) {
	f.created = append(f.created, data)
	e := &discordgo.Emoji{ID: fmt.Sprintf("%d", 100+len(f.created)), Name: data.Name}
	f.emojis = append(f.emojis, e)
	return e, nil
}

func (f *fakeGuild) GuildEmojiDelete(_ string, emojiID string, _ ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, emojiID)
	return nil
}

func (f *fakeGuild) GuildEmojis(string, ...discordgo.RequestOption) ([]*discordgo.Emoji, error) {
	return f.emojis, nil
}
