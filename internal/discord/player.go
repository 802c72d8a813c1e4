package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
)

var errPlayerNotFound = errors.New("no user found")

// PlayerLookup is the HoYoLAB community user a command refers to.
type PlayerLookup struct {
	UID int
	// Notice is shown to the user when the lookup was ambiguous.
	Notice string
}

// identify resolves a command's user option: a numeric value is a community UID,
// anything else is searched for and the first match is used.
func (b *DiscordBot) identify(ctx context.Context, user string) (*PlayerLookup, error) {
	user = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(user), "-uid"))
	if user == "" {
		return nil, errPlayerNotFound
	}
	if uid, err := strconv.Atoi(user); err == nil {
		return &PlayerLookup{UID: uid}, nil
	}

	results, err := b.Genshin.Search(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", user, err)
	}
	if len(results) == 0 {
		return nil, errPlayerNotFound
	}

	uid, err := strconv.Atoi(results[0].UID)
	if err != nil {
		return nil, fmt.Errorf("parsing community uid %q: %w", results[0].UID, err)
	}

	lookup := &PlayerLookup{UID: uid}
	if len(results) > 1 {
		lookup.Notice = fmt.Sprintf("Found %d users matching name %s\nResults will use the first result.\nTo see all results type `/search %s`",
			len(results), user, user)
	}
	return lookup, nil
}

// lookupFailed sends the message matching a failed player lookup and reports
// unexpected errors.
func (b *DiscordBot) lookupFailed(s *discordgo.Session, i *discordgo.InteractionCreate, uid int, err error) {
	var reqErr *hoyolab.RequestError
	switch {
	case errors.Is(err, errPlayerNotFound):
		b.sendError(s, i, "Player Not Found", "No user found")
	case err == nil, errors.Is(err, hoyolab.ErrDataNotPublic):
		b.sendError(s, i, "Player Not Found", fmt.Sprintf("No user found with community uid %d.\nProfile could be private.", uid))
	case errors.As(err, &reqErr):
		b.reportError(s, i, err)
		b.sendError(s, i, "API Error", fmt.Sprintf("HoYoLAB answered with status %d", reqErr.Status))
	default:
		b.reportError(s, i, err)
		b.sendError(s, i, "API Error", "Error fetching data from HoYoLAB")
	}
}

// withNotice prefixes the lookup notice, if any, to a message.
func (l *PlayerLookup) withNotice(content string) string {
	if l.Notice == "" {
		return content
	}
	if content == "" {
		return l.Notice
	}
	return l.Notice + "\n\n" + content
}
