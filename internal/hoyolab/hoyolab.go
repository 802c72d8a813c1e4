// Package hoyolab reads Genshin Impact game records from the HoYoLAB community API.
package hoyolab

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// dsSalt signs requests to the overseas game record API.
const dsSalt = "6cqshh5dhw73bzxn20oexa9k516chk7s"

// verifyUID is a public HoYoLAB profile used to check credentials.
const verifyUID = 46178811

var (
	ErrDataNotPublic = errors.New("game record is not public")
	ErrNotLoggedIn   = errors.New("hoyolab login failed: bad credentials given")
)

// APIError is a non-zero retcode returned by HoYoLAB.
type APIError struct {
	Retcode int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hoyolab returned retcode %d: %s", e.Retcode, e.Message)
}

// RequestError is returned when HoYoLAB answers with a non-200 status.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("hoyolab request failed with status %d: %s", e.Status, e.Body)
}

// Client is an authenticated HoYoLAB game record client.
type Client struct {
	baseURL string
	ltuid   int
	ltoken  string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a client authenticated with the ltuid/ltoken cookie pair.
// An empty baseURL uses HOYOLAB_BBS_URL.
func NewClient(baseURL string, ltuid int, ltoken string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = HOYOLAB_BBS_URL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ltuid:   ltuid,
		ltoken:  ltoken,
		http:    httpClient,
		now:     time.Now,
	}
}

// generateDS builds the dynamic secret header value: "t,r,md5(salt=..&t=..&r=..)".
func generateDS(now time.Time) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	t := strconv.FormatInt(now.Unix(), 10)
	r := make([]byte, 6)
	for i := range r {
		r[i] = letters[rand.IntN(len(letters))]
	}
	sum := md5.Sum([]byte("salt=" + dsSalt + "&t=" + t + "&r=" + string(r)))
	return t + "," + string(r) + "," + hex.EncodeToString(sum[:])
}

// makeAPIRequest sends a signed request and decodes the data field into result.
func (c *Client) makeAPIRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rpc-app_version", "1.5.0")
	req.Header.Set("x-rpc-client_type", "4")
	req.Header.Set("x-rpc-language", "en-us")
	req.Header.Set("ds", generateDS(c.now()))
	req.AddCookie(&http.Cookie{Name: "ltuid", Value: strconv.Itoa(c.ltuid)})
	req.AddCookie(&http.Cookie{Name: "ltoken", Value: c.ltoken})

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Status: resp.StatusCode, Body: string(raw)}
	}

	wrapped := response[json.RawMessage]{}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	switch wrapped.Retcode {
	case 0:
	case 10102:
		return ErrDataNotPublic
	case -100, 10001:
		return ErrNotLoggedIn
	default:
		return &APIError{Retcode: wrapped.Retcode, Message: wrapped.Message}
	}

	if result == nil || len(wrapped.Data) == 0 {
		return nil
	}
	return json.Unmarshal(wrapped.Data, result)
}

// ServerForUID recognises the game server from the first digit of a game uid.
func ServerForUID(uid int) (string, error) {
	s := strconv.Itoa(uid)
	if len(s) != 9 {
		return "", fmt.Errorf("uid %d is not a 9 digit game uid", uid)
	}
	switch s[0] {
	case '1', '2':
		return "cn_gf01", nil
	case '5':
		return "cn_qd01", nil
	case '6':
		return "os_usa", nil
	case '7':
		return "os_euro", nil
	case '8':
		return "os_asia", nil
	case '9':
		return "os_cht", nil
	}
	return "", fmt.Errorf("uid %d has an unknown server", uid)
}

// Verify checks that the configured credentials can read a public record card.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.RecordCard(ctx, verifyUID); err != nil {
		return fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	return nil
}

// RecordCard returns the Genshin record card of a HoYoLAB community user, or
// nil when the user has no public Genshin card.
func (c *Client) RecordCard(ctx context.Context, hoyolabUID int) (*RecordCard, error) {
	endpoint := "/game_record/card/wapi/getGameRecordCard?uid=" + strconv.Itoa(hoyolabUID)

	var cards recordCardList
	if err := c.makeAPIRequest(ctx, http.MethodGet, endpoint, nil, &cards); err != nil {
		return nil, err
	}
	for i := range cards.List {
		card := cards.List[i]
		if card.GameID == genshinGameID && card.GameRoleID != "" {
			return &card, nil
		}
	}
	return nil, nil
}

func (c *Client) userStats(ctx context.Context, uid int) (*userStatsDto, error) {
	server, err := ServerForUID(uid)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("/game_record/genshin/api/index?server=%s&role_id=%d", server, uid)

	var stats userStatsDto
	if err := c.makeAPIRequest(ctx, http.MethodGet, endpoint, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UserStats returns the game stats of a game uid with characters sorted
// strongest first.
func (c *Client) UserStats(ctx context.Context, uid int) (Stats, []Character, []Exploration, error) {
	raw, err := c.userStats(ctx, uid)
	if err != nil {
		return Stats{}, nil, nil, err
	}

	characters := make([]Character, 0, len(raw.Avatars))
	for _, a := range raw.Avatars {
		characters = append(characters, toCharacter(a))
	}
	SortCharacters(characters)

	explorations := make([]Exploration, 0, len(raw.WorldExplorations))
	for _, e := range raw.WorldExplorations {
		explorations = append(explorations, Exploration{
			Name:       e.Name,
			Level:      e.Level,
			Percentage: float64(e.ExplorationPercentage) / 10,
			Icon:       e.Icon,
		})
	}

	return toStats(raw.Stats), characters, explorations, nil
}

// Info returns the combined record card and game stats of a HoYoLAB community
// user, or nil when the user has no Genshin record.
func (c *Client) Info(ctx context.Context, hoyolabUID int) (*PlayerInfo, error) {
	card, err := c.RecordCard(ctx, hoyolabUID)
	if err != nil || card == nil {
		return nil, err
	}

	uid, err := strconv.Atoi(card.GameRoleID)
	if err != nil {
		return nil, fmt.Errorf("parsing game uid %q: %w", card.GameRoleID, err)
	}

	stats, characters, explorations, err := c.UserStats(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &PlayerInfo{
		UID:           uid,
		Nickname:      card.Nickname,
		AdventureRank: card.Level,
		Region:        card.RegionName,
		Stats:         stats,
		Characters:    characters,
		Explorations:  explorations,
	}, nil
}

// Characters returns every owned character of a game uid in detail.
func (c *Client) Characters(ctx context.Context, uid int) ([]Character, error) {
	raw, err := c.userStats(ctx, uid)
	if err != nil {
		return nil, err
	}
	server, err := ServerForUID(uid)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(raw.Avatars))
	for _, a := range raw.Avatars {
		ids = append(ids, a.ID)
	}
	payload := map[string]any{
		"character_ids": ids,
		"role_id":       strconv.Itoa(uid),
		"server":        server,
	}

	var detailed charactersDto
	if err := c.makeAPIRequest(ctx, http.MethodPost, "/game_record/genshin/api/character", payload, &detailed); err != nil {
		return nil, err
	}

	characters := make([]Character, 0, len(detailed.Avatars))
	for _, a := range detailed.Avatars {
		characters = append(characters, toCharacter(a))
	}
	return characters, nil
}

// PlayerCharacters returns the characters of uid matching any of names, keyed by
// both the display name and the alternative name. Matching ignores case.
func (c *Client) PlayerCharacters(ctx context.Context, uid int, names []string) (map[string]Character, error) {
	characters, err := c.Characters(ctx, uid)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = true
	}

	res := make(map[string]Character)
	for _, ch := range characters {
		if !wanted[strings.ToLower(ch.Name)] && !(ch.AltName != "" && wanted[strings.ToLower(ch.AltName)]) {
			continue
		}
		res[strings.ToLower(ch.Name)] = ch
		if ch.AltName != "" {
			res[strings.ToLower(ch.AltName)] = ch
		}
	}
	return res, nil
}

// Search finds HoYoLAB community users by nickname.
func (c *Client) Search(ctx context.Context, keyword string) ([]SearchResult, error) {
	endpoint := "/community/search/wapi/search/user?page_size=20&keyword=" + url.QueryEscape(keyword)

	var found searchDto
	if err := c.makeAPIRequest(ctx, http.MethodGet, endpoint, nil, &found); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(found.List))
	for _, item := range found.List {
		results = append(results, item.User)
	}
	return results, nil
}

func toStats(s statsDto) Stats {
	return Stats{
		Achievements:   s.AchievementNumber,
		ActiveDays:     s.ActiveDayNumber,
		Characters:     s.AvatarNumber,
		Anemoculi:      s.AnemoculusNumber,
		Geoculi:        s.GeoculusNumber,
		Waypoints:      s.WayPointNumber,
		Domains:        s.DomainNumber,
		SpiralAbyss:    s.SpiralAbyss,
		LuxuriousChest: s.LuxuriousChestNumber,
		PreciousChest:  s.PreciousChestNumber,
		ExquisiteChest: s.ExquisiteChestNumber,
		CommonChest:    s.CommonChestNumber,
	}
}

func toCharacter(a avatarDto) Character {
	ch := Character{
		ID:            a.ID,
		Name:          a.Name,
		Element:       a.Element,
		Rarity:        a.Rarity,
		Level:         a.Level,
		Friendship:    a.Fetter,
		Constellation: a.ActivedConstellationNum,
		Icon:          a.Image,
	}
	if ch.Icon == "" {
		ch.Icon = a.Icon
	}
	// The traveler is reported under the chosen twin's name.
	if ch.Name == "Aether" || ch.Name == "Lumine" {
		ch.AltName = ch.Name
		ch.Name = "Traveler"
	}
	// Aloy is a collab character reported as rarity 105.
	if ch.Rarity > 100 {
		ch.Rarity -= 100
	}

	if a.Weapon != nil {
		ch.Weapon = &Weapon{
			Name:       a.Weapon.Name,
			Icon:       a.Weapon.Icon,
			Type:       a.Weapon.TypeName,
			Rarity:     a.Weapon.Rarity,
			Level:      a.Weapon.Level,
			Ascension:  a.Weapon.PromoteLvl,
			Refinement: a.Weapon.AffixLevel,
		}
	}
	for _, r := range a.Reliquaries {
		set := ArtifactSet{Name: r.Set.Name}
		for _, affix := range r.Set.Affixes {
			set.Effects = append(set.Effects, SetEffect{Pieces: affix.ActivationNumber, Effect: affix.Effect})
		}
		ch.Artifacts = append(ch.Artifacts, Artifact{
			Name:    r.Name,
			PosName: r.PosName,
			Pos:     r.Pos,
			Icon:    r.Icon,
			Rarity:  r.Rarity,
			Level:   r.Level,
			Set:     set,
		})
	}
	return ch
}
