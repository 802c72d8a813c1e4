package hoyolab

// API Base URLs
const (
	HOYOLAB_BBS_URL = "https://bbs-api-os.hoyolab.com"
)

// genshinGameID identifies Genshin Impact on record cards.
const genshinGameID = 2

// Raw API types

type response[T any] struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type RecordCard struct {
	GameID     int    `json:"game_id"`
	GameRoleID string `json:"game_role_id"`
	Nickname   string `json:"nickname"`
	Region     string `json:"region"`
	Level      int    `json:"level"`
	RegionName string `json:"region_name"`
	Data       []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"data"`
}

type recordCardList struct {
	List []RecordCard `json:"list"`
}

type statsDto struct {
	ActiveDayNumber      int    `json:"active_day_number"`
	AchievementNumber    int    `json:"achievement_number"`
	AnemoculusNumber     int    `json:"anemoculus_number"`
	GeoculusNumber       int    `json:"geoculus_number"`
	AvatarNumber         int    `json:"avatar_number"`
	WayPointNumber       int    `json:"way_point_number"`
	DomainNumber         int    `json:"domain_number"`
	SpiralAbyss          string `json:"spiral_abyss"`
	PreciousChestNumber  int    `json:"precious_chest_number"`
	LuxuriousChestNumber int    `json:"luxurious_chest_number"`
	ExquisiteChestNumber int    `json:"exquisite_chest_number"`
	CommonChestNumber    int    `json:"common_chest_number"`
}

type avatarDto struct {
	ID                      int    `json:"id"`
	Image                   string `json:"image"`
	Icon                    string `json:"icon"`
	Name                    string `json:"name"`
	Element                 string `json:"element"`
	Fetter                  int    `json:"fetter"`
	Level                   int    `json:"level"`
	Rarity                  int    `json:"rarity"`
	ActivedConstellationNum int    `json:"actived_constellation_num"`
	Weapon                  *struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Icon       string `json:"icon"`
		TypeName   string `json:"type_name"`
		Rarity     int    `json:"rarity"`
		Level      int    `json:"level"`
		PromoteLvl int    `json:"promote_level"`
		AffixLevel int    `json:"affix_level"`
		Desc       string `json:"desc"`
	} `json:"weapon,omitempty"`
	Reliquaries []struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Icon    string `json:"icon"`
		Pos     int    `json:"pos"`
		PosName string `json:"pos_name"`
		Rarity  int    `json:"rarity"`
		Level   int    `json:"level"`
		Set     struct {
			ID      int    `json:"id"`
			Name    string `json:"name"`
			Affixes []struct {
				ActivationNumber int    `json:"activation_number"`
				Effect           string `json:"effect"`
			} `json:"affixes"`
		} `json:"set"`
	} `json:"reliquaries,omitempty"`
}

type explorationDto struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	Type                  string `json:"type"`
	Level                 int    `json:"level"`
	ExplorationPercentage int    `json:"exploration_percentage"`
	Icon                  string `json:"icon"`
}

type userStatsDto struct {
	Stats             statsDto         `json:"stats"`
	Avatars           []avatarDto      `json:"avatars"`
	WorldExplorations []explorationDto `json:"world_explorations"`
}

type charactersDto struct {
	Avatars []avatarDto `json:"avatars"`
}

type searchDto struct {
	List []struct {
		User SearchResult `json:"user"`
	} `json:"list"`
}

// Domain types

// Stats are the headline numbers of a player's game record.
type Stats struct {
	Achievements   int
	ActiveDays     int
	Characters     int
	Anemoculi      int
	Geoculi        int
	Waypoints      int
	Domains        int
	SpiralAbyss    string
	LuxuriousChest int
	PreciousChest  int
	ExquisiteChest int
	CommonChest    int
}

type Weapon struct {
	Name       string
	Icon       string
	Type       string
	Rarity     int
	Level      int
	Ascension  int
	Refinement int
}

type SetEffect struct {
	Pieces int
	Effect string
}

type ArtifactSet struct {
	Name    string
	Effects []SetEffect
}

type Artifact struct {
	Name    string
	PosName string
	Pos     int
	Icon    string
	Rarity  int
	Level   int
	Set     ArtifactSet
}

// Character is an owned character. Weapon and Artifacts are only filled by
// Client.Characters.
type Character struct {
	ID            int
	Name          string
	AltName       string
	Element       string
	Rarity        int
	Level         int
	Friendship    int
	Constellation int
	Icon          string
	Weapon        *Weapon
	Artifacts     []Artifact
}

type Exploration struct {
	Name       string
	Level      int
	Percentage float64
	Icon       string
}

// PlayerInfo merges the record card with the player's game stats.
type PlayerInfo struct {
	UID           int
	Nickname      string
	AdventureRank int
	Region        string
	Stats         Stats
	Characters    []Character
	Explorations  []Exploration
}

// SearchResult is a HoYoLAB community user.
type SearchResult struct {
	UID       string `json:"uid"`
	Nickname  string `json:"nickname"`
	Introduce string `json:"introduce"`
}
