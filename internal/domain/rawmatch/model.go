package rawmatch

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

// NoBanChampion is the champion id Riot reports for a skipped ban slot.
const NoBanChampion = -1

// RawMatch is the decoded match-v5 payload before normalization. It is built
// once per upstream fetch and discarded after Normalize.
type RawMatch struct {
	Metadata Metadata `json:"metadata"`
	Info     Info     `json:"info"`
}

type Metadata struct {
	DataVersion string `json:"dataVersion" validate:"required"`
	MatchID     string `json:"matchId" validate:"required"`
}

type Info struct {
	GameCreation       *Timestamp     `json:"gameCreation" validate:"required"`
	GameStartTimestamp *Timestamp     `json:"gameStartTimestamp" validate:"required"`
	GameEndTimestamp   *Timestamp     `json:"gameEndTimestamp"`
	GameDuration       *int64         `json:"gameDuration" validate:"required,gte=0"`
	GameID             int64          `json:"gameId" validate:"gt=0"`
	GameMode           match.GameMode `json:"gameMode" validate:"gamemode"`
	GameType           match.GameType `json:"gameType" validate:"gametype"`
	GameVersion        string         `json:"gameVersion" validate:"required"`
	MapID              match.MapID    `json:"mapId" validate:"mapid"`
	PlatformID         string         `json:"platformId" validate:"platform"`
	QueueID            match.Queue    `json:"queueId" validate:"queue"`
	Participants       []Participant  `json:"participants" validate:"required,dive"`
	Teams              []Team         `json:"teams" validate:"required,dive"`
}

type Team struct {
	TeamID     *int       `json:"teamId" validate:"required,rawteamid"`
	Win        bool       `json:"win"`
	Bans       []Ban      `json:"bans" validate:"dive"`
	Objectives Objectives `json:"objectives"`
}

// Ban is one ban slot. After Decode, ChampionID is nil when Riot sent
// NoBanChampion; a slot without championId fails decoding.
type Ban struct {
	ChampionID *match.ChampionID `json:"championId" validate:"required"`
	PickTurn   int               `json:"pickTurn"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

type Objectives struct {
	Baron      Objective `json:"baron"`
	Champion   Objective `json:"champion"`
	Dragon     Objective `json:"dragon"`
	Inhibitor  Objective `json:"inhibitor"`
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

type Participant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid" validate:"required"`

	// Absent on games recorded before the field existed.
	SummonerName       *string         `json:"summonerName"`
	RiotIDGameName     *string         `json:"riotIdGameName"`
	RiotIDTagline      *string         `json:"riotIdTagline"`
	IndividualPosition *match.Position `json:"individualPosition" validate:"omitempty,position"`
	TeamPosition       *match.Position `json:"teamPosition" validate:"omitempty,position"`

	TeamID        *int             `json:"teamId" validate:"required,rawteamid"`
	ChampionID    match.ChampionID `json:"championId"`
	ChampionName  string           `json:"championName"`
	ChampionLevel int              `json:"champLevel"`
	Lane          match.Lane       `json:"lane" validate:"lane"`
	Role          match.Role       `json:"role" validate:"role"`
	TimePlayed    Seconds          `json:"timePlayed"`
	Win           bool             `json:"win"`

	Kills               int  `json:"kills"`
	Deaths              int  `json:"deaths"`
	Assists             int  `json:"assists"`
	DoubleKills         int  `json:"doubleKills"`
	TripleKills         int  `json:"tripleKills"`
	QuadraKills         int  `json:"quadraKills"`
	PentaKills          int  `json:"pentaKills"`
	KillingSprees       int  `json:"killingSprees"`
	LargestKillingSpree int  `json:"largestKillingSpree"`
	LargestMultiKill    int  `json:"largestMultiKill"`
	FirstBloodKill      bool `json:"firstBloodKill"`
	FirstTowerKill      bool `json:"firstTowerKill"`

	GoldEarned           int `json:"goldEarned"`
	GoldSpent            int `json:"goldSpent"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	TotalDamageDealt               int `json:"totalDamageDealt"`
	TotalDamageDealtToChampions    int `json:"totalDamageDealtToChampions"`
	PhysicalDamageDealtToChampions int `json:"physicalDamageDealtToChampions"`
	MagicDamageDealtToChampions    int `json:"magicDamageDealtToChampions"`
	TrueDamageDealtToChampions     int `json:"trueDamageDealtToChampions"`
	TotalDamageTaken               int `json:"totalDamageTaken"`
	DamageSelfMitigated            int `json:"damageSelfMitigated"`
	DamageDealtToObjectives        int `json:"damageDealtToObjectives"`
	DamageDealtToBuildings         int `json:"damageDealtToBuildings"`
	TotalHeal                      int `json:"totalHeal"`
	TimeCCingOthers                int `json:"timeCCingOthers"`

	VisionScore             int `json:"visionScore"`
	WardsPlaced             int `json:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame"`
	TurretKills             int `json:"turretKills"`
	InhibitorKills          int `json:"inhibitorKills"`

	Item0       int   `json:"item0"`
	Item1       int   `json:"item1"`
	Item2       int   `json:"item2"`
	Item3       int   `json:"item3"`
	Item4       int   `json:"item4"`
	Item5       int   `json:"item5"`
	Item6       int   `json:"item6"`
	Summoner1ID int   `json:"summoner1Id"`
	Summoner2ID int   `json:"summoner2Id"`
	Perks       Perks `json:"perks"`

	GameEndedInSurrender      bool `json:"gameEndedInSurrender"`
	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender"`
}

type Perks struct {
	StatPerks StatPerks   `json:"statPerks"`
	Styles    []PerkStyle `json:"styles"`
}

type StatPerks struct {
	Defense int `json:"defense"`
	Flex    int `json:"flex"`
	Offense int `json:"offense"`
}

type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
	Var1 int `json:"var1"`
	Var2 int `json:"var2"`
	Var3 int `json:"var3"`
}

// Timestamp is an instant sent as epoch milliseconds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := sonic.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("epoch millis: %w", err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Seconds is a duration sent as whole seconds.
type Seconds time.Duration

func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

func (s *Seconds) UnmarshalJSON(data []byte) error {
	var secs int64
	if err := sonic.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("seconds: %w", err)
	}
	*s = Seconds(time.Duration(secs) * time.Second)
	return nil
}
