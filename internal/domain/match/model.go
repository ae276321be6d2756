package match

import (
	"slices"
	"time"
)

// Match is the canonical record of one played game. It is created once, at
// first ingestion, and never mutated afterwards.
type Match struct {
	Platform    Platform
	ID          int64
	CreatedAt   time.Time
	StartedAt   time.Time
	EndedAt     time.Time
	Duration    time.Duration
	GameMode    GameMode
	GameType    GameType
	Queue       Queue
	Map         MapID
	DataVersion string
	GameVersion string
	Teams       map[TeamID]Team
	WinningTeam TeamID
}

// Team returns the team with the given id, if present.
func (m Match) Team(id TeamID) (Team, bool) {
	team, ok := m.Teams[id]
	return team, ok
}

// Clone returns a deep copy of m. Nil and empty collections keep their shape.
func (m Match) Clone() Match {
	out := m
	if m.Teams == nil {
		return out
	}
	out.Teams = make(map[TeamID]Team, len(m.Teams))
	for id, team := range m.Teams {
		out.Teams[id] = team.clone()
	}
	return out
}

type Team struct {
	ID           TeamID
	Bans         []Ban
	Objectives   Objectives
	Participants []Participant
}

// Ban is one ban slot. Champion is nil when the slot was skipped.
type Ban struct {
	Champion *ChampionID
	PickTurn int
}

func (t Team) clone() Team {
	out := t
	out.Bans = slices.Clone(t.Bans)
	for i := range out.Bans {
		out.Bans[i].Champion = clonePtr(t.Bans[i].Champion)
	}
	out.Participants = slices.Clone(t.Participants)
	for i := range out.Participants {
		out.Participants[i] = t.Participants[i].clone()
	}
	return out
}

type Objective struct {
	First bool
	Kills int
}

type Objectives struct {
	Baron      Objective
	Champion   Objective
	Dragon     Objective
	Inhibitor  Objective
	RiftHerald Objective
	Tower      Objective
}

type Participant struct {
	ParticipantID int
	PUUID         string
	// SummonerName is only present on games recorded before Riot IDs.
	SummonerName       *string
	RiotIDGameName     *string
	RiotIDTagline      *string
	TeamID             TeamID
	ChampionID         ChampionID
	ChampionName       string
	ChampionLevel      int
	IndividualPosition *Position
	TeamPosition       *Position
	Lane               Lane
	Role               Role
	TimePlayed         time.Duration
	Win                bool

	Kills               int
	Deaths              int
	Assists             int
	DoubleKills         int
	TripleKills         int
	QuadraKills         int
	PentaKills          int
	KillingSprees       int
	LargestKillingSpree int
	LargestMultiKill    int
	FirstBloodKill      bool
	FirstTowerKill      bool

	GoldEarned           int
	GoldSpent            int
	TotalMinionsKilled   int
	NeutralMinionsKilled int

	TotalDamageDealt               int
	TotalDamageDealtToChampions    int
	PhysicalDamageDealtToChampions int
	MagicDamageDealtToChampions    int
	TrueDamageDealtToChampions     int
	TotalDamageTaken               int
	DamageSelfMitigated            int
	DamageDealtToObjectives        int
	DamageDealtToBuildings         int
	TotalHeal                      int
	TimeCCingOthers                int

	VisionScore             int
	WardsPlaced             int
	WardsKilled             int
	VisionWardsBoughtInGame int
	TurretKills             int
	InhibitorKills          int

	Items       [7]int
	Summoner1ID int
	Summoner2ID int
	Perks       Perks

	GameEndedInSurrender      bool
	GameEndedInEarlySurrender bool
}

func (p Participant) clone() Participant {
	out := p
	out.SummonerName = clonePtr(p.SummonerName)
	out.RiotIDGameName = clonePtr(p.RiotIDGameName)
	out.RiotIDTagline = clonePtr(p.RiotIDTagline)
	out.IndividualPosition = clonePtr(p.IndividualPosition)
	out.TeamPosition = clonePtr(p.TeamPosition)
	out.Perks.Styles = slices.Clone(p.Perks.Styles)
	for i := range out.Perks.Styles {
		out.Perks.Styles[i].Selections = slices.Clone(p.Perks.Styles[i].Selections)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type Perks struct {
	StatPerks StatPerks
	Styles    []PerkStyle
}

type StatPerks struct {
	Defense int
	Flex    int
	Offense int
}

type PerkStyle struct {
	Description string
	Style       int
	Selections  []PerkSelection
}

type PerkSelection struct {
	Perk int
	Var1 int
	Var2 int
	Var3 int
}
