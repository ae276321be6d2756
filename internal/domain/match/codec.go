package match

import (
	"fmt"
	"time"
)

// TimeCodec converts canonical timestamps to the representation a store
// persists them as.
type TimeCodec[T any] interface {
	EncodeTime(t time.Time) T
	DecodeTime(v T) time.Time
}

// NativeTime keeps timestamps as time.Time, for stores with a native date type.
type NativeTime struct{}

func (NativeTime) EncodeTime(t time.Time) time.Time { return t.UTC() }
func (NativeTime) DecodeTime(v time.Time) time.Time { return v.UTC() }

// EpochMillis stores timestamps as epoch milliseconds, the form used inside
// JSON documents.
type EpochMillis struct{}

func (EpochMillis) EncodeTime(t time.Time) int64 { return t.UnixMilli() }
func (EpochMillis) DecodeTime(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Document is the persisted form of a Match. T is the timestamp
// representation of the target store.
type Document[T any] struct {
	ID          int64                   `json:"id" dynamodbav:"id"`
	Platform    string                  `json:"platform" dynamodbav:"platform"`
	CreatedAt   T                       `json:"gameCreation" dynamodbav:"gameCreation"`
	StartedAt   T                       `json:"gameStartTimestamp" dynamodbav:"gameStartTimestamp"`
	EndedAt     T                       `json:"gameEndTimestamp" dynamodbav:"gameEndTimestamp"`
	DurationMs  int64                   `json:"gameDuration" dynamodbav:"gameDuration"`
	GameMode    string                  `json:"gameMode" dynamodbav:"gameMode"`
	GameType    string                  `json:"gameType" dynamodbav:"gameType"`
	Queue       int                     `json:"queueId" dynamodbav:"queueId"`
	Map         int                     `json:"mapId" dynamodbav:"mapId"`
	DataVersion string                  `json:"dataVersion" dynamodbav:"dataVersion"`
	GameVersion string                  `json:"gameVersion" dynamodbav:"gameVersion"`
	Teams       map[string]TeamDocument `json:"teams" dynamodbav:"teams"`
	WinningTeam int                     `json:"winningTeam" dynamodbav:"winningTeam"`
}

type TeamDocument struct {
	Bans         []BanDocument         `json:"bans" dynamodbav:"bans"`
	Objectives   ObjectivesDocument    `json:"objectives" dynamodbav:"objectives"`
	Participants []ParticipantDocument `json:"participants" dynamodbav:"participants"`
}

type BanDocument struct {
	ChampionID *int `json:"championId" dynamodbav:"championId"`
	PickTurn   int  `json:"pickTurn" dynamodbav:"pickTurn"`
}

type ObjectiveDocument struct {
	First bool `json:"first" dynamodbav:"first"`
	Kills int  `json:"kills" dynamodbav:"kills"`
}

type ObjectivesDocument struct {
	Baron      ObjectiveDocument `json:"baron" dynamodbav:"baron"`
	Champion   ObjectiveDocument `json:"champion" dynamodbav:"champion"`
	Dragon     ObjectiveDocument `json:"dragon" dynamodbav:"dragon"`
	Inhibitor  ObjectiveDocument `json:"inhibitor" dynamodbav:"inhibitor"`
	RiftHerald ObjectiveDocument `json:"riftHerald" dynamodbav:"riftHerald"`
	Tower      ObjectiveDocument `json:"tower" dynamodbav:"tower"`
}

type ParticipantDocument struct {
	ParticipantID      int     `json:"participantId" dynamodbav:"participantId"`
	PUUID              string  `json:"puuid" dynamodbav:"puuid"`
	SummonerName       *string `json:"summonerName,omitempty" dynamodbav:"summonerName"`
	RiotIDGameName     *string `json:"riotIdGameName,omitempty" dynamodbav:"riotIdGameName"`
	RiotIDTagline      *string `json:"riotIdTagline,omitempty" dynamodbav:"riotIdTagline"`
	TeamID             int     `json:"teamId" dynamodbav:"teamId"`
	ChampionID         int     `json:"championId" dynamodbav:"championId"`
	ChampionName       string  `json:"championName" dynamodbav:"championName"`
	ChampionLevel      int     `json:"champLevel" dynamodbav:"champLevel"`
	IndividualPosition *string `json:"individualPosition,omitempty" dynamodbav:"individualPosition"`
	TeamPosition       *string `json:"teamPosition,omitempty" dynamodbav:"teamPosition"`
	Lane               string  `json:"lane" dynamodbav:"lane"`
	Role               string  `json:"role" dynamodbav:"role"`
	TimePlayedMs       int64   `json:"timePlayed" dynamodbav:"timePlayed"`
	Win                bool    `json:"win" dynamodbav:"win"`

	Kills               int  `json:"kills" dynamodbav:"kills"`
	Deaths              int  `json:"deaths" dynamodbav:"deaths"`
	Assists             int  `json:"assists" dynamodbav:"assists"`
	DoubleKills         int  `json:"doubleKills" dynamodbav:"doubleKills"`
	TripleKills         int  `json:"tripleKills" dynamodbav:"tripleKills"`
	QuadraKills         int  `json:"quadraKills" dynamodbav:"quadraKills"`
	PentaKills          int  `json:"pentaKills" dynamodbav:"pentaKills"`
	KillingSprees       int  `json:"killingSprees" dynamodbav:"killingSprees"`
	LargestKillingSpree int  `json:"largestKillingSpree" dynamodbav:"largestKillingSpree"`
	LargestMultiKill    int  `json:"largestMultiKill" dynamodbav:"largestMultiKill"`
	FirstBloodKill      bool `json:"firstBloodKill" dynamodbav:"firstBloodKill"`
	FirstTowerKill      bool `json:"firstTowerKill" dynamodbav:"firstTowerKill"`

	GoldEarned           int `json:"goldEarned" dynamodbav:"goldEarned"`
	GoldSpent            int `json:"goldSpent" dynamodbav:"goldSpent"`
	TotalMinionsKilled   int `json:"totalMinionsKilled" dynamodbav:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled" dynamodbav:"neutralMinionsKilled"`

	TotalDamageDealt               int `json:"totalDamageDealt" dynamodbav:"totalDamageDealt"`
	TotalDamageDealtToChampions    int `json:"totalDamageDealtToChampions" dynamodbav:"totalDamageDealtToChampions"`
	PhysicalDamageDealtToChampions int `json:"physicalDamageDealtToChampions" dynamodbav:"physicalDamageDealtToChampions"`
	MagicDamageDealtToChampions    int `json:"magicDamageDealtToChampions" dynamodbav:"magicDamageDealtToChampions"`
	TrueDamageDealtToChampions     int `json:"trueDamageDealtToChampions" dynamodbav:"trueDamageDealtToChampions"`
	TotalDamageTaken               int `json:"totalDamageTaken" dynamodbav:"totalDamageTaken"`
	DamageSelfMitigated            int `json:"damageSelfMitigated" dynamodbav:"damageSelfMitigated"`
	DamageDealtToObjectives        int `json:"damageDealtToObjectives" dynamodbav:"damageDealtToObjectives"`
	DamageDealtToBuildings         int `json:"damageDealtToBuildings" dynamodbav:"damageDealtToBuildings"`
	TotalHeal                      int `json:"totalHeal" dynamodbav:"totalHeal"`
	TimeCCingOthers                int `json:"timeCCingOthers" dynamodbav:"timeCCingOthers"`

	VisionScore             int `json:"visionScore" dynamodbav:"visionScore"`
	WardsPlaced             int `json:"wardsPlaced" dynamodbav:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled" dynamodbav:"wardsKilled"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame" dynamodbav:"visionWardsBoughtInGame"`
	TurretKills             int `json:"turretKills" dynamodbav:"turretKills"`
	InhibitorKills          int `json:"inhibitorKills" dynamodbav:"inhibitorKills"`

	Items       [7]int        `json:"items" dynamodbav:"items"`
	Summoner1ID int           `json:"summoner1Id" dynamodbav:"summoner1Id"`
	Summoner2ID int           `json:"summoner2Id" dynamodbav:"summoner2Id"`
	Perks       PerksDocument `json:"perks" dynamodbav:"perks"`

	GameEndedInSurrender      bool `json:"gameEndedInSurrender" dynamodbav:"gameEndedInSurrender"`
	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender" dynamodbav:"gameEndedInEarlySurrender"`
}

type PerksDocument struct {
	StatPerks StatPerksDocument   `json:"statPerks" dynamodbav:"statPerks"`
	Styles    []PerkStyleDocument `json:"styles" dynamodbav:"styles"`
}

type StatPerksDocument struct {
	Defense int `json:"defense" dynamodbav:"defense"`
	Flex    int `json:"flex" dynamodbav:"flex"`
	Offense int `json:"offense" dynamodbav:"offense"`
}

type PerkStyleDocument struct {
	Description string                  `json:"description" dynamodbav:"description"`
	Style       int                     `json:"style" dynamodbav:"style"`
	Selections  []PerkSelectionDocument `json:"selections" dynamodbav:"selections"`
}

type PerkSelectionDocument struct {
	Perk int `json:"perk" dynamodbav:"perk"`
	Var1 int `json:"var1" dynamodbav:"var1"`
	Var2 int `json:"var2" dynamodbav:"var2"`
	Var3 int `json:"var3" dynamodbav:"var3"`
}

// Encode maps a canonical match to its stored document. Only teams present
// in m are written.
func Encode[T any](m Match, codec TimeCodec[T]) Document[T] {
	doc := Document[T]{
		ID:          m.ID,
		Platform:    string(m.Platform),
		CreatedAt:   codec.EncodeTime(m.CreatedAt),
		StartedAt:   codec.EncodeTime(m.StartedAt),
		EndedAt:     codec.EncodeTime(m.EndedAt),
		DurationMs:  m.Duration.Milliseconds(),
		GameMode:    string(m.GameMode),
		GameType:    string(m.GameType),
		Queue:       int(m.Queue),
		Map:         int(m.Map),
		DataVersion: m.DataVersion,
		GameVersion: m.GameVersion,
		WinningTeam: int(m.WinningTeam),
	}
	if m.Teams != nil {
		doc.Teams = make(map[string]TeamDocument, len(m.Teams))
		for id, team := range m.Teams {
			doc.Teams[id.Key()] = encodeTeam(team)
		}
	}
	return doc
}

// DecodeDocument maps a stored document back to a canonical match.
func DecodeDocument[T any](doc Document[T], codec TimeCodec[T]) (Match, error) {
	platform := Platform(doc.Platform)
	if !platform.Valid() {
		return Match{}, fmt.Errorf("decode match %d: %w: %q", doc.ID, ErrUnknownPlatform, doc.Platform)
	}
	winner := TeamID(doc.WinningTeam)
	if !winner.Valid() {
		return Match{}, fmt.Errorf("decode match %d: invalid winning team %d", doc.ID, doc.WinningTeam)
	}

	m := Match{
		Platform:    platform,
		ID:          doc.ID,
		CreatedAt:   codec.DecodeTime(doc.CreatedAt),
		StartedAt:   codec.DecodeTime(doc.StartedAt),
		EndedAt:     codec.DecodeTime(doc.EndedAt),
		Duration:    time.Duration(doc.DurationMs) * time.Millisecond,
		GameMode:    GameMode(doc.GameMode),
		GameType:    GameType(doc.GameType),
		Queue:       Queue(doc.Queue),
		Map:         MapID(doc.Map),
		DataVersion: doc.DataVersion,
		GameVersion: doc.GameVersion,
		WinningTeam: winner,
	}
	if doc.Teams != nil {
		m.Teams = make(map[TeamID]Team, len(doc.Teams))
		for key, teamDoc := range doc.Teams {
			id, err := ParseTeamKey(key)
			if err != nil {
				return Match{}, fmt.Errorf("decode match %d: %w", doc.ID, err)
			}
			m.Teams[id] = decodeTeam(id, teamDoc)
		}
	}
	return m, nil
}

func encodeTeam(team Team) TeamDocument {
	out := TeamDocument{
		Objectives: ObjectivesDocument{
			Baron:      ObjectiveDocument(team.Objectives.Baron),
			Champion:   ObjectiveDocument(team.Objectives.Champion),
			Dragon:     ObjectiveDocument(team.Objectives.Dragon),
			Inhibitor:  ObjectiveDocument(team.Objectives.Inhibitor),
			RiftHerald: ObjectiveDocument(team.Objectives.RiftHerald),
			Tower:      ObjectiveDocument(team.Objectives.Tower),
		},
	}
	if team.Bans != nil {
		out.Bans = make([]BanDocument, 0, len(team.Bans))
		for _, ban := range team.Bans {
			item := BanDocument{PickTurn: ban.PickTurn}
			if ban.Champion != nil {
				champion := int(*ban.Champion)
				item.ChampionID = &champion
			}
			out.Bans = append(out.Bans, item)
		}
	}
	if team.Participants != nil {
		out.Participants = make([]ParticipantDocument, 0, len(team.Participants))
		for _, p := range team.Participants {
			out.Participants = append(out.Participants, encodeParticipant(p))
		}
	}
	return out
}

func decodeTeam(id TeamID, doc TeamDocument) Team {
	out := Team{
		ID: id,
		Objectives: Objectives{
			Baron:      Objective(doc.Objectives.Baron),
			Champion:   Objective(doc.Objectives.Champion),
			Dragon:     Objective(doc.Objectives.Dragon),
			Inhibitor:  Objective(doc.Objectives.Inhibitor),
			RiftHerald: Objective(doc.Objectives.RiftHerald),
			Tower:      Objective(doc.Objectives.Tower),
		},
	}
	if doc.Bans != nil {
		out.Bans = make([]Ban, 0, len(doc.Bans))
		for _, ban := range doc.Bans {
			item := Ban{PickTurn: ban.PickTurn}
			if ban.ChampionID != nil {
				champion := ChampionID(*ban.ChampionID)
				item.Champion = &champion
			}
			out.Bans = append(out.Bans, item)
		}
	}
	if doc.Participants != nil {
		out.Participants = make([]Participant, 0, len(doc.Participants))
		for _, p := range doc.Participants {
			out.Participants = append(out.Participants, decodeParticipant(p))
		}
	}
	return out
}

func encodeParticipant(p Participant) ParticipantDocument {
	return ParticipantDocument{
		ParticipantID:      p.ParticipantID,
		PUUID:              p.PUUID,
		SummonerName:       cloneString(p.SummonerName),
		RiotIDGameName:     cloneString(p.RiotIDGameName),
		RiotIDTagline:      cloneString(p.RiotIDTagline),
		TeamID:             int(p.TeamID),
		ChampionID:         int(p.ChampionID),
		ChampionName:       p.ChampionName,
		ChampionLevel:      p.ChampionLevel,
		IndividualPosition: positionToString(p.IndividualPosition),
		TeamPosition:       positionToString(p.TeamPosition),
		Lane:               string(p.Lane),
		Role:               string(p.Role),
		TimePlayedMs:       p.TimePlayed.Milliseconds(),
		Win:                p.Win,

		Kills:               p.Kills,
		Deaths:              p.Deaths,
		Assists:             p.Assists,
		DoubleKills:         p.DoubleKills,
		TripleKills:         p.TripleKills,
		QuadraKills:         p.QuadraKills,
		PentaKills:          p.PentaKills,
		KillingSprees:       p.KillingSprees,
		LargestKillingSpree: p.LargestKillingSpree,
		LargestMultiKill:    p.LargestMultiKill,
		FirstBloodKill:      p.FirstBloodKill,
		FirstTowerKill:      p.FirstTowerKill,

		GoldEarned:           p.GoldEarned,
		GoldSpent:            p.GoldSpent,
		TotalMinionsKilled:   p.TotalMinionsKilled,
		NeutralMinionsKilled: p.NeutralMinionsKilled,

		TotalDamageDealt:               p.TotalDamageDealt,
		TotalDamageDealtToChampions:    p.TotalDamageDealtToChampions,
		PhysicalDamageDealtToChampions: p.PhysicalDamageDealtToChampions,
		MagicDamageDealtToChampions:    p.MagicDamageDealtToChampions,
		TrueDamageDealtToChampions:     p.TrueDamageDealtToChampions,
		TotalDamageTaken:               p.TotalDamageTaken,
		DamageSelfMitigated:            p.DamageSelfMitigated,
		DamageDealtToObjectives:        p.DamageDealtToObjectives,
		DamageDealtToBuildings:         p.DamageDealtToBuildings,
		TotalHeal:                      p.TotalHeal,
		TimeCCingOthers:                p.TimeCCingOthers,

		VisionScore:             p.VisionScore,
		WardsPlaced:             p.WardsPlaced,
		WardsKilled:             p.WardsKilled,
		VisionWardsBoughtInGame: p.VisionWardsBoughtInGame,
		TurretKills:             p.TurretKills,
		InhibitorKills:          p.InhibitorKills,

		Items:       p.Items,
		Summoner1ID: p.Summoner1ID,
		Summoner2ID: p.Summoner2ID,
		Perks:       encodePerks(p.Perks),

		GameEndedInSurrender:      p.GameEndedInSurrender,
		GameEndedInEarlySurrender: p.GameEndedInEarlySurrender,
	}
}

func decodeParticipant(doc ParticipantDocument) Participant {
	return Participant{
		ParticipantID:      doc.ParticipantID,
		PUUID:              doc.PUUID,
		SummonerName:       cloneString(doc.SummonerName),
		RiotIDGameName:     cloneString(doc.RiotIDGameName),
		RiotIDTagline:      cloneString(doc.RiotIDTagline),
		TeamID:             TeamID(doc.TeamID),
		ChampionID:         ChampionID(doc.ChampionID),
		ChampionName:       doc.ChampionName,
		ChampionLevel:      doc.ChampionLevel,
		IndividualPosition: stringToPosition(doc.IndividualPosition),
		TeamPosition:       stringToPosition(doc.TeamPosition),
		Lane:               Lane(doc.Lane),
		Role:               Role(doc.Role),
		TimePlayed:         time.Duration(doc.TimePlayedMs) * time.Millisecond,
		Win:                doc.Win,

		Kills:               doc.Kills,
		Deaths:              doc.Deaths,
		Assists:             doc.Assists,
		DoubleKills:         doc.DoubleKills,
		TripleKills:         doc.TripleKills,
		QuadraKills:         doc.QuadraKills,
		PentaKills:          doc.PentaKills,
		KillingSprees:       doc.KillingSprees,
		LargestKillingSpree: doc.LargestKillingSpree,
		LargestMultiKill:    doc.LargestMultiKill,
		FirstBloodKill:      doc.FirstBloodKill,
		FirstTowerKill:      doc.FirstTowerKill,

		GoldEarned:           doc.GoldEarned,
		GoldSpent:            doc.GoldSpent,
		TotalMinionsKilled:   doc.TotalMinionsKilled,
		NeutralMinionsKilled: doc.NeutralMinionsKilled,

		TotalDamageDealt:               doc.TotalDamageDealt,
		TotalDamageDealtToChampions:    doc.TotalDamageDealtToChampions,
		PhysicalDamageDealtToChampions: doc.PhysicalDamageDealtToChampions,
		MagicDamageDealtToChampions:    doc.MagicDamageDealtToChampions,
		TrueDamageDealtToChampions:     doc.TrueDamageDealtToChampions,
		TotalDamageTaken:               doc.TotalDamageTaken,
		DamageSelfMitigated:            doc.DamageSelfMitigated,
		DamageDealtToObjectives:        doc.DamageDealtToObjectives,
		DamageDealtToBuildings:         doc.DamageDealtToBuildings,
		TotalHeal:                      doc.TotalHeal,
		TimeCCingOthers:                doc.TimeCCingOthers,

		VisionScore:             doc.VisionScore,
		WardsPlaced:             doc.WardsPlaced,
		WardsKilled:             doc.WardsKilled,
		VisionWardsBoughtInGame: doc.VisionWardsBoughtInGame,
		TurretKills:             doc.TurretKills,
		InhibitorKills:          doc.InhibitorKills,

		Items:       doc.Items,
		Summoner1ID: doc.Summoner1ID,
		Summoner2ID: doc.Summoner2ID,
		Perks:       decodePerks(doc.Perks),

		GameEndedInSurrender:      doc.GameEndedInSurrender,
		GameEndedInEarlySurrender: doc.GameEndedInEarlySurrender,
	}
}

func encodePerks(p Perks) PerksDocument {
	out := PerksDocument{StatPerks: StatPerksDocument(p.StatPerks)}
	if p.Styles == nil {
		return out
	}
	out.Styles = make([]PerkStyleDocument, 0, len(p.Styles))
	for _, style := range p.Styles {
		item := PerkStyleDocument{Description: style.Description, Style: style.Style}
		if style.Selections != nil {
			item.Selections = make([]PerkSelectionDocument, 0, len(style.Selections))
			for _, sel := range style.Selections {
				item.Selections = append(item.Selections, PerkSelectionDocument(sel))
			}
		}
		out.Styles = append(out.Styles, item)
	}
	return out
}

func decodePerks(doc PerksDocument) Perks {
	out := Perks{StatPerks: StatPerks(doc.StatPerks)}
	if doc.Styles == nil {
		return out
	}
	out.Styles = make([]PerkStyle, 0, len(doc.Styles))
	for _, style := range doc.Styles {
		item := PerkStyle{Description: style.Description, Style: style.Style}
		if style.Selections != nil {
			item.Selections = make([]PerkSelection, 0, len(style.Selections))
			for _, sel := range style.Selections {
				item.Selections = append(item.Selections, PerkSelection(sel))
			}
		}
		out.Styles = append(out.Styles, item)
	}
	return out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func positionToString(v *Position) *string {
	if v == nil {
		return nil
	}
	out := string(*v)
	return &out
}

func stringToPosition(v *string) *Position {
	if v == nil {
		return nil
	}
	out := Position(*v)
	return &out
}
