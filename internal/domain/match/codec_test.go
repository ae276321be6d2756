package match

import (
	"reflect"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func sampleMatch() Match {
	start := time.Date(2024, 5, 12, 18, 30, 0, 0, time.UTC)
	champion := ChampionID(157)
	legacyName := "Faker"
	gameName := "Hide on bush"
	tagline := "KR1"
	top := PositionTop
	none := PositionNone

	blue := Participant{
		ParticipantID:      1,
		PUUID:              "puuid-blue-1",
		SummonerName:       &legacyName,
		RiotIDGameName:     &gameName,
		RiotIDTagline:      &tagline,
		TeamID:             TeamBlue,
		ChampionID:         266,
		ChampionName:       "Aatrox",
		ChampionLevel:      16,
		IndividualPosition: &top,
		TeamPosition:       &none,
		Lane:               LaneTop,
		Role:               RoleSolo,
		TimePlayed:         31*time.Minute + 4*time.Second,
		Win:                true,
		Kills:              7,
		Deaths:             2,
		Assists:            5,
		GoldEarned:         12840,
		Items:              [7]int{3071, 6630, 3047, 0, 0, 0, 3340},
		Summoner1ID:        4,
		Summoner2ID:        12,
		Perks: Perks{
			StatPerks: StatPerks{Defense: 5002, Flex: 5008, Offense: 5005},
			Styles: []PerkStyle{{
				Description: "primaryStyle",
				Style:       8000,
				Selections:  []PerkSelection{{Perk: 8010, Var1: 120, Var2: 0, Var3: 0}},
			}},
		},
	}
	red := Participant{
		ParticipantID: 6,
		PUUID:         "puuid-red-1",
		TeamID:        TeamRed,
		ChampionID:    champion,
		ChampionName:  "Yasuo",
		Lane:          LaneMiddle,
		Role:          RoleSolo,
		TimePlayed:    31 * time.Minute,
		Perks:         Perks{Styles: []PerkStyle{}},
	}

	return Match{
		Platform:    PlatformEUW1,
		ID:          6912345678,
		CreatedAt:   start.Add(-2 * time.Minute),
		StartedAt:   start,
		EndedAt:     start.Add(31*time.Minute + 4*time.Second),
		Duration:    31*time.Minute + 4*time.Second,
		GameMode:    GameModeClassic,
		GameType:    GameTypeMatched,
		Queue:       QueueRankedSolo,
		Map:         MapSummonersRift,
		DataVersion: "2",
		GameVersion: "14.9.580.2108",
		Teams: map[TeamID]Team{
			TeamBlue: {
				ID:           TeamBlue,
				Bans:         []Ban{{Champion: &champion, PickTurn: 1}, {Champion: nil, PickTurn: 2}},
				Objectives:   Objectives{Baron: Objective{First: true, Kills: 1}, Tower: Objective{Kills: 9}},
				Participants: []Participant{blue},
			},
			TeamRed: {
				ID:           TeamRed,
				Bans:         []Ban{},
				Participants: []Participant{red},
			},
		},
		WinningTeam: TeamBlue,
	}
}

func TestEncodeDecode_RoundTripNativeTime(t *testing.T) {
	t.Parallel()

	m := sampleMatch()
	got, err := DecodeDocument(Encode(m, NativeTime{}), NativeTime{})
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, m)
	}
}

func TestEncodeDecode_RoundTripEpochMillisThroughJSON(t *testing.T) {
	t.Parallel()

	m := sampleMatch()
	raw, err := sonic.Marshal(Encode(m, EpochMillis{}))
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}

	var doc Document[int64]
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	got, err := DecodeDocument(doc, EpochMillis{})
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, m)
	}
}

func TestEncode_OnlyPresentTeamsAreKeyed(t *testing.T) {
	t.Parallel()

	m := sampleMatch()
	delete(m.Teams, TeamRed)

	doc := Encode(m, EpochMillis{})
	if len(doc.Teams) != 1 {
		t.Fatalf("expected one team key, got %d", len(doc.Teams))
	}
	if _, ok := doc.Teams["100"]; !ok {
		t.Fatalf("expected team key 100, got %+v", doc.Teams)
	}
	if doc.DurationMs != (31*time.Minute + 4*time.Second).Milliseconds() {
		t.Fatalf("unexpected duration ms: %d", doc.DurationMs)
	}
}

func TestEncode_OmitsAbsentLegacySummonerName(t *testing.T) {
	t.Parallel()

	m := sampleMatch()
	raw, err := sonic.Marshal(Encode(m, EpochMillis{}))
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}

	var generic map[string]any
	if err := sonic.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	teams := generic["teams"].(map[string]any)
	red := teams["200"].(map[string]any)["participants"].([]any)[0].(map[string]any)
	if _, ok := red["summonerName"]; ok {
		t.Fatalf("expected summonerName to be omitted, got %v", red["summonerName"])
	}
	blue := teams["100"].(map[string]any)["participants"].([]any)[0].(map[string]any)
	if blue["summonerName"] != "Faker" {
		t.Fatalf("expected summonerName Faker, got %v", blue["summonerName"])
	}
}

func TestDecodeDocument_OlderDocumentWithoutOptionalFields(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"id": 42, "platform": "NA1",
		"gameCreation": 1600000000000, "gameStartTimestamp": 1600000005000, "gameEndTimestamp": 1600001805000,
		"gameDuration": 1800000, "gameMode": "CLASSIC", "gameType": "MATCHED_GAME", "queueId": 420, "mapId": 11,
		"dataVersion": "2", "gameVersion": "10.19.1", "winningTeam": 200,
		"teams": {"200": {"bans": [], "objectives": {}, "participants": [{"participantId": 6, "puuid": "p6", "teamId": 200, "lane": "BOTTOM", "role": "DUO_CARRY"}]}}
	}`)

	var doc Document[int64]
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := DecodeDocument(doc, EpochMillis{})
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}

	team, ok := got.Team(TeamRed)
	if !ok || len(team.Participants) != 1 {
		t.Fatalf("expected red team with one participant, got %+v", got.Teams)
	}
	p := team.Participants[0]
	if p.SummonerName != nil || p.RiotIDGameName != nil || p.TeamPosition != nil {
		t.Fatalf("expected absent optional fields to stay nil, got %+v", p)
	}
	if got.Duration != 30*time.Minute {
		t.Fatalf("unexpected duration: %s", got.Duration)
	}
	if !got.StartedAt.Equal(time.UnixMilli(1600000005000)) {
		t.Fatalf("unexpected start: %s", got.StartedAt)
	}
}

func TestDecodeDocument_RejectsUnknownTeamKey(t *testing.T) {
	t.Parallel()

	doc := Encode(sampleMatch(), NativeTime{})
	doc.Teams["300"] = TeamDocument{}

	if _, err := DecodeDocument(doc, NativeTime{}); err == nil {
		t.Fatalf("expected error for team key 300")
	}
}

func TestDecodeDocument_RejectsUnknownPlatform(t *testing.T) {
	t.Parallel()

	doc := Encode(sampleMatch(), NativeTime{})
	doc.Platform = "PBE1"

	if _, err := DecodeDocument(doc, NativeTime{}); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}
