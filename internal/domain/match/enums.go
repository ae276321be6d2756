package match

import (
	"fmt"
	"strconv"
)

type TeamID int

const (
	TeamBlue TeamID = 100
	TeamRed  TeamID = 200
)

func (t TeamID) Valid() bool {
	return t == TeamBlue || t == TeamRed
}

// Key is the document map key for the team, "100" or "200".
func (t TeamID) Key() string {
	return strconv.Itoa(int(t))
}

func ParseTeamKey(key string) (TeamID, error) {
	value, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("invalid team key %q: %w", key, err)
	}
	team := TeamID(value)
	if !team.Valid() {
		return 0, fmt.Errorf("invalid team key %q", key)
	}
	return team, nil
}

type ChampionID int

type GameMode string

const (
	GameModeClassic      GameMode = "CLASSIC"
	GameModeARAM         GameMode = "ARAM"
	GameModeURF          GameMode = "URF"
	GameModeOneForAll    GameMode = "ONEFORALL"
	GameModeNexusBlitz   GameMode = "NEXUSBLITZ"
	GameModeUltBook      GameMode = "ULTBOOK"
	GameModeCherry       GameMode = "CHERRY"
	GameModeTutorial     GameMode = "TUTORIAL"
	GameModePracticeTool GameMode = "PRACTICETOOL"
	GameModeSwiftplay    GameMode = "SWIFTPLAY"
)

var knownGameModes = map[GameMode]struct{}{
	GameModeClassic:      {},
	"ODIN":               {},
	GameModeARAM:         {},
	GameModeTutorial:     {},
	GameModeURF:          {},
	"DOOMBOTSTEEMO":      {},
	GameModeOneForAll:    {},
	"ASCENSION":          {},
	"FIRSTBLOOD":         {},
	"KINGPORO":           {},
	"SIEGE":              {},
	"ASSASSINATE":        {},
	"ARSR":               {},
	"DARKSTAR":           {},
	"STARGUARDIAN":       {},
	"PROJECT":            {},
	"GAMEMODEX":          {},
	"ODYSSEY":            {},
	GameModeNexusBlitz:   {},
	GameModeUltBook:      {},
	GameModeCherry:       {},
	"TUTORIAL_MODULE_1":  {},
	"TUTORIAL_MODULE_2":  {},
	"TUTORIAL_MODULE_3":  {},
	GameModePracticeTool: {},
	"STRAWBERRY":         {},
	GameModeSwiftplay:    {},
	"BRAWL":              {},
}

func (m GameMode) Known() bool {
	_, ok := knownGameModes[m]
	return ok
}

type GameType string

const (
	GameTypeCustom   GameType = "CUSTOM_GAME"
	GameTypeTutorial GameType = "TUTORIAL_GAME"
	GameTypeMatched  GameType = "MATCHED_GAME"
)

func (t GameType) Known() bool {
	switch t {
	case GameTypeCustom, GameTypeTutorial, GameTypeMatched:
		return true
	default:
		return false
	}
}

type Queue int

const (
	QueueCustom       Queue = 0
	QueueDraftPick    Queue = 400
	QueueRankedSolo   Queue = 420
	QueueBlindPick    Queue = 430
	QueueRankedFlex   Queue = 440
	QueueARAM         Queue = 450
	QueueQuickplay    Queue = 490
	QueueClash        Queue = 700
	QueueARAMClash    Queue = 720
	QueueCoopIntro    Queue = 870
	QueueCoopBeginner Queue = 880
	QueueCoopInter    Queue = 890
	QueueURF          Queue = 900
	QueueArena        Queue = 1700
	QueueSwiftplay    Queue = 480
)

var knownQueues = map[Queue]struct{}{
	QueueCustom: {}, 72: {}, 73: {}, 75: {}, 76: {}, 78: {}, 83: {}, 98: {}, 100: {},
	310: {}, 313: {}, 317: {}, 318: {}, 325: {},
	QueueDraftPick: {}, QueueRankedSolo: {}, QueueBlindPick: {}, QueueRankedFlex: {},
	QueueARAM: {}, QueueSwiftplay: {}, QueueQuickplay: {},
	600: {}, 610: {}, QueueClash: {}, QueueARAMClash: {},
	830: {}, 840: {}, 850: {}, QueueCoopIntro: {}, QueueCoopBeginner: {}, QueueCoopInter: {},
	QueueURF: {}, 920: {}, 940: {}, 950: {}, 960: {}, 980: {}, 990: {},
	1000: {}, 1010: {}, 1020: {}, 1030: {}, 1040: {}, 1050: {}, 1060: {}, 1070: {},
	1090: {}, 1100: {}, 1110: {}, 1111: {}, 1200: {}, 1210: {}, 1300: {}, 1400: {},
	QueueArena: {}, 1710: {}, 1810: {}, 1820: {}, 1830: {}, 1840: {}, 1900: {},
	2000: {}, 2010: {}, 2020: {}, 2300: {}, 2400: {}, 3100: {},
}

func (q Queue) Known() bool {
	_, ok := knownQueues[q]
	return ok
}

type MapID int

const (
	MapSummonersRift MapID = 11
	MapHowlingAbyss  MapID = 12
	MapArena         MapID = 30
)

var knownMaps = map[MapID]struct{}{
	1: {}, 2: {}, 3: {}, 4: {}, 8: {}, 10: {},
	MapSummonersRift: {}, MapHowlingAbyss: {},
	14: {}, 16: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	MapArena: {}, 35: {},
}

func (m MapID) Known() bool {
	_, ok := knownMaps[m]
	return ok
}

type Lane string

const (
	LaneTop    Lane = "TOP"
	LaneJungle Lane = "JUNGLE"
	LaneMiddle Lane = "MIDDLE"
	LaneBottom Lane = "BOTTOM"
	LaneNone   Lane = "NONE"
)

func (l Lane) Known() bool {
	switch l {
	case LaneTop, LaneJungle, LaneMiddle, LaneBottom, LaneNone:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleNone       Role = "NONE"
	RoleSolo       Role = "SOLO"
	RoleCarry      Role = "CARRY"
	RoleSupport    Role = "SUPPORT"
	RoleDuo        Role = "DUO"
	RoleDuoCarry   Role = "DUO_CARRY"
	RoleDuoSupport Role = "DUO_SUPPORT"
)

func (r Role) Known() bool {
	switch r {
	case RoleNone, RoleSolo, RoleCarry, RoleSupport, RoleDuo, RoleDuoCarry, RoleDuoSupport:
		return true
	default:
		return false
	}
}

// Position is the individual or team position of a participant. Riot reports
// an empty string for modes without positions and "Invalid" when it could not
// infer one.
type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JUNGLE"
	PositionMiddle  Position = "MIDDLE"
	PositionBottom  Position = "BOTTOM"
	PositionUtility Position = "UTILITY"
	PositionInvalid Position = "Invalid"
	PositionNone    Position = ""
)

func (p Position) Known() bool {
	switch p {
	case PositionTop, PositionJungle, PositionMiddle, PositionBottom, PositionUtility, PositionInvalid, PositionNone:
		return true
	default:
		return false
	}
}
