package rawmatch

import "github.com/riskibarqy/lol-companion/internal/domain/match"

type synonymField string

const (
	synonymGameType synonymField = "gameType"
	synonymLane     synonymField = "lane"
)

// legacySynonyms rewrites short forms used by older payloads to the values
// the enums accept.
var legacySynonyms = map[synonymField]map[string]string{
	synonymGameType: {
		"CUSTOM":   string(match.GameTypeCustom),
		"MATCHED":  string(match.GameTypeMatched),
		"TUTORIAL": string(match.GameTypeTutorial),
	},
	synonymLane: {
		"MID": string(match.LaneMiddle),
		"BOT": string(match.LaneBottom),
	},
}

func canonicalValue(field synonymField, value string) string {
	if rewritten, ok := legacySynonyms[field][value]; ok {
		return rewritten
	}
	return value
}

func applySynonyms(raw *RawMatch) {
	raw.Info.GameType = match.GameType(canonicalValue(synonymGameType, string(raw.Info.GameType)))
	for i := range raw.Info.Participants {
		p := &raw.Info.Participants[i]
		p.Lane = match.Lane(canonicalValue(synonymLane, string(p.Lane)))
	}
}
