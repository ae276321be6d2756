package rawmatch

import (
	"time"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

// NormalizeOptions tunes policies that upstream data does not settle.
type NormalizeOptions struct {
	// DefaultWinningTeam is used when no team is flagged as winner.
	// Zero selects team 100.
	DefaultWinningTeam match.TeamID
}

// Normalize derives the canonical match from a decoded payload. It never
// fails on a payload accepted by Decode.
func Normalize(platform match.Platform, raw RawMatch, opts NormalizeOptions) match.Match {
	info := raw.Info
	out := match.Match{
		Platform:    platform,
		ID:          info.GameID,
		CreatedAt:   timestampOrZero(info.GameCreation),
		StartedAt:   timestampOrZero(info.GameStartTimestamp),
		GameMode:    info.GameMode,
		GameType:    info.GameType,
		Queue:       info.QueueID,
		Map:         info.MapID,
		DataVersion: raw.Metadata.DataVersion,
		GameVersion: info.GameVersion,
	}
	out.Duration, out.EndedAt = reconcileTiming(info, out.StartedAt)

	members := make(map[match.TeamID][]match.Participant, 2)
	for _, p := range info.Participants {
		item := normalizeParticipant(p)
		members[item.TeamID] = append(members[item.TeamID], item)
	}

	out.Teams = make(map[match.TeamID]match.Team, len(info.Teams))
	for _, team := range info.Teams {
		id := canonicalTeamID(team.TeamID)
		if !id.Valid() {
			continue
		}
		participants := members[id]
		if participants == nil {
			participants = []match.Participant{}
		}
		out.Teams[id] = match.Team{
			ID:           id,
			Bans:         normalizeBans(team.Bans),
			Objectives:   normalizeObjectives(team.Objectives),
			Participants: participants,
		}
	}

	out.WinningTeam = resolveWinner(info.Teams, opts.DefaultWinningTeam)
	return out
}

// reconcileTiming picks the unit of gameDuration. Payloads with an explicit
// end timestamp report seconds; older ones report milliseconds and have no
// end, which is rebuilt from the longest time played.
func reconcileTiming(info Info, start time.Time) (time.Duration, time.Time) {
	var rawDuration int64
	if info.GameDuration != nil {
		rawDuration = *info.GameDuration
	}

	if info.GameEndTimestamp != nil {
		return time.Duration(rawDuration) * time.Second, info.GameEndTimestamp.Time
	}

	var longest time.Duration
	for _, p := range info.Participants {
		if played := p.TimePlayed.Duration(); played > longest {
			longest = played
		}
	}
	return time.Duration(rawDuration) * time.Millisecond, start.Add(longest)
}

// canonicalTeamID maps the team id 0 some game modes send onto team 200.
// A missing id yields the invalid zero TeamID.
func canonicalTeamID(id *int) match.TeamID {
	switch {
	case id == nil:
		return 0
	case *id == 0:
		return match.TeamRed
	default:
		return match.TeamID(*id)
	}
}

func resolveWinner(teams []Team, fallback match.TeamID) match.TeamID {
	for _, team := range teams {
		if id := canonicalTeamID(team.TeamID); team.Win && id.Valid() {
			return id
		}
	}
	if fallback.Valid() {
		return fallback
	}
	return match.TeamBlue
}

func normalizeBans(bans []Ban) []match.Ban {
	out := make([]match.Ban, 0, len(bans))
	for _, ban := range bans {
		item := match.Ban{PickTurn: ban.PickTurn}
		if ban.ChampionID != nil && *ban.ChampionID >= 0 {
			champion := *ban.ChampionID
			item.Champion = &champion
		}
		out = append(out, item)
	}
	return out
}

func normalizeObjectives(o Objectives) match.Objectives {
	return match.Objectives{
		Baron:      match.Objective(o.Baron),
		Champion:   match.Objective(o.Champion),
		Dragon:     match.Objective(o.Dragon),
		Inhibitor:  match.Objective(o.Inhibitor),
		RiftHerald: match.Objective(o.RiftHerald),
		Tower:      match.Objective(o.Tower),
	}
}

func normalizeParticipant(p Participant) match.Participant {
	return match.Participant{
		ParticipantID:      p.ParticipantID,
		PUUID:              p.PUUID,
		SummonerName:       clonePtr(p.SummonerName),
		RiotIDGameName:     clonePtr(p.RiotIDGameName),
		RiotIDTagline:      clonePtr(p.RiotIDTagline),
		TeamID:             canonicalTeamID(p.TeamID),
		ChampionID:         p.ChampionID,
		ChampionName:       p.ChampionName,
		ChampionLevel:      p.ChampionLevel,
		IndividualPosition: clonePtr(p.IndividualPosition),
		TeamPosition:       clonePtr(p.TeamPosition),
		Lane:               p.Lane,
		Role:               p.Role,
		TimePlayed:         p.TimePlayed.Duration(),
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

		Items:       [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6},
		Summoner1ID: p.Summoner1ID,
		Summoner2ID: p.Summoner2ID,
		Perks:       normalizePerks(p.Perks),

		GameEndedInSurrender:      p.GameEndedInSurrender,
		GameEndedInEarlySurrender: p.GameEndedInEarlySurrender,
	}
}

func normalizePerks(p Perks) match.Perks {
	out := match.Perks{
		StatPerks: match.StatPerks(p.StatPerks),
		Styles:    make([]match.PerkStyle, 0, len(p.Styles)),
	}
	for _, style := range p.Styles {
		selections := make([]match.PerkSelection, 0, len(style.Selections))
		for _, sel := range style.Selections {
			selections = append(selections, match.PerkSelection(sel))
		}
		out.Styles = append(out.Styles, match.PerkStyle{
			Description: style.Description,
			Style:       style.Style,
			Selections:  selections,
		})
	}
	return out
}

func timestampOrZero(ts *Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
