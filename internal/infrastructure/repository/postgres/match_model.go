package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

const matchesTable = "matches"

// matchTableModel keeps a few columns for ad-hoc queries; the document
// column is the source of truth.
type matchTableModel struct {
	MatchID      int64     `db:"match_id"`
	Platform     string    `db:"platform"`
	QueueID      int       `db:"queue_id"`
	GameCreation time.Time `db:"game_creation"`
	Document     string    `db:"document"`
}

func toMatchTableModel(item match.Match) (matchTableModel, error) {
	body, err := sonic.Marshal(match.Encode(item, match.EpochMillis{}))
	if err != nil {
		return matchTableModel{}, fmt.Errorf("encode match document: %w", err)
	}

	return matchTableModel{
		MatchID:      item.ID,
		Platform:     item.Platform.String(),
		QueueID:      int(item.Queue),
		GameCreation: item.CreatedAt.UTC(),
		Document:     string(body),
	}, nil
}

func (m matchTableModel) toDomain() (match.Match, error) {
	var doc match.Document[int64]
	if err := sonic.UnmarshalString(m.Document, &doc); err != nil {
		return match.Match{}, fmt.Errorf("decode match document: %w", err)
	}
	return match.DecodeDocument(doc, match.EpochMillis{})
}
