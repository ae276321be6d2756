package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	qb "github.com/riskibarqy/lol-companion/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) FindByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select(qb.ColumnsOf(matchTableModel{})...).From(matchesTable).
		Where(qb.Eq("match_id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("match id=%d: %w", id, err)
	}
	return item, true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	row, err := toMatchTableModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(matchesTable, row, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: id=%d", match.ErrDuplicateMatch, item.ID)
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}
