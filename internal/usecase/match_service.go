package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/domain/rawmatch"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
)

const (
	DefaultMatchBatchWorkers = 4
	MaxMatchBatchSize        = 20
)

// MatchFetcher reads raw match-v5 payloads from upstream. A match upstream
// does not know is reported as found=false with a nil error.
type MatchFetcher interface {
	FetchMatch(ctx context.Context, platform match.Platform, gameID int64) ([]byte, bool, error)
}

type MatchServiceConfig struct {
	DefaultWinningTeam match.TeamID
	BatchWorkers       int
}

type MatchService struct {
	repo         match.Repository
	fetcher      MatchFetcher
	logger       *logging.Logger
	normalize    rawmatch.NormalizeOptions
	batchWorkers int
}

// MatchLookup is the outcome for one id of a FindMany call.
type MatchLookup struct {
	GameID int64
	Match  match.Match
	Found  bool
	Err    error
}

func NewMatchService(repo match.Repository, fetcher MatchFetcher, logger *logging.Logger, cfg MatchServiceConfig) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.BatchWorkers
	if workers < 1 {
		workers = DefaultMatchBatchWorkers
	}

	return &MatchService{
		repo:         repo,
		fetcher:      fetcher,
		logger:       logger,
		normalize:    rawmatch.NormalizeOptions{DefaultWinningTeam: cfg.DefaultWinningTeam},
		batchWorkers: workers,
	}
}

// FindByID serves a match from the store, ingesting it from upstream on a
// miss. A stored match recorded under another platform is reported as not
// found.
func (s *MatchService) FindByID(ctx context.Context, platform match.Platform, gameID int64) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FindByID")
	defer span.End()

	if !platform.Valid() {
		return match.Match{}, false, fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, platform)
	}
	if gameID <= 0 {
		return match.Match{}, false, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	stored, exists, err := s.repo.FindByID(ctx, gameID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("find match game_id=%d: %w", gameID, err)
	}
	if exists {
		if stored.Platform != platform {
			s.logger.DebugContext(ctx, "stored match belongs to another platform",
				"game_id", gameID,
				"requested_platform", platform,
				"stored_platform", stored.Platform,
			)
			return match.Match{}, false, nil
		}
		return stored, true, nil
	}

	return s.ingest(ctx, platform, gameID)
}

func (s *MatchService) ingest(ctx context.Context, platform match.Platform, gameID int64) (match.Match, bool, error) {
	payload, found, err := s.fetcher.FetchMatch(ctx, platform, gameID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("fetch match platform=%s game_id=%d: %w", platform, gameID, err)
	}
	if !found {
		return match.Match{}, false, nil
	}

	raw, err := rawmatch.Decode(payload)
	if err != nil {
		var decodeErr *rawmatch.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.WarnContext(ctx, "upstream match payload rejected",
				"platform", platform,
				"game_id", gameID,
				"fields", decodeErr.Paths(),
			)
		}
		return match.Match{}, false, fmt.Errorf("decode match platform=%s game_id=%d: %w", platform, gameID, err)
	}

	item := rawmatch.Normalize(platform, raw, s.normalize)
	if err := s.repo.Insert(ctx, item); err != nil {
		if !errors.Is(err, match.ErrDuplicateMatch) {
			return match.Match{}, false, fmt.Errorf("insert match platform=%s game_id=%d: %w", platform, gameID, err)
		}
		s.logger.DebugContext(ctx, "match already ingested by a concurrent request", "platform", platform, "game_id", gameID)
	}

	s.logger.InfoContext(ctx, "match ingested", "platform", platform, "game_id", gameID, "queue", item.Queue)
	return item, true, nil
}

// FindMany resolves ids concurrently. Results follow the order of the first
// occurrence of each id; per-id failures are reported on the lookup.
func (s *MatchService) FindMany(ctx context.Context, platform match.Platform, ids []int64) ([]MatchLookup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FindMany")
	defer span.End()

	if !platform.Valid() {
		return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, platform)
	}
	ids = dedupeGameIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one game id is required", ErrInvalidInput)
	}
	if len(ids) > MaxMatchBatchSize {
		return nil, fmt.Errorf("%w: at most %d game ids per request", ErrInvalidInput, MaxMatchBatchSize)
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
		}
	}

	pool, err := ants.NewPool(min(s.batchWorkers, len(ids)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]MatchLookup, len(ids))
	var workers sync.WaitGroup
	for i, id := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			item, found, lookupErr := s.FindByID(ctx, platform, id)
			results[i] = MatchLookup{GameID: id, Match: item, Found: found, Err: lookupErr}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}

func dedupeGameIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
