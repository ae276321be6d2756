package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
	basecache "github.com/riskibarqy/lol-companion/internal/platform/cache"
)

// MatchRepository is a read-through cache over another match store. Stored
// matches never change, so only hits are cached; misses always reach next.
// Every caller gets its own copy of a cached match.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) FindByID(ctx context.Context, id int64) (match.Match, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchKey(id), func(ctx context.Context) (any, bool, error) {
		item, exists, err := r.next.FindByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return cachedMatchByID{value: item, exists: exists}, exists, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	if !cached.exists {
		return match.Match{}, false, nil
	}
	return cached.value.Clone(), true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Set(ctx, matchKey(item.ID), cachedMatchByID{value: item.Clone(), exists: true})
	return nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

func matchKey(id int64) string {
	return "match:id:" + strconv.FormatInt(id, 10)
}
