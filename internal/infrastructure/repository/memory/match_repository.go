package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

// MatchRepository keeps encoded match documents in process. The id map acts
// as the unique index.
type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]match.Document[time.Time]
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items: make(map[int64]match.Document[time.Time]),
	}
}

func (r *MatchRepository) FindByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	doc, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return match.Match{}, false, nil
	}

	item, err := match.DecodeDocument(doc, match.NativeTime{})
	if err != nil {
		return match.Match{}, false, fmt.Errorf("decode stored match id=%d: %w", id, err)
	}
	return item, true, nil
}

func (r *MatchRepository) Insert(_ context.Context, item match.Match) error {
	doc := match.Encode(item, match.NativeTime{})

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("%w: id=%d", match.ErrDuplicateMatch, item.ID)
	}
	r.items[item.ID] = doc
	return nil
}

// Len reports how many documents are stored.
func (r *MatchRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
