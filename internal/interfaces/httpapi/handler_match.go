package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/usecase"
)

type matchBatchQuery struct {
	Platform string  `validate:"required"`
	IDs      []int64 `validate:"required,min=1,max=20,dive,gt=0"`
}

type matchLookupDTO struct {
	GameID int64                  `json:"gameId"`
	Found  bool                   `json:"found"`
	Match  *match.Document[int64] `json:"match,omitempty"`
	Error  *googleErrorItem       `json:"error,omitempty"`
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	platform, err := match.ParsePlatform(r.PathValue("platform"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	gameID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("gameID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: game id must be an integer", usecase.ErrInvalidInput))
		return
	}

	item, found, err := h.matchService.FindByID(ctx, platform, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "find match failed", "platform", platform, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: match %s_%d", usecase.ErrNotFound, platform, gameID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, match.Encode(item, match.EpochMillis{}))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	ids, err := parseGameIDs(r.URL.Query().Get("ids"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query := matchBatchQuery{Platform: r.PathValue("platform"), IDs: ids}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	platform, err := match.ParsePlatform(query.Platform)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	lookups, err := h.matchService.FindMany(ctx, platform, query.IDs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchLookupDTO, 0, len(lookups))
	for _, lookup := range lookups {
		item := matchLookupDTO{GameID: lookup.GameID, Found: lookup.Found}
		switch {
		case lookup.Err != nil:
			mapped := mapError(ctx, lookup.Err)
			item.Error = &googleErrorItem{Domain: errorDomain, Reason: mapped.Reason, Message: lookup.Err.Error()}
		case lookup.Found:
			doc := match.Encode(lookup.Match, match.EpochMillis{})
			item.Match = &doc
		}
		items = append(items, item)
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

// parseGameIDs reads a comma separated id list, dropping repeated ids so the
// batch limit applies to distinct matches.
func parseGameIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: ids query parameter is required", usecase.ErrInvalidInput)
	}

	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid game id %q", usecase.ErrInvalidInput, part)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
