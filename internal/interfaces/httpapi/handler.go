package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
	"github.com/riskibarqy/lol-companion/internal/usecase"
)

// MatchFinder is the match use case as seen by the HTTP layer.
type MatchFinder interface {
	FindByID(ctx context.Context, platform match.Platform, gameID int64) (match.Match, bool, error)
	FindMany(ctx context.Context, platform match.Platform, ids []int64) ([]usecase.MatchLookup, error)
}

type Handler struct {
	matchService MatchFinder
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(matchService MatchFinder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService: matchService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
