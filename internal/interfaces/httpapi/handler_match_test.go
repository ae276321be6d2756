package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/domain/rawmatch"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
	"github.com/riskibarqy/lol-companion/internal/usecase"
)

type fakeMatchFinder struct {
	findByID func(ctx context.Context, platform match.Platform, gameID int64) (match.Match, bool, error)
	findMany func(ctx context.Context, platform match.Platform, ids []int64) ([]usecase.MatchLookup, error)
}

func (f fakeMatchFinder) FindByID(ctx context.Context, platform match.Platform, gameID int64) (match.Match, bool, error) {
	return f.findByID(ctx, platform, gameID)
}

func (f fakeMatchFinder) FindMany(ctx context.Context, platform match.Platform, ids []int64) ([]usecase.MatchLookup, error) {
	return f.findMany(ctx, platform, ids)
}

func serve(t *testing.T, finder MatchFinder, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	router := NewRouter(NewHandler(finder, logging.NewNop()), logging.NewNop(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func errorReason(body map[string]any) string {
	errorObj, _ := body["error"].(map[string]any)
	items, _ := errorObj["errors"].([]any)
	if len(items) == 0 {
		return ""
	}
	first, _ := items[0].(map[string]any)
	reason, _ := first["reason"].(string)
	return reason
}

func storedMatch(platform match.Platform, id int64) match.Match {
	return match.Match{
		Platform:    platform,
		ID:          id,
		GameMode:    match.GameModeARAM,
		Teams:       map[match.TeamID]match.Team{match.TeamBlue: {ID: match.TeamBlue, Participants: []match.Participant{}}},
		WinningTeam: match.TeamBlue,
	}
}

func TestGetMatch_ReturnsDocument(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findByID: func(_ context.Context, platform match.Platform, gameID int64) (match.Match, bool, error) {
		if platform != match.PlatformEUW1 || gameID != 42 {
			return match.Match{}, false, fmt.Errorf("unexpected args %s/%d", platform, gameID)
		}
		return storedMatch(platform, gameID), true, nil
	}}

	rec, body := serve(t, finder, "/v1/platforms/euw1/matches/42")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["platform"] != "EUW1" || data["gameMode"] != "ARAM" {
		t.Fatalf("unexpected data: %v", data)
	}
	teams, _ := data["teams"].(map[string]any)
	if _, ok := teams["100"]; !ok {
		t.Fatalf("expected team keyed by 100, got %v", teams)
	}
}

func TestGetMatch_NotFound(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findByID: func(context.Context, match.Platform, int64) (match.Match, bool, error) {
		return match.Match{}, false, nil
	}}

	rec, body := serve(t, finder, "/v1/platforms/NA1/matches/9")
	if rec.Code != http.StatusNotFound || errorReason(body) != "notFound" {
		t.Fatalf("expected 404 notFound, got %d %q", rec.Code, errorReason(body))
	}
}

func TestGetMatch_RejectsBadPath(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findByID: func(context.Context, match.Platform, int64) (match.Match, bool, error) {
		t.Errorf("service must not be called")
		return match.Match{}, false, nil
	}}

	for _, target := range []string{"/v1/platforms/XX9/matches/1", "/v1/platforms/NA1/matches/abc"} {
		rec, _ := serve(t, finder, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestGetMatch_MapsServiceErrors(t *testing.T) {
	t.Parallel()

	decodeErr := &rawmatch.DecodeError{
		MatchID: "KR_1",
		Fields:  []rawmatch.FieldError{{Path: "info.gameMode", Rule: "gamemode", Value: "NEXUS_BLITZ_2"}},
	}
	cases := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "schema mismatch", err: fmt.Errorf("decode match: %w", decodeErr), status: http.StatusBadGateway, reason: "upstreamSchemaMismatch"},
		{name: "breaker open", err: fmt.Errorf("%w: provider down", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, reason: "dependencyUnavailable"},
		{name: "store failure", err: errors.New("connection refused"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			finder := fakeMatchFinder{findByID: func(context.Context, match.Platform, int64) (match.Match, bool, error) {
				return match.Match{}, false, tc.err
			}}
			rec, body := serve(t, finder, "/v1/platforms/KR/matches/1")
			if rec.Code != tc.status || errorReason(body) != tc.reason {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.reason, rec.Code, errorReason(body))
			}
		})
	}
}

func TestGetMatch_SchemaMismatchListsFieldLocations(t *testing.T) {
	t.Parallel()

	decodeErr := &rawmatch.DecodeError{Fields: []rawmatch.FieldError{
		{Path: "info.mapId", Rule: "mapid", Value: 999},
		{Path: "info.participants[3].lane", Rule: "lane", Value: "RIVER"},
	}}
	finder := fakeMatchFinder{findByID: func(context.Context, match.Platform, int64) (match.Match, bool, error) {
		return match.Match{}, false, decodeErr
	}}

	_, body := serve(t, finder, "/v1/platforms/KR/matches/1")
	errorObj, _ := body["error"].(map[string]any)
	items, _ := errorObj["errors"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected one error item per field, got %v", items)
	}
	second, _ := items[1].(map[string]any)
	if second["location"] != "info.participants[3].lane" {
		t.Fatalf("unexpected location: %v", second["location"])
	}
}

func TestListMatches_ReturnsLookupsInOrder(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findMany: func(_ context.Context, platform match.Platform, ids []int64) ([]usecase.MatchLookup, error) {
		if len(ids) != 3 {
			return nil, fmt.Errorf("unexpected ids %v", ids)
		}
		return []usecase.MatchLookup{
			{GameID: ids[0], Found: true, Match: storedMatch(platform, ids[0])},
			{GameID: ids[1]},
			{GameID: ids[2], Err: fmt.Errorf("%w: provider down", usecase.ErrDependencyUnavailable)},
		}, nil
	}}

	rec, body := serve(t, finder, "/v1/platforms/OC1/matches?ids=5,6,7")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	items, _ := data["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %v", items)
	}
	first, _ := items[0].(map[string]any)
	if first["found"] != true || first["match"] == nil {
		t.Fatalf("unexpected first item: %v", first)
	}
	second, _ := items[1].(map[string]any)
	if second["found"] != false || second["match"] != nil || second["error"] != nil {
		t.Fatalf("unexpected second item: %v", second)
	}
	third, _ := items[2].(map[string]any)
	errItem, _ := third["error"].(map[string]any)
	if errItem["reason"] != "dependencyUnavailable" {
		t.Fatalf("unexpected third item: %v", third)
	}
}

func TestListMatches_ValidatesQuery(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findMany: func(context.Context, match.Platform, []int64) ([]usecase.MatchLookup, error) {
		t.Errorf("service must not be called")
		return nil, nil
	}}

	tooMany := "/v1/platforms/NA1/matches?ids=1"
	for i := 2; i <= 21; i++ {
		tooMany += fmt.Sprintf(",%d", i)
	}
	targets := []string{
		"/v1/platforms/NA1/matches",
		"/v1/platforms/NA1/matches?ids=1,x",
		"/v1/platforms/NA1/matches?ids=0",
		tooMany,
	}
	for _, target := range targets {
		rec, body := serve(t, finder, target)
		if rec.Code != http.StatusBadRequest || errorReason(body) != "invalidInput" {
			t.Fatalf("%s: expected 400 invalidInput, got %d %q", target, rec.Code, errorReason(body))
		}
	}
}

func TestListMatches_RepeatedIDsCountOnce(t *testing.T) {
	t.Parallel()

	var gotIDs []int64
	finder := fakeMatchFinder{findMany: func(_ context.Context, _ match.Platform, ids []int64) ([]usecase.MatchLookup, error) {
		gotIDs = ids
		out := make([]usecase.MatchLookup, 0, len(ids))
		for _, id := range ids {
			out = append(out, usecase.MatchLookup{GameID: id})
		}
		return out, nil
	}}

	target := "/v1/platforms/NA1/matches?ids=1"
	for i := 0; i < 24; i++ {
		target += ",1"
	}
	target += ",2"

	rec, _ := serve(t, finder, target)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for repeated ids, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotIDs) != 2 || gotIDs[0] != 1 || gotIDs[1] != 2 {
		t.Fatalf("unexpected ids passed to service: %v", gotIDs)
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	finder := fakeMatchFinder{findByID: func(context.Context, match.Platform, int64) (match.Match, bool, error) {
		panic("boom")
	}}

	rec, body := serve(t, finder, "/v1/platforms/NA1/matches/1")
	if rec.Code != http.StatusInternalServerError || errorReason(body) != "internalError" {
		t.Fatalf("expected 500 internalError, got %d %q", rec.Code, errorReason(body))
	}
}
