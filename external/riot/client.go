package riot

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
	"github.com/riskibarqy/lol-companion/internal/platform/resilience"
	"github.com/riskibarqy/lol-companion/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURLTemplate is expanded with the routing region.
	DefaultBaseURLTemplate = "https://{region}.api.riotgames.com"

	matchPath         = "/lol/match/v5/matches/%s_%d"
	tokenHeader       = "X-Riot-Token"
	maxBodyBytes      = 6 << 20
	maxRetryAfter     = 30 * time.Second
	defaultBackoff    = time.Second
	defaultTimeout    = 20 * time.Second
	regionPlaceholder = "{region}"
)

var errRiotTransient = crerr.New("riot transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURLTemplate string
	Token           string
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient      *http.Client
	baseURLTemplate string
	token           string
	maxRetries      int
	retryBackoff    time.Duration
	logger          *logging.Logger
	breaker         *resilience.CircuitBreaker
	flight          singleflight.Group
}

type fetchResult struct {
	body  []byte
	found bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	template := strings.TrimRight(strings.TrimSpace(cfg.BaseURLTemplate), "/")
	if template == "" {
		template = DefaultBaseURLTemplate
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Client{
		httpClient:      httpClient,
		baseURLTemplate: template,
		token:           strings.TrimSpace(cfg.Token),
		maxRetries:      max(cfg.MaxRetries, 0),
		retryBackoff:    backoff,
		logger:          logger.Named("riot"),
		breaker:         resilience.FromConfig(cfg.CircuitBreaker),
	}
}

// FetchMatch returns the raw match-v5 payload for gameID on platform.
// A 404 from upstream is reported as (nil, false, nil).
func (c *Client) FetchMatch(ctx context.Context, platform match.Platform, gameID int64) ([]byte, bool, error) {
	region, ok := RegionFor(platform)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", match.ErrUnknownPlatform, platform)
	}
	if gameID <= 0 {
		return nil, false, fmt.Errorf("game id must be greater than zero")
	}

	fullURL := strings.ReplaceAll(c.baseURLTemplate, regionPlaceholder, region) +
		fmt.Sprintf(matchPath, platform, gameID)

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(fullURL, func() (any, error) {
		var result fetchResult
		execErr := c.breaker.Execute(func() error {
			body, found, reqErr := c.executeRequest(flightCtx, fullURL)
			result = fetchResult{body: body, found: found}
			return reqErr
		}, isRiotCircuitFailure)
		return result, execErr
	})

	var out any
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if stderrors.Is(res.Err, resilience.ErrCircuitOpen) {
				c.logger.WarnContext(ctx, "riot circuit breaker rejected request", "state", c.breaker.State(), "platform", platform)
				return nil, false, fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
			}
			return nil, false, res.Err
		}
		out = res.Val
	}

	result, ok := out.(fetchResult)
	if !ok {
		return nil, false, fmt.Errorf("unexpected response payload type %T", out)
	}
	return result.body, result.found, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, bool, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, false, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(tokenHeader, c.token)

		backoff := time.Duration(attempt+1) * c.retryBackoff
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errRiotTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errRiotTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, true, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, false, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errRiotTransient, resp.StatusCode, abbreviateBody(raw))
				if wait, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
					backoff = wait
				}
			default:
				return nil, false, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "riot request failed", "url", fullURL, "error", lastErr)
	return nil, false, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, lastErr)
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(value string) (time.Duration, bool) {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return min(time.Duration(seconds)*time.Second, maxRetryAfter), true
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

// isRiotCircuitFailure counts provider failures only, never caller cancellation.
func isRiotCircuitFailure(err error) bool {
	if err == nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return stderrors.Is(err, errRiotTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
