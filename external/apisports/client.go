package apisports

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/pickemhq/pickem-api/internal/platform/logging"
	"github.com/pickemhq/pickem-api/internal/platform/resilience"
	"github.com/pickemhq/pickem-api/internal/usecase"
)

const (
	defaultBaseURL = "https://v1.american-football.api-sports.io"
	nflLeagueID    = 1
)

var errAPISportsTransient = crerr.New("apisports transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches NFL game results from the API-SPORTS american-football API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchGamesByWeek returns every NFL game of the given season week. Scores
// stay nil until the provider reports the game as finished.
func (c *Client) FetchGamesByWeek(ctx context.Context, season, week int) ([]usecase.ExternalGame, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}
	if week <= 0 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	query := map[string]string{
		"league": strconv.Itoa(nflLeagueID),
		"season": strconv.Itoa(season),
		"week":   strconv.Itoa(week),
	}

	var envelope gamesEnvelope
	if err := c.doJSON(ctx, "/games", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch games season=%d week=%d: %w", season, week, err)
	}

	out := make([]usecase.ExternalGame, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		mapped, ok := mapGame(item, week)
		if !ok {
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "apisports circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-apisports-key", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPISportsTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errAPISportsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPISportsTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "apisports request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapGame(item gameItem, week int) (usecase.ExternalGame, bool) {
	if item.Game.ID <= 0 {
		return usecase.ExternalGame{}, false
	}

	out := usecase.ExternalGame{
		ExternalID: item.Game.ID,
		Week:       week,
		HomeTeam:   strings.TrimSpace(item.Teams.Home.Name),
		AwayTeam:   strings.TrimSpace(item.Teams.Away.Name),
	}
	if item.Game.Date.Timestamp > 0 {
		out.KickoffAt = time.Unix(item.Game.Date.Timestamp, 0).UTC()
	}

	// Scores count only once the game is over; in-progress totals would
	// otherwise score picks on a live game.
	if isFinishedStatus(item.Game.Status.Short) {
		out.HomeScore = item.Scores.Home.Total
		out.AwayScore = item.Scores.Away.Total
	}
	return out, true
}

func isFinishedStatus(short string) bool {
	switch strings.ToUpper(strings.TrimSpace(short)) {
	case "FT", "AOT", "OT":
		return true
	default:
		return false
	}
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errAPISportsTransient)
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

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

type gamesEnvelope struct {
	Response []gameItem `json:"response"`
}

type gameItem struct {
	Game struct {
		ID   int64 `json:"id"`
		Date struct {
			Timestamp int64 `json:"timestamp"`
		} `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"game"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Scores struct {
		Home scoreRef `json:"home"`
		Away scoreRef `json:"away"`
	} `json:"scores"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type scoreRef struct {
	Total *int `json:"total"`
}
