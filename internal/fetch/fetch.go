package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/matheuskafuri/fng/internal/series"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrStatus is wrapped by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// Fetcher returns the index history from start to the present.
type Fetcher interface {
	Fetch(ctx context.Context, start time.Time) ([]series.Observation, error)
}

type Client struct {
	baseURL    string
	userAgents []string
	http       *http.Client
	log        *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgents sets the pool a User-Agent header is picked from per request.
func WithUserAgents(agents []string) Option {
	return func(c *Client) { c.userAgents = agents }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// payload mirrors the parts of the graphdata response we read. x and y arrive
// as either JSON numbers or numeric strings; decimal accepts both.
type payload struct {
	Historical struct {
		Data []point `json:"data"`
	} `json:"fear_and_greed_historical"`
}

type point struct {
	X decimal.Decimal `json:"x"`
	Y decimal.Decimal `json:"y"`
}

func (c *Client) Fetch(ctx context.Context, start time.Time) ([]series.Observation, error) {
	url := c.baseURL + "/" + start.Format(series.DateLayout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if ua := c.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching index history", zap.String("url", url))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching %s: %w %d: %s", url, ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out, err := toObservations(p.Historical.Data)
	if err != nil {
		return nil, err
	}
	c.log.Debug("fetched index history", zap.Int("observations", len(out)))
	return out, nil
}

func (c *Client) userAgent() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	return c.userAgents[rand.Intn(len(c.userAgents))]
}

var thousand = decimal.NewFromInt(1000)

func toObservations(points []point) ([]series.Observation, error) {
	out := make([]series.Observation, 0, len(points))
	for i, pt := range points {
		secs := pt.X.Div(thousand).Floor().IntPart()
		value := pt.Y.Round(0).IntPart()
		if value < 0 || value > 100 {
			return nil, fmt.Errorf("point %d: score %s out of range [0,100]", i, pt.Y)
		}
		out = append(out, series.Observation{
			Date:  series.Day(time.Unix(secs, 0).UTC()),
			Value: int(value),
		})
	}
	return out, nil
}
