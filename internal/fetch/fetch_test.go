package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matheuskafuri/fng/internal/series"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "fear_and_greed": {"score": 61.2, "rating": "greed"},
  "fear_and_greed_historical": {
    "timestamp": 1704240000000,
    "score": 61.2,
    "data": [
      {"x": 1704067200000, "y": 20.4, "rating": "extreme fear"},
      {"x": "1704153600000", "y": "44.5", "rating": "fear"},
      {"x": 1704240000000.0, "y": 61, "rating": "greed"}
    ]
  }
}`

func day(s string) time.Time {
	t, _ := series.ParseDate(s)
	return t
}

func TestFetch(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/graphdata/", 5*time.Second, WithUserAgents([]string{"fng-test"}))
	got, err := c.Fetch(context.Background(), day("2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, "/graphdata/2024-01-01", gotPath)
	assert.Equal(t, "fng-test", gotUA)
	assert.Equal(t, []series.Observation{
		{Date: day("2024-01-01"), Value: 20},
		{Date: day("2024-01-02"), Value: 45},
		{Date: day("2024-01-03"), Value: 61},
	}, got)
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "I'm a teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), day("2024-01-01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "418")
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fear_and_greed_historical": {"data": [`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), day("2024-01-01"))
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond).Fetch(context.Background(), day("2024-01-01"))
	assert.Error(t, err)
}

func TestFetchEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fear_and_greed_historical": {"data": []}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), day("2024-01-01"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestToObservationsRounding(t *testing.T) {
	tests := []struct {
		y    string
		want int
	}{
		{"0", 0},
		{"49.5", 50},
		{"49.49", 49},
		{"99.9", 100},
		{"100", 100},
	}
	for _, tt := range tests {
		pts := []point{{X: mustDecimal(t, "1704067200000"), Y: mustDecimal(t, tt.y)}}
		got, err := toObservations(pts)
		require.NoError(t, err, tt.y)
		assert.Equal(t, tt.want, got[0].Value, "y=%s", tt.y)
	}
}

func TestToObservationsFloorsToDay(t *testing.T) {
	// 2024-01-01T23:59:59.999Z
	pts := []point{{X: mustDecimal(t, "1704153599999"), Y: mustDecimal(t, "10")}}
	got, err := toObservations(pts)
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-01"), got[0].Date)
}

func TestToObservationsOutOfRange(t *testing.T) {
	pts := []point{{X: mustDecimal(t, "1704067200000"), Y: mustDecimal(t, "100.6")}}
	_, err := toObservations(pts)
	assert.Error(t, err)
}

func TestUserAgentPool(t *testing.T) {
	c := NewClient("https://example.com", time.Second)
	assert.Empty(t, c.userAgent())

	pool := []string{"a", "b", "c"}
	c = NewClient("https://example.com", time.Second, WithUserAgents(pool))
	for i := 0; i < 20; i++ {
		assert.Contains(t, pool, c.userAgent())
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
