package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckNewerVersion(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0", "html_url": "https://github.com/matheuskafuri/fng/releases/tag/v1.2.0"}`)

	res, err := Check(context.Background(), srv.URL, "v1.1.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res == nil || res.LatestVersion != "1.2.0" {
		t.Fatalf("expected 1.2.0, got %+v", res)
	}
	if res.URL == "" {
		t.Error("expected release url")
	}
}

func TestCheckUpToDate(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name": "v1.1.0"}`)

	res, err := Check(context.Background(), srv.URL, "1.1.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result when up to date, got %+v", res)
	}
}

func TestCheckStatusError(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, `{"message": "Not Found"}`)

	if _, err := Check(context.Background(), srv.URL, "1.0.0"); err == nil {
		t.Error("expected error for 404")
	}
}
