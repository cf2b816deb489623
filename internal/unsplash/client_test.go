package unsplash

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/five82/wallflower/internal/wallpaper"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(serverURL, "test-key", Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestFetchRandom_SendsQueryAndHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/random" {
			t.Errorf("path = %q, want /photos/random", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("count"); got != "15" {
			t.Errorf("count = %q, want 15", got)
		}
		if got := q.Get("query"); got != "wallpaper" {
			t.Errorf("query = %q, want wallpaper", got)
		}
		if got := q.Get("orientation"); got != "portrait" {
			t.Errorf("orientation = %q, want portrait", got)
		}
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("Authorization = %q, want Client-ID test-key", got)
		}
		if got := r.Header.Get("Accept-Version"); got != "v1" {
			t.Errorf("Accept-Version = %q, want v1", got)
		}
		if got := r.Header.Get("X-Request-ID"); got == "" {
			t.Errorf("X-Request-ID missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","description":"Misty hills","urls":{"regular":"https://r/a","full":"https://f/a"},"user":{"name":"Ana","username":"ana"}},
			{"id":"b","description":null,"alt_description":"green leaf","urls":{"regular":"https://r/b","full":"https://f/b"},"user":{"name":"","username":"bo"}}
		]`))
	}))
	t.Cleanup(server.Close)

	records, err := newTestClient(t, server.URL).FetchRandom(context.Background(), 15, 2)
	if err != nil {
		t.Fatalf("FetchRandom returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	want := wallpaper.Record{
		ID:           "a",
		ImageURL:     "https://r/a",
		FullImageURL: "https://f/a",
		AuthorName:   "Ana",
		AuthorHandle: "ana",
		Description:  "Misty hills",
	}
	if records[0] != want {
		t.Fatalf("records[0] = %+v, want %+v", records[0], want)
	}
	if records[1].Description != "green leaf" {
		t.Fatalf("records[1].Description = %q, want alt description", records[1].Description)
	}
}

func TestFetchRandom_ClampsCount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("count"); got != "30" {
			t.Errorf("count = %q, want 30", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	if _, err := newTestClient(t, server.URL).FetchRandom(context.Background(), 100, 1); err != nil {
		t.Fatalf("FetchRandom returned error: %v", err)
	}
}

func TestSearch_ReadsResultsEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("path = %q, want /search/photos", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "night sky" || q.Get("per_page") != "15" || q.Get("page") != "3" {
			t.Errorf("query string = %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"total":1,"total_pages":1,"results":[{"id":"s1","urls":{"regular":"https://r/s1","full":"https://f/s1"},"user":{"name":"Sam","username":"sam"}}]}`))
	}))
	t.Cleanup(server.Close)

	records, err := newTestClient(t, server.URL).Search(context.Background(), " night sky ", 15, 3)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "s1" {
		t.Fatalf("records = %+v, want [s1]", records)
	}
}

func TestSearch_EmptyQueryFails(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://127.0.0.1:1")
	if _, err := client.Search(context.Background(), "  ", 15, 1); err == nil {
		t.Fatalf("Search returned nil error for blank query")
	}
}

func TestClient_ErrorStatusIsNetworkFailure(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError, http.StatusMultipleChoices} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := newTestClient(t, server.URL).FetchRandom(context.Background(), 10, 1)
		server.Close()
		if !errors.Is(err, wallpaper.ErrNetwork) {
			t.Fatalf("status %d: err = %v, want ErrNetwork", status, err)
		}
	}
}

func TestClient_BadJSONIsNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops"`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server.URL).Search(context.Background(), "x", 15, 1)
	if !errors.Is(err, wallpaper.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestClient_TransportErrorIsNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).FetchRandom(context.Background(), 1, 1)
	if !errors.Is(err, wallpaper.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestParseBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", DefaultBaseURL},
		{"api.example.com", "https://api.example.com"},
		{"http://127.0.0.1:8080/ignored?x=1", "http://127.0.0.1:8080"},
	}
	for _, tc := range cases {
		got, err := parseBaseURL(tc.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) returned error: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tc.in, got.String(), tc.want)
		}
	}
}
