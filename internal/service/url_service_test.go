package service

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/generator"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/logger"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/model"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/store"
)

func setupTestService(t *testing.T, enabled bool) *URLService {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Output: io.Discard})
	gen := generator.New(4)
	st := store.New(
		filepath.Join(t.TempDir(), "mappings.json"),
		gen,
		store.DefaultMaxAttempts,
		log,
	)
	return NewURLService(st, gen, "http://localhost:8080", enabled, log)
}

func TestCreateShortURL_Valid(t *testing.T) {
	svc := setupTestService(t, true)

	resp, err := svc.CreateShortURL(model.ShortenRequest{
		URL: "https://example.com/some/long/path",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.HasPrefix(resp.ShortURL, "http://localhost:8080/") {
		t.Errorf("Expected short URL on configured domain, got: %s", resp.ShortURL)
	}

	code := strings.TrimPrefix(resp.ShortURL, "http://localhost:8080/")
	if len(code) != 4 {
		t.Errorf("Expected 4-char code, got: %q", code)
	}

	if resp.OriginalURL != "https://example.com/some/long/path" {
		t.Errorf("Original URL mismatch")
	}
}

func TestCreateShortURL_InvalidURL(t *testing.T) {
	svc := setupTestService(t, true)

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.com"},
		{"ftp scheme", "ftp://example.com"},
		{"just text", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateShortURL(model.ShortenRequest{URL: tt.url})
			if err == nil {
				t.Errorf("Expected error for URL: %s", tt.url)
			}
		})
	}
}

func TestCreateShortURL_Idempotent(t *testing.T) {
	svc := setupTestService(t, true)

	first, err := svc.CreateShortURL(model.ShortenRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	second, err := svc.CreateShortURL(model.ShortenRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Second create failed: %v", err)
	}

	if first.ShortURL != second.ShortURL {
		t.Errorf("Expected same short URL, got %s and %s", first.ShortURL, second.ShortURL)
	}
}

func TestResolve(t *testing.T) {
	svc := setupTestService(t, true)

	resp, err := svc.CreateShortURL(model.ShortenRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	code := strings.TrimPrefix(resp.ShortURL, "http://localhost:8080/")

	original, err := svc.Resolve(code)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if original != "https://example.com" {
		t.Errorf("Expected original URL, got: %s", original)
	}
}

func TestResolve_Miss(t *testing.T) {
	svc := setupTestService(t, true)

	tests := []struct {
		name string
		code string
	}{
		{"never issued", "zzZZ"},
		{"wrong length", "abcdefgh"},
		{"invalid characters", "a/.."},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(tt.code)
			if err != ErrURLNotFound {
				t.Errorf("Resolve(%q) = %v; want ErrURLNotFound", tt.code, err)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	svc := setupTestService(t, true)

	if st := svc.Status(); st.Mappings != 0 || st.Status != "ok" {
		t.Errorf("Expected empty ok status, got: %+v", st)
	}

	_, _ = svc.CreateShortURL(model.ShortenRequest{URL: "https://example.com/a"})
	_, _ = svc.CreateShortURL(model.ShortenRequest{URL: "https://example.com/b"})

	if st := svc.Status(); st.Mappings != 2 {
		t.Errorf("Expected 2 mappings, got: %d", st.Mappings)
	}
}

func TestShorten_Enabled(t *testing.T) {
	svc := setupTestService(t, true)

	short := svc.Shorten("https://example.com/very/long/feed/entry")
	if !strings.HasPrefix(short, "http://localhost:8080/") {
		t.Errorf("Expected shortened URL, got: %s", short)
	}
}

func TestShorten_DisabledFallback(t *testing.T) {
	svc := setupTestService(t, false)

	tests := []string{
		"https://example.com/very/long/feed/entry",
		"not even a url",
		"",
	}

	for _, input := range tests {
		if got := svc.Shorten(input); got != input {
			t.Errorf("Shorten(%q) = %q; want input unchanged when disabled", input, got)
		}
	}
}

func TestShorten_InvalidFallsBack(t *testing.T) {
	svc := setupTestService(t, true)

	// An unshortenable URL must pass through rather than break the
	// message pipeline.
	if got := svc.Shorten("not a url"); got != "not a url" {
		t.Errorf("Shorten on invalid input = %q; want passthrough", got)
	}
}
