package service

import (
	"errors"
	"strings"
	"time"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/generator"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/logger"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/model"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/store"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/validator"
)

// Custom errors for the service layer
var (
	ErrInvalidURL         = errors.New("invalid URL format")
	ErrEmptyURL           = errors.New("URL cannot be empty")
	ErrURLNotFound        = errors.New("short URL not found")
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
)

// URLService handles business logic for URL operations
type URLService struct {
	store     *store.MappingStore
	gen       *generator.Generator
	validator *validator.URLValidator
	domain    string // e.g., "http://localhost:8080"
	enabled   bool
	startedAt time.Time
	log       *logger.Logger
}

// NewURLService creates a new service instance
func NewURLService(st *store.MappingStore, gen *generator.Generator, domain string, enabled bool, log *logger.Logger) *URLService {
	return &URLService{
		store:     st,
		gen:       gen,
		validator: validator.NewURLValidator(),
		domain:    strings.TrimRight(domain, "/"),
		enabled:   enabled,
		startedAt: time.Now(),
		log:       log,
	}
}

// CreateShortURL handles the core business logic of shortening a URL
func (s *URLService) CreateShortURL(req model.ShortenRequest) (*model.ShortenResponse, error) {
	if err := s.validateURL(req.URL); err != nil {
		return nil, err
	}

	code, err := s.store.Create(req.URL)
	if err != nil {
		if err == store.ErrCodeSpaceExhausted {
			return nil, ErrCodeSpaceExhausted
		}
		return nil, err
	}

	return &model.ShortenResponse{
		ShortURL:    s.domain + "/" + code,
		OriginalURL: req.URL,
	}, nil
}

// Resolve finds the original URL for a code. Malformed or unknown codes
// are both plain misses.
func (s *URLService) Resolve(code string) (string, error) {
	// Codes outside the alphabet or length can never have been issued
	if !s.gen.Valid(code) {
		return "", ErrURLNotFound
	}

	originalURL, err := s.store.LookupCode(code)
	if err == store.ErrNotFound {
		return "", ErrURLNotFound
	}
	if err != nil {
		return "", err
	}
	return originalURL, nil
}

// Status reports the mapping count and uptime. Read-only, never fails.
func (s *URLService) Status() *model.Status {
	return &model.Status{
		Status:   "ok",
		Mappings: s.store.Count(),
		Uptime:   time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// Shorten is the interface the delivery pipeline calls for every long
// URL in an outbound message. It never fails: when the service is
// disabled or shortening errors, the original URL passes through
// unchanged.
func (s *URLService) Shorten(rawURL string) string {
	if !s.enabled {
		return rawURL
	}

	resp, err := s.CreateShortURL(model.ShortenRequest{URL: rawURL})
	if err != nil {
		s.log.Warn("url left unshortened", "url", rawURL, "error", err.Error())
		return rawURL
	}
	return resp.ShortURL
}

func (s *URLService) validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ErrEmptyURL
	}
	if appErr := s.validator.ValidateURL(rawURL); appErr != nil {
		return ErrInvalidURL
	}
	return nil
}
