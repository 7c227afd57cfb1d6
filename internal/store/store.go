package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/generator"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/logger"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/model"
)

var (
	ErrNotFound = errors.New("url not found")

	// ErrCodeSpaceExhausted means generation hit the attempt bound
	// without finding a free code. Practically unreachable until the
	// code space is nearly full.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique short code")
)

// DefaultMaxAttempts bounds the collision retry loop in Create.
const DefaultMaxAttempts = 100

// MappingStore is the single source of truth for code↔URL associations.
// It keeps two consistent in-memory indices under one lock and rewrites
// the backing file wholesale after every successful creation.
type MappingStore struct {
	mu          sync.RWMutex
	mappings    map[string]*model.Mapping // code -> mapping
	codes       map[string]string         // original URL -> code
	path        string
	gen         *generator.Generator
	maxAttempts int
	log         *logger.Logger
}

// New creates a store backed by the file at path. A missing, empty, or
// unparsable file logs a warning and the store starts empty; startup
// never fails on bad persisted state.
func New(path string, gen *generator.Generator, maxAttempts int, log *logger.Logger) *MappingStore {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	s := &MappingStore{
		mappings:    make(map[string]*model.Mapping),
		codes:       make(map[string]string),
		path:        path,
		gen:         gen,
		maxAttempts: maxAttempts,
		log:         log,
	}
	s.load()
	return s
}

// Create returns the code for url, minting and persisting a new mapping
// if none exists yet. Calling it twice with the same URL returns the
// same code both times.
func (s *MappingStore) Create(url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.codes[url]; ok {
		return code, nil
	}

	code, err := s.freeCode()
	if err != nil {
		return "", err
	}

	s.mappings[code] = &model.Mapping{
		Code:        code,
		OriginalURL: url,
		CreatedAt:   time.Now().UTC(),
	}
	s.codes[url] = code

	// Durability is best-effort: a failed flush keeps the in-memory
	// mapping usable and is retried implicitly on the next create.
	if err := s.persist(); err != nil {
		s.log.Error("failed to persist url mappings",
			"file", s.path,
			"code", code,
			"error", err.Error())
	}

	return code, nil
}

// LookupCode resolves a code to its original URL
func (s *MappingStore) LookupCode(code string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mappings[code]
	if !ok {
		return "", ErrNotFound
	}
	return m.OriginalURL, nil
}

// LookupURL resolves an original URL to its code
func (s *MappingStore) LookupURL(url string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.codes[url]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// Count returns the number of stored mappings
func (s *MappingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

// freeCode generates candidates until one is absent from the index.
// Caller must hold the write lock.
func (s *MappingStore) freeCode() (string, error) {
	for i := 0; i < s.maxAttempts; i++ {
		code := s.gen.NewCode()
		if _, taken := s.mappings[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// load reads the persisted mapping file into both indices
func (s *MappingStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("url mappings file absent, starting empty", "file", s.path)
		} else {
			s.log.Warn("failed to read url mappings, starting empty",
				"file", s.path, "error", err.Error())
		}
		return
	}
	if len(data) == 0 {
		s.log.Warn("url mappings file empty, starting empty", "file", s.path)
		return
	}

	var persisted map[string]*model.Mapping
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.log.Warn("failed to parse url mappings, starting empty",
			"file", s.path, "error", err.Error())
		return
	}

	for code, m := range persisted {
		// A hand-edited or truncated file can carry null or gutted
		// entries; they must never take down startup.
		if m == nil || m.OriginalURL == "" {
			s.log.Warn("skipping invalid url mapping entry", "file", s.path, "code", code)
			continue
		}
		m.Code = code
		s.mappings[code] = m
		s.codes[m.OriginalURL] = code
	}
}

// persist rewrites the full mapping set. The write goes through a temp
// file and rename so a crash mid-write leaves the previous snapshot
// intact. Caller must hold the write lock.
func (s *MappingStore) persist() error {
	data, err := json.MarshalIndent(s.mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(tmp), err)
	}
	return nil
}
