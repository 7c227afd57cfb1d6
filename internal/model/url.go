package model

import "time"

// Mapping is one shortened URL record. Records are append-only: once a
// code is issued it never changes and is never deleted for the lifetime
// of the store.
type Mapping struct {
	Code        string    `json:"code"`         // fixed-length base62 identifier, primary key
	OriginalURL string    `json:"original_url"` // original long URL, stored unmodified
	CreatedAt   time.Time `json:"created_at"`   // set once at creation
}

// ShortenRequest is the API request body
type ShortenRequest struct {
	URL string `json:"url"` // original long URL
}

// ShortenResponse is the API response
type ShortenResponse struct {
	ShortURL    string `json:"short_url"`    // full shortened URL
	OriginalURL string `json:"original_url"` // original long URL, echoed for confirmation
}

// Status is the payload served at the root path
type Status struct {
	Status   string `json:"status"`
	Mappings int    `json:"mappings"`
	Uptime   string `json:"uptime"`
}
