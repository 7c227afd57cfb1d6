package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/errors"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/model"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/service"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/validator"
)

// URLHandler handles HTTP requests for URL operations
type URLHandler struct {
	service   *service.URLService
	validator *validator.URLValidator
}

// NewURLHandler creates a new handler instance
func NewURLHandler(svc *service.URLService) *URLHandler {
	return &URLHandler{
		service:   svc,
		validator: validator.NewURLValidator(),
	}
}

// ============ HANDLERS ============

// HandleShorten creates a new short URL
// POST /shorten
func (h *URLHandler) HandleShorten(w http.ResponseWriter, r *http.Request) {
	// Only accept POST
	if r.Method != http.MethodPost {
		errors.BadRequest("Use POST method").WriteJSON(w)
		return
	}

	// Parse JSON body
	var req model.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.InvalidJSON(err.Error()).WriteJSON(w)
		return
	}

	// Validate before touching the store
	if appErr := h.validator.ValidateURL(req.URL); appErr != nil {
		appErr.WriteJSON(w)
		return
	}

	// Call service
	resp, err := h.service.CreateShortURL(req)
	if err != nil {
		switch err {
		case service.ErrEmptyURL:
			errors.MissingField("url").WriteJSON(w)
		case service.ErrInvalidURL:
			errors.InvalidURL("URL must be valid http/https").WriteJSON(w)
		case service.ErrCodeSpaceExhausted:
			errors.CodeSpaceExhausted().WriteJSON(w)
		default:
			errors.Internal("").WriteJSON(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// HandleRedirect redirects to the original URL
// GET /{code}
func (h *URLHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	// Extract code from path: /abc1 → abc1
	code := strings.TrimPrefix(r.URL.Path, "/")

	// Root path is the status endpoint
	if code == "" {
		h.handleStatus(w, r)
		return
	}

	if code == "favicon.ico" {
		http.NotFound(w, r)
		return
	}

	// Skip if it's a known route
	if code == "shorten" {
		http.NotFound(w, r)
		return
	}

	// Malformed codes are plain misses, never server errors
	originalURL, err := h.service.Resolve(code)
	if err != nil {
		if err == service.ErrURLNotFound {
			errors.URLNotFound(code).WriteJSON(w)
			return
		}
		errors.Internal("").WriteJSON(w)
		return
	}

	// Redirect!
	http.Redirect(w, r, originalURL, http.StatusFound)
}

// handleStatus reports mapping count and liveness
// GET /
func (h *URLHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.service.Status())
}

// ============ ROUTER SETUP ============

// SetupRoutes configures all HTTP routes
func (h *URLHandler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Specific routes first
	mux.HandleFunc("/shorten", h.HandleShorten)

	// Catch-all for redirects and the status root (must be last)
	mux.HandleFunc("/", h.HandleRedirect)

	return mux
}
