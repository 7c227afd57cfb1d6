package validator

import (
	"net/url"
	"strings"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/errors"
)

// URLValidator validates URL inputs
type URLValidator struct {
	maxLength      int
	allowedSchemes []string
}

// NewURLValidator creates a validator with default settings
func NewURLValidator() *URLValidator {
	return &URLValidator{
		maxLength:      2048,
		allowedSchemes: []string{"http", "https"},
	}
}

// ValidateURL validates a URL string
func (v *URLValidator) ValidateURL(rawURL string) *errors.AppError {
	if strings.TrimSpace(rawURL) == "" {
		return errors.MissingField("url")
	}

	if len(rawURL) > v.maxLength {
		return errors.InvalidURL("URL exceeds maximum length of 2048 characters")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return errors.InvalidURL("URL could not be parsed")
	}

	if !v.isAllowedScheme(parsedURL.Scheme) {
		return errors.InvalidURL("URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return errors.InvalidURL("URL must have a valid host")
	}

	return nil
}

// WithMaxLength sets maximum URL length
func (v *URLValidator) WithMaxLength(length int) *URLValidator {
	v.maxLength = length
	return v
}

func (v *URLValidator) isAllowedScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}
