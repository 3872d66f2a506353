package validation

import (
	"net/url"
	"path"
	"slices"
	"strings"

	apperrors "go-image-quality/pkg/errors"
)

// URLValidator accepts the source URLs the fetchers can serve: http(s) for web
// and Azure blob sources, and file URLs when local reads are enabled.
type URLValidator struct {
	schemes []string
	// hosts restricts network sources. An entry starting with "." matches any
	// subdomain, e.g. ".blob.core.windows.net". Empty allows every host.
	hosts []string
}

func NewURLValidator() *URLValidator {
	return &URLValidator{schemes: []string{"http", "https"}}
}

// NewLocalURLValidator also accepts file URLs
func NewLocalURLValidator() *URLValidator {
	return &URLValidator{schemes: []string{"http", "https", "file"}}
}

// NewURLValidatorWithOptions restricts sources to schemes and host patterns
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{schemes: schemes, hosts: hosts}
}

// ValidateImageURL reports whether imageURL names a source this validator accepts
func (v *URLValidator) ValidateImageURL(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if !slices.Contains(v.schemes, scheme) {
		return apperrors.NewValidationError("URL scheme not allowed: "+u.Scheme, nil)
	}

	if scheme == "file" {
		return validateFileURL(u)
	}

	host := u.Hostname()
	if host == "" {
		return apperrors.NewValidationError("URL must have a host", nil)
	}
	if u.User != nil {
		return apperrors.NewValidationError("URL must not embed credentials", nil)
	}
	if !v.hostAllowed(host) {
		return apperrors.NewValidationError("URL host not allowed: "+host, nil)
	}
	return nil
}

// validateFileURL requires an absolute local path
func validateFileURL(u *url.URL) error {
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return apperrors.NewValidationError("file URL must not name a remote host", nil)
	}
	if u.Path == "" || !path.IsAbs(u.Path) {
		return apperrors.NewValidationError("file URL must have an absolute path", nil)
	}
	return nil
}

func (v *URLValidator) hostAllowed(host string) bool {
	if len(v.hosts) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, pattern := range v.hosts {
		pattern = strings.ToLower(pattern)
		if strings.HasPrefix(pattern, ".") {
			if strings.HasSuffix(host, pattern) {
				return true
			}
			continue
		}
		if host == pattern {
			return true
		}
	}
	return false
}
