package ports

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// OriginPolicy decides which browser origins may call the API
type OriginPolicy struct {
	suffixes       []string
	allowLocalhost bool
}

// NewOriginPolicy accepts https origins on the given domains and their subdomains
//
// allowLocalhost additionally accepts http://localhost on any port, for local frontends.
func NewOriginPolicy(allowLocalhost bool, suffixes ...string) (*OriginPolicy, error) {
	for _, suffix := range suffixes {
		if suffix == "" {
			return nil, fmt.Errorf("domain suffix should not be empty")
		}
		if strings.HasPrefix(suffix, ".") {
			return nil, fmt.Errorf("domain suffix %s should not start with a dot", suffix)
		}
		if strings.Contains(suffix, "://") {
			return nil, fmt.Errorf("domain suffix %s should not contain a scheme", suffix)
		}
	}
	return &OriginPolicy{
		suffixes:       suffixes,
		allowLocalhost: allowLocalhost,
	}, nil
}

func (p *OriginPolicy) Allows(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || parsed.Path != "" {
		return false
	}

	if p.allowLocalhost && parsed.Scheme == "http" && parsed.Hostname() == "localhost" {
		return true
	}

	// Only accept origins with https scheme and the default port
	if parsed.Scheme != "https" || parsed.Port() != "" {
		return false
	}

	host := parsed.Hostname()
	for _, suffix := range p.suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

func BuildCORSMiddleware(policy *OriginPolicy) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")

			if policy.Allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Expose-Headers", "Retry-After")

				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-Id")
					w.Header().Set("Access-Control-Max-Age", "3600")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next(w, r)
		}
	}
}

// BuildCORSHandler serves preflight requests for the OPTIONS routes
func BuildCORSHandler(policy *OriginPolicy) http.HandlerFunc {
	return BuildCORSMiddleware(policy)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
