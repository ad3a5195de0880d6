package pipedrive

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

// hostSuffix marks a company domain that is already a full Pipedrive host.
const hostSuffix = ".pipedrive.com"

// Config holds configuration for the Pipedrive client.
type Config struct {
	// APIKey is the Pipedrive API token (required).
	APIKey string

	// CompanyDomain is the company subdomain or full host (required).
	CompanyDomain string

	// BaseURL overrides the URL derived from CompanyDomain.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond paces requests (default: 2). Negative disables pacing.
	RequestsPerSecond float64

	// Burst is the token bucket size (default: 5).
	Burst int

	// HTTPClient replaces the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from resolved settings.
func ConfigFromSettings(s domain.PipedriveSettings) Config {
	return Config{
		APIKey:            s.APIKey,
		CompanyDomain:     s.CompanyDomain,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = domain.DefaultTimeout
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = domain.DefaultRequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = domain.DefaultBurst
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("pipedrive: %w: API key is required", domain.ErrConfig)
	}
	if strings.TrimSpace(c.CompanyDomain) == "" && c.BaseURL == "" {
		return fmt.Errorf("pipedrive: %w: company domain is required", domain.ErrConfig)
	}
	return nil
}

// BaseURL returns the API root for a company domain.
func BaseURL(companyDomain string) string {
	d := strings.TrimSpace(companyDomain)
	if strings.HasSuffix(strings.ToLower(d), hostSuffix) {
		return "https://" + d
	}
	return "https://" + d + hostSuffix
}
