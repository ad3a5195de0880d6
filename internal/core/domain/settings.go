package domain

import (
	"fmt"
	"strings"
	"time"
)

// Environment variables holding the Pipedrive credentials.
const (
	EnvAPIKey        = "PIPEDRIVE_API_KEY"
	EnvCompanyDomain = "PIPEDRIVE_COMPANY_DOMAIN"
)

// Defaults for optional Pipedrive settings.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 5
)

// PipedriveSettings holds everything needed to talk to a Pipedrive company.
type PipedriveSettings struct {
	// APIKey is the personal API token sent as x-api-token. Never log it.
	APIKey string

	// CompanyDomain is either a bare subdomain ("acme") or a full
	// "acme.pipedrive.com" host.
	CompanyDomain string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests.
	RequestsPerSecond float64
}

// DefaultPipedriveSettings returns settings with optional values filled in.
func DefaultPipedriveSettings() PipedriveSettings {
	return PipedriveSettings{
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// Validate checks that both credentials are present.
func (s PipedriveSettings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return fmt.Errorf("%w: %s must be set", ErrConfig, EnvAPIKey)
	}
	if strings.TrimSpace(s.CompanyDomain) == "" {
		return fmt.Errorf("%w: %s must be set", ErrConfig, EnvCompanyDomain)
	}
	return nil
}

// IsConfigured returns true if both credentials are present.
func (s PipedriveSettings) IsConfigured() bool {
	return s.Validate() == nil
}
