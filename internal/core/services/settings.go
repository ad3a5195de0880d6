package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driven"
	"github.com/custodia-labs/pdsync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIKey            = "pipedrive.api_key"
	keyCompanyDomain     = "pipedrive.company_domain"
	keyTimeoutSeconds    = "pipedrive.timeout_seconds"
	keyRequestsPerSecond = "pipedrive.requests_per_second"
)

// SettingsService resolves Pipedrive settings from the environment and
// the config store.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading os.Getenv.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. A non-empty environment variable wins
// over the stored value. Missing credentials are not an error here; call
// Validate on the result before contacting Pipedrive.
func (s *SettingsService) Get() (*domain.PipedriveSettings, error) {
	settings := domain.DefaultPipedriveSettings()

	settings.APIKey = s.resolve(domain.EnvAPIKey, keyAPIKey)
	settings.CompanyDomain = s.resolve(domain.EnvCompanyDomain, keyCompanyDomain)

	if secs := s.configStore.GetInt(keyTimeoutSeconds); secs > 0 {
		settings.Timeout = time.Duration(secs) * time.Second
	}
	if _, ok := s.configStore.Get(keyRequestsPerSecond); ok {
		settings.RequestsPerSecond = s.configStore.GetFloat(keyRequestsPerSecond)
	}

	return &settings, nil
}

// SetAPIKey persists the API token.
func (s *SettingsService) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: API key cannot be empty", domain.ErrValidation)
	}
	return s.configStore.Set(keyAPIKey, key)
}

// SetCompanyDomain persists the company domain.
func (s *SettingsService) SetCompanyDomain(companyDomain string) error {
	companyDomain = strings.TrimSpace(companyDomain)
	if companyDomain == "" {
		return fmt.Errorf("%w: company domain cannot be empty", domain.ErrValidation)
	}
	return s.configStore.Set(keyCompanyDomain, companyDomain)
}

// ConfigPath returns the config store location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) resolve(envKey, storeKey string) string {
	if v := strings.TrimSpace(s.getenv(envKey)); v != "" {
		return v
	}
	return strings.TrimSpace(s.configStore.GetString(storeKey))
}
