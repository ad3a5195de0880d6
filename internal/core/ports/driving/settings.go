package driving

import "github.com/custodia-labs/pdsync/internal/core/domain"

// SettingsService manages Pipedrive credentials and client settings.
type SettingsService interface {
	// Get resolves settings: environment variables first, then the config store.
	Get() (*domain.PipedriveSettings, error)

	// SetAPIKey persists the API token to the config store.
	SetAPIKey(key string) error

	// SetCompanyDomain persists the company domain to the config store.
	SetCompanyDomain(companyDomain string) error

	// ConfigPath returns where persisted settings live.
	ConfigPath() string
}
