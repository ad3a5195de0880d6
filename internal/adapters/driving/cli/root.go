package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/custodia-labs/pdsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdsync/internal/connectors/pipedrive"
	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driving"
	"github.com/custodia-labs/pdsync/internal/core/services"
	"github.com/custodia-labs/pdsync/internal/logger"
	"github.com/custodia-labs/pdsync/internal/mapping"
)

var (
	version = "dev"

	verbose   bool
	configDir string

	// envFile is loaded into the environment before each command.
	// Variables that are already set are not overridden.
	envFile = ".env"

	settingsService driving.SettingsService

	// newPersonSyncer builds the syncer used by the sync command.
	newPersonSyncer = defaultPersonSyncer
)

var rootCmd = &cobra.Command{
	Use:   "pdsync",
	Short: "Sync contact records into Pipedrive",
	Long: `pdsync maps a contact record onto a Pipedrive person using a mapping table,
then updates the first person with the same name or creates a new one.

Credentials come from PIPEDRIVE_API_KEY and PIPEDRIVE_COMPANY_DOMAIN, a .env file
in the working directory, or the config file written by "pdsync config".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show progress and debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.pdsync)")
}

// Execute runs the root command with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if settingsService != nil {
		return nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	settingsService = services.NewSettingsService(store)
	return nil
}

func defaultPersonSyncer(settings *domain.PipedriveSettings) (driving.PersonSyncer, error) {
	client, err := pipedrive.NewClient(pipedrive.ConfigFromSettings(*settings))
	if err != nil {
		return nil, err
	}
	logger.Debug("Using Pipedrive API at %s", client.BaseURL())
	return services.NewPersonSync(client, mapping.NewPipedriveMapper()), nil
}
