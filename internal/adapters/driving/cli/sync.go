package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdsync/internal/connectors/pipedrive"
	"github.com/custodia-labs/pdsync/internal/core/services"
	"github.com/custodia-labs/pdsync/internal/logger"
	"github.com/custodia-labs/pdsync/internal/mapping"
)

var (
	syncInputPath    string
	syncMappingsPath string
	syncDryRun       bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync a contact record into Pipedrive",
	Long: `Maps the input document with the mapping table and upserts the result as a
Pipedrive person. The person is looked up by the value mapped to "name"; the
first match is updated, otherwise a new person is created.

Input and mapping files may be JSON, YAML or TOML, chosen by file extension.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncInputPath, "input", "i", "", "Input document file")
	syncCmd.Flags().StringVarP(&syncMappingsPath, "mappings", "m", "", "Mapping table file")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the mapped record without calling Pipedrive")
	_ = syncCmd.MarkFlagRequired("input")
	_ = syncCmd.MarkFlagRequired("mappings")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	// Credentials are checked before any file is read.
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !syncDryRun {
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	input, err := mapping.LoadDocument(syncInputPath)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}
	mappings, err := mapping.LoadMappings(syncMappingsPath)
	if err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}

	if syncDryRun {
		record, err := services.NewPersonSync(nil, mapping.NewPipedriveMapper()).Preview(input, mappings)
		if err != nil {
			return fmt.Errorf("failed to map input: %w", err)
		}
		return writeJSON(cmd.OutOrStdout(), record)
	}

	syncer, err := newPersonSyncer(settings)
	if err != nil {
		return err
	}

	result, err := syncer.Sync(cmd.Context(), input, mappings)
	if err != nil {
		var apiErr *pipedrive.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Pipedrive API Error: %s", apiErr.Message)
			if hint := apiErr.Hint(); hint != "" {
				logger.Error("%s", hint)
			}
		}
		return fmt.Errorf("failed to sync person to Pipedrive: %w", err)
	}

	logger.Debug("Run %s %s person %d", result.RunID, result.Action, result.Person.ID)
	cmd.Println("Person sync completed successfully!")
	return writeJSON(cmd.OutOrStdout(), result.Person)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
