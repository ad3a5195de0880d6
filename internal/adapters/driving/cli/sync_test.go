package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdsync/internal/connectors/pipedrive"
	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driving"
	"github.com/custodia-labs/pdsync/internal/core/services"
	"github.com/custodia-labs/pdsync/internal/mapping"
)

const (
	testInput = `{"contact": {"name": "Ada Lovelace", "email": "ada@example.com"}}`

	testMappings = `[
  {"inputKey": "contact.name", "pipedriveKey": "name"},
  {"inputKey": "contact.email", "pipedriveKey": "email"}
]`
)

// mockPersonSyncer implements driving.PersonSyncer for testing.
type mockPersonSyncer struct {
	result *domain.SyncResult
	err    error
	calls  int
}

func (m *mockPersonSyncer) Sync(
	_ context.Context,
	_ domain.Value,
	_ []domain.FieldMapping,
) (*domain.SyncResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockPersonSyncer) Preview(_ domain.Value, _ []domain.FieldMapping) (domain.Value, error) {
	return domain.Value{}, errors.New("not used")
}

func useSyncer(t *testing.T, syncer driving.PersonSyncer) {
	t.Helper()
	old := newPersonSyncer
	newPersonSyncer = func(*domain.PipedriveSettings) (driving.PersonSyncer, error) {
		return syncer, nil
	}
	t.Cleanup(func() { newPersonSyncer = old })
}

func syncFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "input.json", testInput), writeFile(t, dir, "mappings.json", testMappings)
}

func configuredSettings() map[string]any {
	return map[string]any{
		"pipedrive.api_key":        "test-key",
		"pipedrive.company_domain": "acme",
	}
}

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
}

func TestSyncCmd_Flags(t *testing.T) {
	for _, name := range []string{"input", "mappings", "dry-run"} {
		assert.NotNil(t, syncCmd.Flags().Lookup(name), name)
	}
}

func TestSyncCmd_PrintsPersonOnSuccess(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, configuredSettings())
	syncer := &mockPersonSyncer{result: &domain.SyncResult{
		RunID:  "run-1",
		Action: domain.SyncActionCreated,
		Person: &domain.Person{ID: 7, Name: "Ada Lovelace"},
	}}
	useSyncer(t, syncer)
	input, mappings := syncFiles(t)

	out, _, err := execute(t, "sync", "--input", input, "--mappings", mappings)

	require.NoError(t, err)
	assert.Equal(t, 1, syncer.calls)
	assert.Contains(t, out, "Person sync completed successfully!")
	assert.Contains(t, out, `"id": 7`)
	assert.Contains(t, out, `"name": "Ada Lovelace"`)
}

func TestSyncCmd_MissingCredentials(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, nil)
	syncer := &mockPersonSyncer{}
	useSyncer(t, syncer)

	// Files are not read before credentials are checked.
	_, _, err := execute(t, "sync", "--input", "missing.json", "--mappings", "missing.json")

	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), domain.EnvAPIKey)
	assert.Zero(t, syncer.calls)
}

func TestSyncCmd_EnvOverridesStore(t *testing.T) {
	t.Setenv("PIPEDRIVE_API_KEY", "env-key")
	t.Setenv("PIPEDRIVE_COMPANY_DOMAIN", "env-domain")
	useSettings(t, nil)

	var got *domain.PipedriveSettings
	old := newPersonSyncer
	newPersonSyncer = func(s *domain.PipedriveSettings) (driving.PersonSyncer, error) {
		got = s
		return &mockPersonSyncer{result: &domain.SyncResult{Person: &domain.Person{ID: 1}}}, nil
	}
	t.Cleanup(func() { newPersonSyncer = old })
	input, mappings := syncFiles(t)

	_, _, err := execute(t, "sync", "--input", input, "--mappings", mappings)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "env-key", got.APIKey)
	assert.Equal(t, "env-domain", got.CompanyDomain)
}

func TestSyncCmd_InvalidMappings(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, configuredSettings())
	useSyncer(t, &mockPersonSyncer{})
	dir := t.TempDir()
	input := writeFile(t, dir, "input.json", testInput)
	mappings := writeFile(t, dir, "mappings.json", `{"inputKey": "a", "pipedriveKey": "name"}`)

	_, _, err := execute(t, "sync", "--input", input, "--mappings", mappings)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSyncCmd_PrintsHintForRateLimit(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, configuredSettings())
	apiErr := pipedrive.Classify(&pipedrive.StatusError{StatusCode: http.StatusTooManyRequests}, pipedrive.OpSearch)
	useSyncer(t, &mockPersonSyncer{err: apiErr})
	input, mappings := syncFiles(t)

	_, logs, err := execute(t, "sync", "--input", input, "--mappings", mappings)

	require.Error(t, err)
	assert.True(t, pipedrive.IsRateLimited(err))
	assert.Contains(t, err.Error(), "failed to sync person to Pipedrive")
	assert.Contains(t, logs, "Rate limit exceeded during person search: Too many requests")
	assert.Contains(t, logs, "Rate limit exceeded. Please wait before making more requests.")
}

func TestSyncCmd_DryRun(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, nil)
	syncer := &mockPersonSyncer{}
	useSyncer(t, syncer)
	input, mappings := syncFiles(t)

	out, _, err := execute(t, "sync", "--input", input, "--mappings", mappings, "--dry-run")

	require.NoError(t, err)
	assert.Zero(t, syncer.calls)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Ada Lovelace", record["name"])
	assert.Equal(t, []any{map[string]any{"value": "ada@example.com", "primary": true}}, record["email"])
}

func TestSyncCmd_EndToEnd(t *testing.T) {
	clearCredentialEnv(t)
	useSettings(t, configuredSettings())

	var requests []string
	var created map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-token"))
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "Ada Lovelace", r.URL.Query().Get("term"))
			_, _ = io.WriteString(w, `{"success": true, "data": {"items": []}}`)
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &created)
			_, _ = io.WriteString(w, `{"success": true, "data": {"id": 99, "name": "Ada Lovelace"}}`)
		}
	}))
	defer srv.Close()

	old := newPersonSyncer
	newPersonSyncer = func(s *domain.PipedriveSettings) (driving.PersonSyncer, error) {
		cfg := pipedrive.ConfigFromSettings(*s)
		cfg.BaseURL = srv.URL
		cfg.RequestsPerSecond = -1
		client, err := pipedrive.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewPersonSync(client, mapping.NewPipedriveMapper()), nil
	}
	t.Cleanup(func() { newPersonSyncer = old })
	input, mappings := syncFiles(t)

	out, _, err := execute(t, "sync", "--input", input, "--mappings", mappings, "--verbose")

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /v1/persons/search", "POST /v1/persons"}, requests)
	assert.Equal(t, "Ada Lovelace", created["name"])
	assert.Contains(t, out, `"id": 99`)
}
