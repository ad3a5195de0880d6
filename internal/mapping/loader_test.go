package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("in.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("in"))
	assert.Equal(t, FormatYAML, FormatFromPath("in.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("IN.YML"))
	assert.Equal(t, FormatTOML, FormatFromPath("in.toml"))
}

func TestLoadMappings_AllFormats(t *testing.T) {
	want := []domain.FieldMapping{
		{SourcePath: "contact.first", TargetKey: "name"},
		{SourcePath: "contact.email", TargetKey: "email"},
	}

	for _, path := range []string{"testdata/mappings.yaml", "testdata/mappings.toml"} {
		t.Run(path, func(t *testing.T) {
			got, err := LoadMappings(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	got, err := LoadMappings("testdata/mappings.json")
	require.NoError(t, err)
	assert.Len(t, got, 7)
	assert.Equal(t, want[0], got[0])
}

func TestParseMappings_NotASequence(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json object", `{"inputKey":"a","pipedriveKey":"name"}`, FormatJSON},
		{"json null", `null`, FormatJSON},
		{"json string", `"mappings"`, FormatJSON},
		{"json garbage", `[{`, FormatJSON},
		{"json entry not object", `["a"]`, FormatJSON},
		{"yaml scalar", `mappings`, FormatYAML},
		{"yaml empty", ``, FormatYAML},
		{"yaml map without mappings", `other: 1`, FormatYAML},
		{"toml without mappings", `title = "x"`, FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMappings([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestParseMappings_YAMLKeyedLayout(t *testing.T) {
	data := `
mappings:
  - inputKey: a
    pipedriveKey: name
`
	got, err := ParseMappings([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []domain.FieldMapping{{SourcePath: "a", TargetKey: "name"}}, got)
}

func TestParseMappings_EmptyJSONArray(t *testing.T) {
	got, err := ParseMappings([]byte(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadDocument_YAML(t *testing.T) {
	doc, err := LoadDocument("testdata/contact.yaml")
	require.NoError(t, err)

	age, ok := Get(doc, "contact.age")
	require.True(t, ok)
	assert.Equal(t, "36", age.String())
}

func TestParseDocument_TOML(t *testing.T) {
	doc, err := ParseDocument([]byte("[contact]\nfirst = \"Ada\"\nsize = 3\n"), FormatTOML)
	require.NoError(t, err)

	first, ok := Get(doc, "contact.first")
	require.True(t, ok)
	assert.Equal(t, "Ada", first.String())
	size, ok := Get(doc, "contact.size")
	require.True(t, ok)
	assert.Equal(t, "3", size.String())
}

func TestLoadDocument_Errors(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))
	_, err = LoadDocument(bad)
	assert.Error(t, err)
}

func TestLoadMappings_MissingFile(t *testing.T) {
	_, err := LoadMappings(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
