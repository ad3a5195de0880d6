package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

// Format identifies the encoding of a document or mapping file.
type Format string

// Supported file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadDocument reads an input document from path.
func LoadDocument(path string) (domain.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Value{}, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return ParseDocument(data, FormatFromPath(path))
}

// ParseDocument decodes an input document.
func ParseDocument(data []byte, format Format) (domain.Value, error) {
	var (
		doc domain.Value
		err error
	)
	switch format {
	case FormatYAML:
		var raw any
		if err = yaml.Unmarshal(data, &raw); err == nil {
			doc, err = domain.FromAny(raw)
		}
	case FormatTOML:
		var raw map[string]any
		if err = toml.Unmarshal(data, &raw); err == nil {
			doc, err = domain.FromAny(raw)
		}
	default:
		doc, err = domain.ParseJSON(data)
	}
	if err != nil {
		return domain.Value{}, fmt.Errorf("failed to parse input %s: %w", format, err)
	}
	return doc, nil
}

// LoadMappings reads a mapping table from path.
func LoadMappings(path string) ([]domain.FieldMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	return ParseMappings(data, FormatFromPath(path))
}

// mappingFile is the keyed layout used by TOML and optionally YAML:
//
//	[[mappings]]
//	inputKey = "contact.first"
//	pipedriveKey = "name"
type mappingFile struct {
	Mappings []domain.FieldMapping `yaml:"mappings" toml:"mappings"`
}

// ParseMappings decodes a mapping table. JSON and YAML tables are a
// top-level sequence; YAML and TOML also accept a "mappings" key.
// A table that is not a sequence fails with domain.ErrValidation.
func ParseMappings(data []byte, format Format) ([]domain.FieldMapping, error) {
	switch format {
	case FormatYAML:
		return parseYAMLMappings(data)
	case FormatTOML:
		var mf mappingFile
		if err := toml.Unmarshal(data, &mf); err != nil {
			return nil, fmt.Errorf("%w: failed to parse mapping TOML: %v", domain.ErrValidation, err)
		}
		if mf.Mappings == nil {
			return nil, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
		}
		return mf.Mappings, nil
	default:
		return parseJSONMappings(data)
	}
}

func parseJSONMappings(data []byte) ([]domain.FieldMapping, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapping JSON: %v", domain.ErrValidation, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
	}

	mappings := []domain.FieldMapping{}
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return nil, fmt.Errorf("%w: malformed mapping entry: %v", domain.ErrValidation, err)
	}
	return mappings, nil
}

func parseYAMLMappings(data []byte) ([]domain.FieldMapping, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapping YAML: %v", domain.ErrValidation, err)
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
	}

	top := node.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		mappings := []domain.FieldMapping{}
		if err := top.Decode(&mappings); err != nil {
			return nil, fmt.Errorf("%w: malformed mapping entry: %v", domain.ErrValidation, err)
		}
		return mappings, nil
	case yaml.MappingNode:
		var mf mappingFile
		if err := top.Decode(&mf); err != nil {
			return nil, fmt.Errorf("%w: malformed mapping entry: %v", domain.ErrValidation, err)
		}
		if mf.Mappings == nil {
			return nil, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
		}
		return mf.Mappings, nil
	default:
		return nil, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
	}
}
