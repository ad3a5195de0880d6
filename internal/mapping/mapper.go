package mapping

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driven"
)

// Ensure Mapper implements the interface.
var _ driven.RecordMapper = (*Mapper)(nil)

// Transform converts a resolved source value into the structured value
// stored at a target key.
type Transform func(domain.Value) domain.Value

// Mapper applies mapping tables to input documents.
type Mapper struct {
	transforms map[string]Transform
}

// NewMapper creates a mapper with per-target-key transforms.
// Keys without a transform are written with Set. A nil table is valid.
func NewMapper(transforms map[string]Transform) *Mapper {
	table := make(map[string]Transform, len(transforms))
	for k, fn := range transforms {
		table[k] = fn
	}
	return &Mapper{transforms: table}
}

// NewPipedriveMapper creates a mapper using DefaultTransforms.
func NewPipedriveMapper() *Mapper {
	return NewMapper(DefaultTransforms())
}

// Map builds a CRM record from input according to mappings.
//
// It fails with domain.ErrValidation when input is null, mappings is nil,
// no mapping targets the name key, or the name resolves to nothing.
// Unresolved source paths are left out of the record.
func (m *Mapper) Map(input domain.Value, mappings []domain.FieldMapping) (domain.Value, error) {
	if input.IsNull() {
		return domain.Value{}, fmt.Errorf("%w: input data is required", domain.ErrValidation)
	}
	if mappings == nil {
		return domain.Value{}, fmt.Errorf("%w: mappings must be an array", domain.ErrValidation)
	}

	nameMapping, ok := domain.FindNameMapping(mappings)
	if !ok {
		return domain.Value{}, fmt.Errorf(
			"%w: no mapping found for %q field, name mapping is required for person lookup",
			domain.ErrValidation, domain.NameKey)
	}
	name, ok := Get(input, nameMapping.SourcePath)
	if !ok || isEmptyName(name) {
		return domain.Value{}, fmt.Errorf("%w: name value not found in input data using path: %s",
			domain.ErrValidation, nameMapping.SourcePath)
	}

	record := domain.NewMap()
	for _, mapping := range mappings {
		value, ok := Get(input, mapping.SourcePath)
		if !ok {
			continue
		}

		if fn, ok := m.transforms[mapping.TargetKey]; ok {
			record.Put(mapping.TargetKey, fn(value))
			continue
		}
		Set(record, mapping.TargetKey, value.Clone())
	}

	return record, nil
}

func isEmptyName(v domain.Value) bool {
	if v.IsNull() {
		return true
	}
	s, ok := v.AsString()
	return ok && s == ""
}

// NameOf resolves the lookup name for input: the value at the first name
// mapping, which must be a string that is not blank. The result is trimmed.
func NameOf(input domain.Value, mappings []domain.FieldMapping) (string, error) {
	nameMapping, ok := domain.FindNameMapping(mappings)
	if !ok {
		return "", fmt.Errorf("%w: name mapping is required for person lookup", domain.ErrValidation)
	}

	value, ok := Get(input, nameMapping.SourcePath)
	if !ok {
		return "", fmt.Errorf("%w: name value not found in input data using path: %s",
			domain.ErrValidation, nameMapping.SourcePath)
	}
	name, ok := value.AsString()
	if !ok {
		return "", fmt.Errorf("%w: expected string for person name, but got %s",
			domain.ErrValidation, value.Kind())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: person name cannot be empty or whitespace only", domain.ErrValidation)
	}
	return name, nil
}

// NameOf implements driven.RecordMapper using the package-level NameOf.
func (m *Mapper) NameOf(input domain.Value, mappings []domain.FieldMapping) (string, error) {
	return NameOf(input, mappings)
}
