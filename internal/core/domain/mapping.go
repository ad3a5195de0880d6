package domain

// NameKey is the target key that identifies a person. Exactly one mapping
// must target it because its value drives the CRM lookup.
const NameKey = "name"

// FieldMapping pairs a dotted source path in the input document with a
// target key in the CRM record.
type FieldMapping struct {
	// SourcePath is the dot-delimited path read from the input document.
	SourcePath string `json:"inputKey" yaml:"inputKey" toml:"inputKey"`

	// TargetKey is the CRM field written. Dotted keys build nested objects.
	TargetKey string `json:"pipedriveKey" yaml:"pipedriveKey" toml:"pipedriveKey"`
}

// FindNameMapping returns the first mapping targeting NameKey.
func FindNameMapping(mappings []FieldMapping) (FieldMapping, bool) {
	for _, m := range mappings {
		if m.TargetKey == NameKey {
			return m, true
		}
	}
	return FieldMapping{}, false
}
