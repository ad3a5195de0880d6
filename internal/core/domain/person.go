package domain

import (
	"encoding/json"
	"fmt"
)

// Person is a Pipedrive person as returned by the API.
// ID and Name are decoded; every other attribute is kept verbatim in Fields
// so the record can be printed back without loss.
type Person struct {
	ID     int64
	Name   string
	Fields map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Person) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("person: expected an object")
	}

	var person Person
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &person.ID); err != nil {
			return fmt.Errorf("person id: %w", err)
		}
	}
	if raw, ok := fields["name"]; ok {
		// Pipedrive sends null names for some merged records.
		var name *string
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("person name: %w", err)
		}
		if name != nil {
			person.Name = *name
		}
	}
	person.Fields = fields
	*p = person
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Person) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Fields)+2)
	for k, v := range p.Fields {
		out[k] = v
	}

	id, err := json.Marshal(p.ID)
	if err != nil {
		return nil, err
	}
	name, err := json.Marshal(p.Name)
	if err != nil {
		return nil, err
	}
	out["id"] = id
	out["name"] = name
	return json.Marshal(out)
}
