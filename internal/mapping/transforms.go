package mapping

import "github.com/custodia-labs/pdsync/internal/core/domain"

// Pipedrive target keys that hold lists of labelled contact values.
const (
	KeyEmail = "email"
	KeyPhone = "phone"
)

// DefaultTransforms returns the transforms Pipedrive persons need:
// email and phone are sent as a single primary entry.
func DefaultTransforms() map[string]Transform {
	return map[string]Transform{
		KeyEmail: PrimaryContact,
		KeyPhone: PrimaryContact,
	}
}

// PrimaryContact wraps v as [{value: <text>, primary: true}].
func PrimaryContact(v domain.Value) domain.Value {
	return domain.List(domain.Map(map[string]domain.Value{
		"value":   domain.String(v.String()),
		"primary": domain.Bool(true),
	}))
}
