package driven

import (
	"context"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

// PersonStore reads and writes persons in the CRM.
// Implementations classify transport and HTTP failures before returning them.
type PersonStore interface {
	// FindByName returns the first person matching name, or nil when the
	// search has no results or its response is not in the expected shape.
	FindByName(ctx context.Context, name string) (*domain.Person, error)

	// Create adds a person built from record.
	Create(ctx context.Context, record domain.Value) (*domain.Person, error)

	// Update overwrites the fields of person id present in record.
	Update(ctx context.Context, id int64, record domain.Value) (*domain.Person, error)
}

// RecordMapper turns an input document into a CRM record.
type RecordMapper interface {
	// Map applies mappings to input. Unresolved source paths are omitted.
	Map(input domain.Value, mappings []domain.FieldMapping) (domain.Value, error)

	// NameOf returns the trimmed name used to look the person up.
	NameOf(input domain.Value, mappings []domain.FieldMapping) (string, error)
}
