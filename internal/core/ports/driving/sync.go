package driving

import (
	"context"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

// PersonSyncer synchronises one input record into the CRM.
type PersonSyncer interface {
	// Sync maps input, looks the person up by name and updates the first
	// match or creates a new person. Nothing is rolled back on failure.
	Sync(ctx context.Context, input domain.Value, mappings []domain.FieldMapping) (*domain.SyncResult, error)

	// Preview maps input without contacting the CRM.
	Preview(input domain.Value, mappings []domain.FieldMapping) (domain.Value, error)
}
