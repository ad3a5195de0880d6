package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdsync/internal/core/domain"
	"github.com/custodia-labs/pdsync/internal/core/ports/driven"
	"github.com/custodia-labs/pdsync/internal/core/ports/driving"
	"github.com/custodia-labs/pdsync/internal/logger"
)

// Ensure PersonSync implements the interface.
var _ driving.PersonSyncer = (*PersonSync)(nil)

// PersonSync maps one input record and upserts it as a Pipedrive person.
type PersonSync struct {
	store  driven.PersonStore
	mapper driven.RecordMapper
	newID  func() string
}

// NewPersonSync creates a person sync over store using mapper.
// store may be nil when only Preview is used.
func NewPersonSync(store driven.PersonStore, mapper driven.RecordMapper) *PersonSync {
	return &PersonSync{
		store:  store,
		mapper: mapper,
		newID:  uuid.NewString,
	}
}

// Sync maps input, searches for the person by name and updates the first
// match or creates a new person. The first failure aborts the run.
func (s *PersonSync) Sync(
	ctx context.Context,
	input domain.Value,
	mappings []domain.FieldMapping,
) (*domain.SyncResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("sync person: person store not configured")
	}

	runID := s.newID()
	logger.Section("Person sync " + runID)

	// 1. Build the record
	record, err := s.mapper.Map(input, mappings)
	if err != nil {
		return nil, fmt.Errorf("map input: %w", err)
	}

	// 2. Resolve the lookup name
	name, err := s.mapper.NameOf(input, mappings)
	if err != nil {
		return nil, fmt.Errorf("resolve name: %w", err)
	}

	// 3. Look for an existing person
	logger.Info("Searching for existing person with name: %s", name)
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	// 4. Update or create
	result := &domain.SyncResult{RunID: runID}
	if existing != nil {
		logger.Info("Found existing person with ID: %d", existing.ID)
		result.Action = domain.SyncActionUpdated
		result.Person, err = s.store.Update(ctx, existing.ID, record)
		if err != nil {
			return nil, err
		}
		logger.Info("Successfully updated person with ID: %d", result.Person.ID)
		return result, nil
	}

	logger.Info("No existing person found, creating new person...")
	result.Action = domain.SyncActionCreated
	result.Person, err = s.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	logger.Info("Successfully created person with ID: %d", result.Person.ID)
	return result, nil
}

// Preview maps input without contacting the CRM. It applies the same
// validation as Sync, including the name check.
func (s *PersonSync) Preview(input domain.Value, mappings []domain.FieldMapping) (domain.Value, error) {
	record, err := s.mapper.Map(input, mappings)
	if err != nil {
		return domain.Value{}, fmt.Errorf("map input: %w", err)
	}
	if _, err := s.mapper.NameOf(input, mappings); err != nil {
		return domain.Value{}, fmt.Errorf("resolve name: %w", err)
	}
	return record, nil
}
