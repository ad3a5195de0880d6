package domain

// SyncAction records what a sync run did to the CRM.
type SyncAction string

// Sync actions.
const (
	SyncActionCreated SyncAction = "created"
	SyncActionUpdated SyncAction = "updated"
)

// SyncResult is the outcome of one person sync.
type SyncResult struct {
	// RunID identifies the run in logs.
	RunID string

	// Action is created when no person matched the name, updated otherwise.
	Action SyncAction

	// Person is the record returned by the CRM after the write.
	Person *Person
}
