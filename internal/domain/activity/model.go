package activity

import "time"

// Type represents the kind of pipeline event recorded in the journal
type Type string

const (
	TypeSeedWritten    Type = "seed_written"
	TypeStoreReused    Type = "store_reused"
	TypeScanPersisted  Type = "scan_persisted"
	TypeScanEmpty      Type = "scan_empty"
	TypeProjectSkipped Type = "project_skipped"
	TypeRunFailed      Type = "run_failed"
)

// Entry represents one event of one pipeline run
type Entry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Type      Type      `json:"type"`
	Subject   string    `json:"subject,omitempty"` // storage path or project key the event concerns
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}
