package pipeline

// Phase is a step of the orchestrator state machine.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseSeedChecked
	PhaseProjectsChecked
	PhaseScanningFolders
	PhaseUsingExistingStore
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseSeedChecked:
		return "seed_checked"
	case PhaseProjectsChecked:
		return "projects_checked"
	case PhaseScanningFolders:
		return "scanning_folders"
	case PhaseUsingExistingStore:
		return "using_existing_store"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// InitializationState records what one run found and did. It is not persisted.
type InitializationState struct {
	Phase           Phase `json:"phase"`
	UsersExisted    bool  `json:"users_existed"`
	SettingsExisted bool  `json:"settings_existed"`
	StoreExisted    bool  `json:"store_existed"`
	StoredProjects  int   `json:"stored_projects"`
	Rescanned       bool  `json:"rescanned"`
}
