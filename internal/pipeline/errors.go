package pipeline

import "errors"

var (
	// ErrScanFailed reports that the users root could not be listed.
	ErrScanFailed = errors.New("scan failed")
	// ErrProjectSkipped reports a project whose manifest could not be loaded.
	ErrProjectSkipped = errors.New("project skipped")
	// ErrEnrichmentGap reports a media folder that was missing, unreadable
	// or held no matching files.
	ErrEnrichmentGap = errors.New("enrichment gap")
	// ErrPersistence reports a failed write to the data root.
	ErrPersistence = errors.New("persistence failure")
	// ErrRunInProgress is returned when Run is called while another run is active.
	ErrRunInProgress = errors.New("pipeline run already in progress")
)
