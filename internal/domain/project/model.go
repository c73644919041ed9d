package project

import "encoding/json"

// Status is a project's lifecycle stage.
type Status string

const (
	StatusDiscovery Status = "discovery"
	StatusDecision  Status = "decision"
	StatusDevelop   Status = "develop"
	StatusPilot     Status = "pilot"
	StatusComplete  Status = "complete"
)

// Statuses lists the lifecycle stages in pipeline order.
var Statuses = []Status{StatusDiscovery, StatusDecision, StatusDevelop, StatusPilot, StatusComplete}

// Valid reports whether s is one of the enumerated lifecycle stages.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority is a project's priority tier.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Manifest is the per-project record stored at
// users/<ownerId>/projects/<id>/project.json and collected into the curated
// store. Keys the struct does not name, and values that do not fit their
// field, are kept in Extra and written back unchanged.
type Manifest struct {
	ID             string       `json:"id,omitempty"`
	Title          string       `json:"title,omitempty"`
	OwnerID        string       `json:"ownerId,omitempty"`
	Status         Status       `json:"status,omitempty"`
	Priority       Priority     `json:"priority,omitempty"`
	PriorityOrder  Number       `json:"priorityOrder,omitzero"`
	PriorityNumber Number       `json:"priorityNumber,omitzero"`
	Progress       Number       `json:"progress,omitzero"`
	Icon           string       `json:"icon,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
	Images         []MediaAsset `json:"images"`
	Videos         []MediaAsset `json:"videos"`
	GanttImage     string       `json:"ganttImage,omitempty"`
	GanttImagePath string       `json:"ganttImagePath,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ScheduleImage returns the schedule image reference, honoring the legacy
// ganttImagePath alias.
func (m *Manifest) ScheduleImage() string {
	if m.GanttImage != "" {
		return m.GanttImage
	}
	return m.GanttImagePath
}

// MediaAsset references one image or video file of a project.
type MediaAsset struct {
	Path  string `json:"src"`
	Title string `json:"title"`

	Extra map[string]json.RawMessage `json:"-"`
	// verbatim holds an element that is not an object.
	verbatim json.RawMessage
}

// Collection is the document stored at data/projects.json.
type Collection struct {
	Projects []Manifest `json:"projects"`
}

// IndexEntry is the lightweight listing projection of a Manifest.
type IndexEntry struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	OwnerID       string   `json:"ownerId"`
	Status        Status   `json:"status"`
	Priority      Priority `json:"priority"`
	PriorityOrder Number   `json:"priorityOrder"`
	Progress      Number   `json:"progress,omitzero"`
	Icon          string   `json:"icon"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// Stats counts projects in total and per lifecycle stage. Projects whose
// status is not an enumerated stage count toward Total only.
type Stats struct {
	Total     int `json:"total"`
	Discovery int `json:"discovery"`
	Decision  int `json:"decision"`
	Develop   int `json:"develop"`
	Pilot     int `json:"pilot"`
	Complete  int `json:"complete"`
}

// Index is the document stored at data/projects-index.json.
type Index struct {
	Projects    []IndexEntry `json:"projects"`
	Stats       Stats        `json:"stats"`
	LastUpdated string       `json:"lastUpdated,omitempty"`
}
