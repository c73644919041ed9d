package project

// DefaultPriorityOrder is the index order assigned to projects without a rank.
const DefaultPriorityOrder = 999

// BuildIndex projects manifests into index entries, preserving input order,
// and counts them per lifecycle stage. It performs no I/O; callers stamp
// LastUpdated.
func BuildIndex(manifests []Manifest) Index {
	entries := make([]IndexEntry, 0, len(manifests))
	stats := Stats{Total: len(manifests)}
	for i := range manifests {
		m := &manifests[i]
		entries = append(entries, m.IndexEntry())
		stats.count(m.Status)
	}
	return Index{Projects: entries, Stats: stats}
}

// IndexEntry returns the listing projection of m.
func (m *Manifest) IndexEntry() IndexEntry {
	return IndexEntry{
		ID:            m.ID,
		Title:         m.Title,
		OwnerID:       m.OwnerID,
		Status:        m.Status,
		Priority:      m.Priority,
		PriorityOrder: m.priorityOrder(),
		Progress:      m.Progress,
		Icon:          m.Icon,
		UpdatedAt:     m.UpdatedAt,
	}
}

// priorityOrder is the manifest rank unless it is absent, null, zero or
// empty. The legacy priorityNumber never feeds the index.
func (m *Manifest) priorityOrder() Number {
	if m.PriorityOrder.NonZero() {
		return m.PriorityOrder
	}
	return NumberOf(DefaultPriorityOrder)
}

func (s *Stats) count(status Status) {
	switch status {
	case StatusDiscovery:
		s.Discovery++
	case StatusDecision:
		s.Decision++
	case StatusDevelop:
		s.Develop++
	case StatusPilot:
		s.Pilot++
	case StatusComplete:
		s.Complete++
	}
}

// ByStatus returns the counter for status, or 0 for statuses outside the
// enumeration.
func (s Stats) ByStatus(status Status) int {
	switch status {
	case StatusDiscovery:
		return s.Discovery
	case StatusDecision:
		return s.Decision
	case StatusDevelop:
		return s.Develop
	case StatusPilot:
		return s.Pilot
	case StatusComplete:
		return s.Complete
	}
	return 0
}

// Classified sums the per-stage counters. It equals Total only when every
// counted project had an enumerated status.
func (s Stats) Classified() int {
	sum := 0
	for _, status := range Statuses {
		sum += s.ByStatus(status)
	}
	return sum
}
