package project

// Source provides the currently loaded curated projects.
type Source interface {
	Manifests() []Manifest
	Index() Index
}
