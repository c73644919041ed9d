package project

// ListOptions filters index listings. Empty fields match everything.
type ListOptions struct {
	Status  Status
	OwnerID string
}
