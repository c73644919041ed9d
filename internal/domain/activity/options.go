package activity

// ListOptions provides filtering options for listing journal entries.
type ListOptions struct {
	RunID  string
	Type   *Type
	Limit  int
	Offset int
}
