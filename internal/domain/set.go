package domain

// ItemSet is a named group of items in the data source.
type ItemSet struct {
	ID          int64
	Title       string
	Description string
}

// Set is a harvestable partition of items. Its spec is hierarchical with ':'.
type Set struct {
	Spec        string
	Name        string
	Description string
	// ItemSets selects the member items.
	ItemSets []int64
}
