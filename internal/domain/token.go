package domain

import "time"

// ListFilter selects items for list requests. Results are ordered by id.
type ListFilter struct {
	// From is inclusive.
	From *time.Time
	// Until is exclusive: the start of the second or day following the
	// requested until datestamp.
	Until *time.Time
	// ItemSets restricts to members of any of these sets when non-nil.
	ItemSets []int64
	// After excludes items with id <= After.
	After int64
}

// ResumptionToken is the stored paging state of a list request.
type ResumptionToken struct {
	ID             string    `json:"id"`
	Verb           string    `json:"verb"`
	MetadataPrefix string    `json:"metadataPrefix,omitempty"`
	Set            string    `json:"set,omitempty"`
	From           string    `json:"from,omitempty"`
	Until          string    `json:"until,omitempty"`
	// Cursor is the number of entries delivered before the next page.
	Cursor           int `json:"cursor"`
	CompleteListSize int `json:"completeListSize"`
	// After is the last item id delivered so far.
	After     int64     `json:"after"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (t ResumptionToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
