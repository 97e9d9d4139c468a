package domain

import "time"

// Repository describes the harvestable repository to the dispatcher.
type Repository struct {
	Name        string
	BaseURL     string
	NamespaceID string
	AdminEmails []string
	ListLimit   int
	TokenTTL    time.Duration
}
