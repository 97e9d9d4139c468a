package usecase

import (
	"context"
	"time"

	"github.com/totegamma/oairepo/internal/domain"
)

// ItemRepository is the data source of harvestable items.
type ItemRepository interface {
	// Find returns domain.NotFoundError for missing or private items.
	Find(ctx context.Context, id int64) (domain.Item, error)
	// List returns up to limit items matching filter in ascending id order.
	List(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Item, error)
	// Count ignores filter.After.
	Count(ctx context.Context, filter domain.ListFilter) (int, error)
	// Earliest returns the oldest datestamp, or domain.NotFoundError when the
	// repository is empty.
	Earliest(ctx context.Context) (time.Time, error)
}

// ItemSetRepository lists the item sets that back the base set format.
type ItemSetRepository interface {
	ListItemSets(ctx context.Context) ([]domain.ItemSet, error)
}

// TokenStore persists resumption tokens. Implementations must be safe for
// concurrent use.
type TokenStore interface {
	// Create stores token and returns its new identifier.
	Create(ctx context.Context, token domain.ResumptionToken) (string, error)
	// Resolve returns domain.ErrTokenNotFound or domain.ErrTokenExpired when
	// the token cannot be used.
	Resolve(ctx context.Context, id string) (domain.ResumptionToken, error)
	// Expire drops tokens that expired before now.
	Expire(ctx context.Context, now time.Time) error
}
