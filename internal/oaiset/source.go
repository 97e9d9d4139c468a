package oaiset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/totegamma/oairepo/internal/domain"
)

const (
	FormatBase = "base"
	FormatNone = "none"
)

// ItemSetLister is the part of the data source the base set format reads.
type ItemSetLister interface {
	ListItemSets(ctx context.Context) ([]domain.ItemSet, error)
}

// Base exposes every public item set as a set keyed by its id.
func Base(ctx context.Context, lister ItemSetLister) ([]domain.Set, error) {
	itemSets, err := lister.ListItemSets(ctx)
	if err != nil {
		return nil, err
	}
	sets := make([]domain.Set, 0, len(itemSets))
	for _, is := range itemSets {
		sets = append(sets, domain.Set{
			Spec:        strconv.FormatInt(is.ID, 10),
			Name:        is.Title,
			Description: is.Description,
			ItemSets:    []int64{is.ID},
		})
	}
	return sets, nil
}

// Build populates the registry once at start up for the configured set
// format. Static sets are merged into the base format.
func Build(ctx context.Context, setFormat string, lister ItemSetLister, static []domain.Set) (*Registry, error) {
	switch setFormat {
	case FormatNone:
		return NewRegistry(nil)
	case FormatBase, "":
		sets, err := Base(ctx, lister)
		if err != nil {
			return nil, err
		}
		return NewRegistry(append(sets, static...))
	default:
		return nil, fmt.Errorf("unknown set format %q", setFormat)
	}
}
