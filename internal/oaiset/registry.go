// Package oaiset partitions items into the sets offered to harvesters.
package oaiset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/totegamma/oairepo/internal/domain"
)

var specPattern = regexp.MustCompile(`^[A-Za-z0-9\-_.!~*'()]+(:[A-Za-z0-9\-_.!~*'()]+)*$`)

// Registry is the immutable set table. Selecting a set selects its
// descendants too.
type Registry struct {
	sets   []domain.Set
	bySpec map[string]domain.Set
	// expanded holds the item sets of a spec and all of its descendants.
	expanded map[string][]int64
}

func NewRegistry(sets []domain.Set) (*Registry, error) {
	r := &Registry{
		bySpec:   make(map[string]domain.Set, len(sets)),
		expanded: make(map[string][]int64, len(sets)),
	}

	for _, s := range sets {
		if !specPattern.MatchString(s.Spec) {
			return nil, fmt.Errorf("invalid set spec %q", s.Spec)
		}
		if _, dup := r.bySpec[s.Spec]; dup {
			return nil, fmt.Errorf("duplicate set spec %q", s.Spec)
		}
		r.bySpec[s.Spec] = s
		r.sets = append(r.sets, s)
	}

	sort.SliceStable(r.sets, func(i, j int) bool {
		return r.sets[i].Spec < r.sets[j].Spec
	})

	for _, s := range r.sets {
		seen := map[int64]bool{}
		ids := []int64{}
		for _, other := range r.sets {
			if other.Spec != s.Spec && !strings.HasPrefix(other.Spec, s.Spec+":") {
				continue
			}
			for _, id := range other.ItemSets {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		r.expanded[s.Spec] = ids
	}

	return r, nil
}

func (r *Registry) Lookup(spec string) (domain.Set, bool) {
	s, ok := r.bySpec[spec]
	return s, ok
}

// All returns the sets ordered by spec.
func (r *Registry) All() []domain.Set {
	return append([]domain.Set(nil), r.sets...)
}

func (r *Registry) Len() int {
	return len(r.sets)
}

// ItemSets returns the item sets selected by spec. The result is non-nil for
// a known spec, even when it selects nothing.
func (r *Registry) ItemSets(spec string) []int64 {
	return r.expanded[spec]
}

// SpecsFor lists the specs of every set the item belongs to.
func (r *Registry) SpecsFor(item domain.Item) []string {
	if len(item.ItemSets) == 0 {
		return nil
	}
	member := make(map[int64]bool, len(item.ItemSets))
	for _, id := range item.ItemSets {
		member[id] = true
	}

	var specs []string
	for _, s := range r.sets {
		for _, id := range r.expanded[s.Spec] {
			if member[id] {
				specs = append(specs, s.Spec)
				break
			}
		}
	}
	return specs
}
