// Package format renders items into the metadata vocabularies offered to
// harvesters.
package format

import (
	"fmt"

	"github.com/totegamma/oairepo/internal/domain"
)

const (
	NamespaceXSI = "http://www.w3.org/2001/XMLSchema-instance"
	NamespaceDC  = "http://purl.org/dc/elements/1.1/"
)

// Format renders one item into one XML vocabulary.
type Format interface {
	Prefix() string
	Namespace() string
	Schema() string
	// Render returns the fragment placed inside <metadata>.
	Render(item domain.Item) ([]byte, error)
}

// ValuesFilter sees the whole term map of an item before rendering and may
// inject or suppress terms.
type ValuesFilter func(item domain.Item, values map[string][]domain.Value) map[string][]domain.Value

// TermFilter transforms the values of a single term.
type TermFilter func(item domain.Item, term string, values []domain.Value) []domain.Value

// Hooks are the extension points applied to every rendered value.
type Hooks struct {
	Pre  ValuesFilter
	Term TermFilter
}

// Params configure every format of a registry.
type Params struct {
	ExposeMedia bool
	// ItemURL resolves the representative identifier of an item. Empty means
	// the item has none.
	ItemURL func(item domain.Item) string
	// RecordID names the item inside formats that carry their own record id.
	RecordID func(item domain.Item) string
	Hooks    Hooks
	// ElementPolicies may rename a Dublin Core element based on its text.
	ElementPolicies []ElementPolicy
}

// Factory builds a format from shared parameters.
type Factory func(p Params) Format

var factories = map[string]Factory{
	PrefixOaiDc:    NewOaiDc,
	PrefixMods:     NewMods,
	PrefixMets:     NewMets,
	PrefixCdwaLite: NewCdwaLite,
}

// Prefixes lists every bundled format in registration order.
var Prefixes = []string{PrefixOaiDc, PrefixMods, PrefixMets, PrefixCdwaLite}

// Registry maps metadata prefixes to formats. It is immutable after
// construction.
type Registry struct {
	formats  []Format
	byPrefix map[string]Format
}

// NewRegistry builds the registry for the enabled prefixes. oai_dc is always
// present.
func NewRegistry(enabled []string, p Params) (*Registry, error) {
	seen := map[string]bool{}
	var formats []Format

	add := func(prefix string) error {
		if seen[prefix] {
			return nil
		}
		factory, ok := factories[prefix]
		if !ok {
			return fmt.Errorf("unknown metadata format %q", prefix)
		}
		seen[prefix] = true
		formats = append(formats, factory(p))
		return nil
	}

	if err := add(PrefixOaiDc); err != nil {
		return nil, err
	}
	for _, prefix := range enabled {
		if err := add(prefix); err != nil {
			return nil, err
		}
	}

	return NewRegistryOf(formats...), nil
}

// NewRegistryOf builds a registry from already constructed formats.
func NewRegistryOf(formats ...Format) *Registry {
	r := &Registry{
		formats:  formats,
		byPrefix: make(map[string]Format, len(formats)),
	}
	for _, f := range formats {
		r.byPrefix[f.Prefix()] = f
	}
	return r
}

func (r *Registry) Lookup(prefix string) (Format, bool) {
	f, ok := r.byPrefix[prefix]
	return f, ok
}

// All returns the formats in registration order.
func (r *Registry) All() []Format {
	return append([]Format(nil), r.formats...)
}

func (r *Registry) Len() int {
	return len(r.formats)
}
