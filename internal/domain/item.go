package domain

import "time"

// Item is one harvestable record as exposed by the data source.
type Item struct {
	ID       int64
	Modified time.Time
	// ItemSets lists the ids of the item sets the item belongs to.
	ItemSets []int64
	// Values maps a vocabulary term (e.g. dcterms:title) to its ordered values.
	Values    map[string][]Value
	Media     []Media
	Thumbnail *Asset
}

// TermValues returns the values of term, or nil.
func (i Item) TermValues(term string) []Value {
	if i.Values == nil {
		return nil
	}
	return i.Values[term]
}

// PrimaryMedia is the first attached media, if any.
func (i Item) PrimaryMedia() *Media {
	if len(i.Media) == 0 {
		return nil
	}
	return &i.Media[0]
}

// Value is one property value.
type Value struct {
	Type ValueType
	// Text is the literal text, or the label of a uri value.
	Text string
	URI  string
	Lang string
	// ResourceTitle is the display title of a linked resource.
	ResourceTitle string
	// Annotation holds the values of the annotation attached to this value,
	// keyed by term (e.g. bf:role).
	Annotation map[string][]string
}

// Media is a file resource attached to an item.
type Media struct {
	ID          int64
	Ingester    string
	OriginalURL string
	MediaType   string
	// ThumbnailURLs maps a derivative size (large, medium, square) to its URL.
	ThumbnailURLs map[string]string
	// Data is ingester specific metadata, e.g. the thumbnail declared by a
	// remote file.
	Data map[string]string
}

func (m Media) HasThumbnails() bool {
	return len(m.ThumbnailURLs) > 0
}

// Asset is an explicitly assigned thumbnail.
type Asset struct {
	ID       int64
	AssetURL string
}
