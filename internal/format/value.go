package format

import (
	"strings"

	"github.com/totegamma/oairepo/internal/domain"
)

var uriType = Attr{Name: "xsi:type", Value: "dcterms:URI"}

// base carries what every format shares: parameters, hook application and
// value formatting.
type base struct {
	params Params
}

// values applies the Pre hook to a copy of the item's term map.
func (b base) values(item domain.Item) map[string][]domain.Value {
	values := make(map[string][]domain.Value, len(item.Values))
	for term, v := range item.Values {
		values[term] = v
	}
	if b.params.Hooks.Pre != nil {
		values = b.params.Hooks.Pre(item, values)
	}
	return values
}

// termValues applies the Term hook to the values of one term.
func (b base) termValues(item domain.Item, values map[string][]domain.Value, term string) []domain.Value {
	v := values[term]
	if b.params.Hooks.Term != nil {
		v = b.params.Hooks.Term(item, term, v)
	}
	return v
}

func (b base) itemURL(item domain.Item) string {
	if b.params.ItemURL == nil {
		return ""
	}
	return b.params.ItemURL(item)
}

func (b base) recordID(item domain.Item) string {
	if b.params.RecordID == nil {
		return ""
	}
	return b.params.RecordID(item)
}

// mediaURLs lists the original file URLs when media are exposed.
func (b base) mediaURLs(item domain.Item) []string {
	if !b.params.ExposeMedia {
		return nil
	}
	var urls []string
	for _, m := range item.Media {
		if m.OriginalURL != "" {
			urls = append(urls, m.OriginalURL)
		}
	}
	return urls
}

// formatValue returns the text of a value and the attributes it implies.
func formatValue(v domain.Value) (string, []Attr) {
	switch v.Type {
	case domain.ValueURI:
		if v.URI == "" {
			return v.Text, nil
		}
		return v.URI, []Attr{uriType}
	case domain.ValueResource:
		if v.ResourceTitle != "" {
			return v.ResourceTitle, nil
		}
		if v.URI != "" {
			return v.URI, []Attr{uriType}
		}
		return v.Text, nil
	default:
		if v.Lang != "" {
			return v.Text, []Attr{{Name: "xml:lang", Value: v.Lang}}
		}
		return v.Text, nil
	}
}

// roles returns the role annotations of a value.
func roles(v domain.Value) []string {
	if v.Annotation == nil {
		return nil
	}
	return v.Annotation[domain.TermRole]
}

// withRoles appends " [role1, role2]" when the value carries roles.
func withRoles(text string, v domain.Value) string {
	r := roles(v)
	if len(r) == 0 {
		return text
	}
	return text + " [" + strings.Join(r, ", ") + "]"
}

// thumbnailURL picks the record thumbnail: the explicit asset, then the
// thumbnail declared by a remote file, then the generated medium thumbnail.
func thumbnailURL(item domain.Item) string {
	if item.Thumbnail != nil && item.Thumbnail.AssetURL != "" {
		return item.Thumbnail.AssetURL
	}
	primary := item.PrimaryMedia()
	if primary == nil {
		return ""
	}
	if primary.Ingester == domain.IngesterRemoteFile && primary.Data != nil {
		if u := primary.Data["thumbnail"]; u != "" {
			return u
		}
	}
	if primary.HasThumbnails() {
		return primary.ThumbnailURLs[domain.ThumbnailMedium]
	}
	return ""
}
