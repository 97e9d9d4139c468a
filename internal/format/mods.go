package format

import (
	"github.com/totegamma/oairepo/internal/domain"
)

const (
	PrefixMods    = "mods"
	NamespaceMods = "http://www.loc.gov/mods/v3"
	SchemaMods    = "http://www.loc.gov/standards/mods/v3/mods-3-5.xsd"
)

// Mods renders a MODS description mapped from Dublin Core terms.
type Mods struct {
	base
}

func NewMods(p Params) Format {
	return &Mods{base: base{params: p}}
}

func (f *Mods) Prefix() string    { return PrefixMods }
func (f *Mods) Namespace() string { return NamespaceMods }
func (f *Mods) Schema() string    { return SchemaMods }

func (f *Mods) Render(item domain.Item) ([]byte, error) {
	values := f.values(item)
	get := func(localName string) []domain.Value {
		return f.termValues(item, values, domain.DCTerm(localName))
	}

	w := newWriter()
	w.open("mods",
		Attr{Name: "xmlns", Value: NamespaceMods},
		Attr{Name: "xmlns:xsi", Value: NamespaceXSI},
		Attr{Name: "xsi:schemaLocation", Value: NamespaceMods + " " + SchemaMods},
	)

	for _, v := range get("title") {
		text, attrs := formatValue(v)
		if text == "" {
			continue
		}
		w.open("titleInfo")
		w.element("title", text, attrs...)
		w.close("titleInfo")
	}

	for _, v := range get("creator") {
		f.writeName(w, v, []string{"creator"})
	}
	for _, v := range get("contributor") {
		r := roles(v)
		if len(r) == 0 {
			r = []string{"contributor"}
		}
		f.writeName(w, v, r)
	}

	f.writeWrapped(w, "subject", "topic", get("subject"))
	f.writeWrapped(w, "subject", "geographic", get("coverage"))

	for _, v := range get("description") {
		text, attrs := formatValue(v)
		w.element("abstract", text, attrs...)
	}

	publishers, dates := get("publisher"), get("date")
	if len(publishers) > 0 || len(dates) > 0 {
		w.open("originInfo")
		for _, v := range publishers {
			text, attrs := formatValue(v)
			w.element("publisher", text, attrs...)
		}
		for _, v := range dates {
			text, _ := formatValue(v)
			w.element("dateCreated", text)
		}
		w.close("originInfo")
	}

	for _, v := range get("type") {
		text, attrs := formatValue(v)
		w.element("genre", text, attrs...)
	}

	f.writeWrapped(w, "physicalDescription", "internetMediaType", get("format"))

	for _, v := range get("identifier") {
		text, _ := formatValue(v)
		if v.Type == domain.ValueURI {
			w.element("identifier", text, Attr{Name: "type", Value: "uri"})
		} else {
			w.element("identifier", text)
		}
	}

	for _, v := range get("source") {
		f.writeRelatedItem(w, "original", v)
	}
	for _, v := range get("relation") {
		f.writeRelatedItem(w, "", v)
	}

	f.writeWrapped(w, "language", "languageTerm", get("language"))

	for _, v := range get("rights") {
		text, _ := formatValue(v)
		w.element("accessCondition", text)
	}

	itemURL := f.itemURL(item)
	thumb := thumbnailURL(item)
	media := f.mediaURLs(item)
	if itemURL != "" || thumb != "" || len(media) > 0 {
		w.open("location")
		w.element("url", itemURL, Attr{Name: "usage", Value: "primary display"}, Attr{Name: "access", Value: "object in context"})
		w.element("url", thumb, Attr{Name: "access", Value: "preview"})
		for _, u := range media {
			w.element("url", u, Attr{Name: "access", Value: "raw object"})
		}
		w.close("location")
	}

	w.close("mods")
	return w.bytes()
}

func (f *Mods) writeName(w *writer, v domain.Value, roleTerms []string) {
	text, _ := formatValue(v)
	if text == "" {
		return
	}
	w.open("name")
	w.element("namePart", text)
	for _, role := range roleTerms {
		w.open("role")
		w.element("roleTerm", role, Attr{Name: "type", Value: "text"})
		w.close("role")
	}
	w.close("name")
}

// writeWrapped writes <outer><inner>text</inner></outer> per value.
func (f *Mods) writeWrapped(w *writer, outer, inner string, values []domain.Value) {
	for _, v := range values {
		text, attrs := formatValue(v)
		if text == "" {
			continue
		}
		w.open(outer)
		w.element(inner, text, attrs...)
		w.close(outer)
	}
}

func (f *Mods) writeRelatedItem(w *writer, relation string, v domain.Value) {
	text, _ := formatValue(v)
	if text == "" {
		return
	}
	var attrs []Attr
	if relation != "" {
		attrs = append(attrs, Attr{Name: "type", Value: relation})
	}
	w.open("relatedItem", attrs...)
	if v.Type == domain.ValueURI {
		w.open("location")
		w.element("url", text)
		w.close("location")
	} else {
		w.open("titleInfo")
		w.element("title", text)
		w.close("titleInfo")
	}
	w.close("relatedItem")
}
