package format

import (
	"github.com/totegamma/oairepo/internal/domain"
)

const (
	PrefixOaiDc    = "oai_dc"
	NamespaceOaiDc = "http://www.openarchives.org/OAI/2.0/oai_dc/"
	SchemaOaiDc    = "http://www.openarchives.org/OAI/2.0/oai_dc.xsd"
)

// OaiDc renders the fifteen unqualified Dublin Core elements.
type OaiDc struct {
	base
}

func NewOaiDc(p Params) Format {
	return &OaiDc{base: base{params: p}}
}

func (f *OaiDc) Prefix() string    { return PrefixOaiDc }
func (f *OaiDc) Namespace() string { return NamespaceOaiDc }
func (f *OaiDc) Schema() string    { return SchemaOaiDc }

func (f *OaiDc) Render(item domain.Item) ([]byte, error) {
	w := newWriter()
	w.open("oai_dc:dc",
		Attr{Name: "xmlns:oai_dc", Value: NamespaceOaiDc},
		Attr{Name: "xmlns:dc", Value: NamespaceDC},
		Attr{Name: "xmlns:xsi", Value: NamespaceXSI},
		Attr{Name: "xsi:schemaLocation", Value: NamespaceOaiDc + " " + SchemaOaiDc},
	)

	f.writeElements(w, item)

	if id := f.itemURL(item); id != "" {
		w.element("dc:identifier", id, uriType)
	}
	if thumb := thumbnailURL(item); thumb != "" {
		w.element("dc:identifier.thumbnail", thumb, uriType)
	}
	for _, u := range f.mediaURLs(item) {
		w.element("dc:identifier", u, uriType)
	}

	w.close("oai_dc:dc")
	return w.bytes()
}

// writeElements emits the dc:* elements in schema order.
func (f *OaiDc) writeElements(w *writer, item domain.Item) {
	values := f.values(item)
	for _, localName := range domain.DCTerms {
		term := domain.DCTerm(localName)
		for _, v := range f.termValues(item, values, term) {
			text, attrs := formatValue(v)
			if localName == "contributor" {
				text = withRoles(text, v)
			}
			w.element(f.elementName(localName, text), text, attrs...)
		}
	}
}

func (f *OaiDc) elementName(localName, text string) string {
	for _, policy := range f.params.ElementPolicies {
		if name, ok := policy(localName, text); ok {
			return name
		}
	}
	return "dc:" + localName
}
