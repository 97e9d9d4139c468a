package format

import (
	"strings"

	"github.com/totegamma/oairepo/internal/domain"
)

const (
	PrefixCdwaLite    = "cdwalite"
	NamespaceCdwaLite = "http://www.getty.edu/CDWA/CDWALite"
	SchemaCdwaLite    = "http://www.getty.edu/CDWA/CDWALite/CDWALite-xsd-public-v1-1.xsd"

	cdwaUnknown         = "Unknown"
	cdwaUnknownLocation = "location unknown"
)

// CdwaLite renders the Getty CDWA Lite schema for works of art.
type CdwaLite struct {
	base
}

func NewCdwaLite(p Params) Format {
	return &CdwaLite{base: base{params: p}}
}

func (f *CdwaLite) Prefix() string    { return PrefixCdwaLite }
func (f *CdwaLite) Namespace() string { return NamespaceCdwaLite }
func (f *CdwaLite) Schema() string    { return SchemaCdwaLite }

func (f *CdwaLite) Render(item domain.Item) ([]byte, error) {
	values := f.values(item)
	texts := func(localName string) []string {
		var out []string
		for _, v := range f.termValues(item, values, domain.DCTerm(localName)) {
			if text, _ := formatValue(v); text != "" {
				out = append(out, text)
			}
		}
		return out
	}
	orUnknown := func(s []string, fallback string) []string {
		if len(s) == 0 {
			return []string{fallback}
		}
		return s
	}

	w := newWriter()
	w.open("cdwalite:cdwaliteWrap",
		Attr{Name: "xmlns:cdwalite", Value: NamespaceCdwaLite},
		Attr{Name: "xmlns:xsi", Value: NamespaceXSI},
		Attr{Name: "xsi:schemaLocation", Value: NamespaceCdwaLite + " " + SchemaCdwaLite},
	)
	w.open("cdwalite:cdwalite")

	w.open("cdwalite:descriptiveMetadata")

	w.open("cdwalite:objectWorkTypeWrap")
	for _, t := range orUnknown(texts("type"), cdwaUnknown) {
		w.element("cdwalite:objectWorkType", t)
	}
	w.close("cdwalite:objectWorkTypeWrap")

	w.open("cdwalite:titleWrap")
	for _, t := range orUnknown(texts("title"), cdwaUnknown) {
		w.open("cdwalite:titleSet")
		w.element("cdwalite:title", t)
		w.close("cdwalite:titleSet")
	}
	w.close("cdwalite:titleWrap")

	creators := texts("creator")
	w.element("cdwalite:displayCreator", strings.Join(orUnknown(creators, cdwaUnknown), "; "))
	w.open("cdwalite:indexingCreatorWrap")
	for _, c := range orUnknown(creators, cdwaUnknown) {
		w.open("cdwalite:indexingCreatorSet")
		w.open("cdwalite:nameCreatorSet")
		w.element("cdwalite:nameCreator", c)
		w.close("cdwalite:nameCreatorSet")
		w.element("cdwalite:roleCreator", cdwaUnknown)
		w.close("cdwalite:indexingCreatorSet")
	}
	w.close("cdwalite:indexingCreatorWrap")

	dates := texts("date")
	w.element("cdwalite:displayCreationDate", orUnknown(dates, cdwaUnknown)[0])
	if len(dates) > 0 {
		w.open("cdwalite:indexingDatesWrap")
		w.open("cdwalite:indexingDatesSet")
		w.element("cdwalite:earliestDate", dates[0])
		w.element("cdwalite:latestDate", dates[len(dates)-1])
		w.close("cdwalite:indexingDatesSet")
		w.close("cdwalite:indexingDatesWrap")
	}

	w.open("cdwalite:locationWrap")
	w.open("cdwalite:locationSet")
	w.element("cdwalite:locationName", orUnknown(texts("coverage"), cdwaUnknownLocation)[0])
	w.close("cdwalite:locationSet")
	w.close("cdwalite:locationWrap")

	if subjects := texts("subject"); len(subjects) > 0 {
		w.open("cdwalite:subjectWrap")
		for _, s := range subjects {
			w.open("cdwalite:subjectSet")
			w.element("cdwalite:subject", s)
			w.close("cdwalite:subjectSet")
		}
		w.close("cdwalite:subjectWrap")
	}

	if notes := texts("description"); len(notes) > 0 {
		w.open("cdwalite:descriptiveNoteWrap")
		for _, n := range notes {
			w.open("cdwalite:descriptiveNoteSet")
			w.element("cdwalite:descriptiveNote", n)
			w.close("cdwalite:descriptiveNoteSet")
		}
		w.close("cdwalite:descriptiveNoteWrap")
	}

	w.close("cdwalite:descriptiveMetadata")

	w.open("cdwalite:administrativeMetadata")

	if rights := texts("rights"); len(rights) > 0 {
		w.open("cdwalite:rightsWork")
		w.element("cdwalite:rightsWorkDisplay", strings.Join(rights, "; "))
		w.close("cdwalite:rightsWork")
	}

	w.open("cdwalite:recordWrap")
	w.element("cdwalite:recordID", f.recordID(item))
	w.element("cdwalite:recordType", "item")
	if u := f.itemURL(item); u != "" {
		w.open("cdwalite:recordInfoSet")
		w.element("cdwalite:recordInfoLink", u)
		w.close("cdwalite:recordInfoSet")
	}
	w.close("cdwalite:recordWrap")

	media := f.mediaURLs(item)
	thumb := thumbnailURL(item)
	if len(media) > 0 || thumb != "" {
		w.open("cdwalite:resourceWrap")
		for _, u := range media {
			w.open("cdwalite:resourceSet")
			w.element("cdwalite:linkResource", u)
			w.close("cdwalite:resourceSet")
		}
		if thumb != "" {
			w.open("cdwalite:resourceSet")
			w.element("cdwalite:linkResource", thumb)
			w.element("cdwalite:resourceViewType", "thumbnail")
			w.close("cdwalite:resourceSet")
		}
		w.close("cdwalite:resourceWrap")
	}

	w.close("cdwalite:administrativeMetadata")

	w.close("cdwalite:cdwalite")
	w.close("cdwalite:cdwaliteWrap")
	return w.bytes()
}
