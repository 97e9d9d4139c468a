package format

import (
	"strconv"

	"github.com/totegamma/oairepo/internal/domain"
)

const (
	PrefixMets     = "mets"
	NamespaceMets  = "http://www.loc.gov/METS/"
	SchemaMets     = "http://www.loc.gov/standards/mets/mets.xsd"
	NamespaceXlink = "http://www.w3.org/1999/xlink"
)

// Mets packages a Dublin Core description with the item's files.
type Mets struct {
	dc OaiDc
}

func NewMets(p Params) Format {
	return &Mets{dc: OaiDc{base: base{params: p}}}
}

func (f *Mets) Prefix() string    { return PrefixMets }
func (f *Mets) Namespace() string { return NamespaceMets }
func (f *Mets) Schema() string    { return SchemaMets }

func (f *Mets) Render(item domain.Item) ([]byte, error) {
	dmdID := "dmd-" + strconv.FormatInt(item.ID, 10)

	w := newWriter()
	rootAttrs := []Attr{
		{Name: "xmlns:mets", Value: NamespaceMets},
		{Name: "xmlns:xlink", Value: NamespaceXlink},
		{Name: "xmlns:dc", Value: NamespaceDC},
		{Name: "xmlns:xsi", Value: NamespaceXSI},
		{Name: "xsi:schemaLocation", Value: NamespaceMets + " " + SchemaMets},
	}
	if id := f.dc.recordID(item); id != "" {
		rootAttrs = append(rootAttrs, Attr{Name: "OBJID", Value: id})
	}
	w.open("mets:mets", rootAttrs...)

	w.open("mets:dmdSec", Attr{Name: "ID", Value: dmdID})
	w.open("mets:mdWrap", Attr{Name: "MDTYPE", Value: "DC"})
	w.open("mets:xmlData")
	f.dc.writeElements(w, item)
	if id := f.dc.itemURL(item); id != "" {
		w.element("dc:identifier", id, uriType)
	}
	w.close("mets:xmlData")
	w.close("mets:mdWrap")
	w.close("mets:dmdSec")

	var fileIDs []string
	if f.dc.params.ExposeMedia {
		var files []domain.Media
		for _, m := range item.Media {
			if m.OriginalURL != "" {
				files = append(files, m)
			}
		}
		if len(files) > 0 {
			w.open("mets:fileSec")
			w.open("mets:fileGrp", Attr{Name: "USE", Value: "ORIGINAL"})
			for _, m := range files {
				fileID := "file-" + strconv.FormatInt(m.ID, 10)
				fileIDs = append(fileIDs, fileID)
				attrs := []Attr{{Name: "ID", Value: fileID}}
				if m.MediaType != "" {
					attrs = append(attrs, Attr{Name: "MIMETYPE", Value: m.MediaType})
				}
				w.open("mets:file", attrs...)
				w.empty("mets:FLocat", Attr{Name: "LOCTYPE", Value: "URL"}, Attr{Name: "xlink:href", Value: m.OriginalURL})
				w.close("mets:file")
			}
			w.close("mets:fileGrp")
			w.close("mets:fileSec")
		}
	}

	w.open("mets:structMap")
	w.open("mets:div", Attr{Name: "TYPE", Value: "item"}, Attr{Name: "DMDID", Value: dmdID})
	for _, fileID := range fileIDs {
		w.empty("mets:fptr", Attr{Name: "FILEID", Value: fileID})
	}
	w.close("mets:div")
	w.close("mets:structMap")

	w.close("mets:mets")
	return w.bytes()
}
