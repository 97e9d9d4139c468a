package format

import (
	"strings"
	"testing"

	"github.com/totegamma/oairepo/internal/domain"
)

func TestNewRegistryAlwaysHasOaiDc(t *testing.T) {
	r, err := NewRegistry([]string{"mods", "mods"}, Params{})
	if err != nil {
		t.Fatalf("registry failed: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 formats, got %d", r.Len())
	}
	if r.All()[0].Prefix() != PrefixOaiDc {
		t.Fatalf("oai_dc must come first")
	}
	if _, ok := r.Lookup("mods"); !ok {
		t.Fatalf("mods not registered")
	}
	if _, ok := r.Lookup("xyz"); ok {
		t.Fatalf("unexpected format xyz")
	}

	if _, err := NewRegistry([]string{"xyz"}, Params{}); err == nil {
		t.Fatalf("unknown prefix must fail")
	}
}

func TestBundledFormatsRender(t *testing.T) {
	p := Params{
		ExposeMedia: true,
		ItemURL:     func(i domain.Item) string { return "http://example.org/item/7" },
		RecordID:    func(i domain.Item) string { return "oai:example.org:7" },
	}
	item := sampleItem()
	item.Media = []domain.Media{{ID: 3, OriginalURL: "http://example.org/files/3.tif", MediaType: "image/tiff"}}

	var tests = []struct {
		format Format
		want   []string
	}{
		{NewMods(p), []string{
			`<mods xmlns="http://www.loc.gov/mods/v3"`,
			`<titleInfo><title>A Title</title></titleInfo>`,
			`<name><namePart>Smith, Jane</namePart><role><roleTerm type="text">editor</roleTerm></role><role><roleTerm type="text">illustrator</roleTerm></role></name>`,
			`<url access="raw object">http://example.org/files/3.tif</url>`,
			`<accessCondition>CC-BY</accessCondition>`,
		}},
		{NewMets(p), []string{
			`OBJID="oai:example.org:7"`,
			`<dc:title>A Title</dc:title>`,
			`<mets:file ID="file-3" MIMETYPE="image/tiff"><mets:FLocat LOCTYPE="URL" xlink:href="http://example.org/files/3.tif"></mets:FLocat></mets:file>`,
			`<mets:fptr FILEID="file-3"></mets:fptr>`,
		}},
		{NewCdwaLite(p), []string{
			`<cdwalite:objectWorkType>Unknown</cdwalite:objectWorkType>`,
			`<cdwalite:title>A Title</cdwalite:title>`,
			`<cdwalite:displayCreator>Doe, John</cdwalite:displayCreator>`,
			`<cdwalite:locationName>location unknown</cdwalite:locationName>`,
			`<cdwalite:recordID>oai:example.org:7</cdwalite:recordID>`,
			`<cdwalite:linkResource>http://example.org/files/3.tif</cdwalite:linkResource>`,
		}},
	}

	for _, test := range tests {
		out := render(t, test.format, item)
		for _, want := range test.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s: missing %s in\n%s", test.format.Prefix(), want, out)
			}
		}
	}
}

func TestBundledFormatsRenderEmptyItem(t *testing.T) {
	r, err := NewRegistry(Prefixes, Params{})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range r.All() {
		render(t, f, domain.Item{ID: 1})
	}
}
