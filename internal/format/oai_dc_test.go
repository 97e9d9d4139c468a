package format

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/totegamma/oairepo/internal/domain"
)

func literal(text string) domain.Value {
	return domain.Value{Type: domain.ValueLiteral, Text: text}
}

func sampleItem() domain.Item {
	return domain.Item{
		ID: 7,
		Values: map[string][]domain.Value{
			"dcterms:rights": {literal("CC-BY")},
			"dcterms:title":  {literal("A Title"), {Type: domain.ValueLiteral, Text: "Un titre", Lang: "fr"}},
			"dcterms:creator": {
				literal("Doe, John"),
			},
			"dcterms:contributor": {{
				Type:       domain.ValueLiteral,
				Text:       "Smith, Jane",
				Annotation: map[string][]string{domain.TermRole: {"editor", "illustrator"}},
			}},
			"dcterms:relation": {{Type: domain.ValueURI, URI: "http://example.org/rel", Text: "Related"}},
		},
	}
}

func render(t *testing.T, f Format, item domain.Item) string {
	t.Helper()
	out, err := f.Render(item)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertWellFormed(t, out)
	return string(out)
}

func assertWellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed xml %s: %v", data, err)
		}
	}
}

func TestOaiDcContributorRoles(t *testing.T) {
	f := NewOaiDc(Params{})
	out := render(t, f, sampleItem())

	if !strings.Contains(out, "<dc:contributor>Smith, Jane [editor, illustrator]</dc:contributor>") {
		t.Fatalf("contributor roles not appended: %s", out)
	}
}

func TestOaiDcSchemaOrder(t *testing.T) {
	out := render(t, NewOaiDc(Params{}), sampleItem())

	order := []string{"<dc:title>", "<dc:creator>", "<dc:contributor>", "<dc:relation", "<dc:rights>"}
	last := -1
	for _, tag := range order {
		i := strings.Index(out, tag)
		if i < 0 {
			t.Fatalf("missing %s in %s", tag, out)
		}
		if i < last {
			t.Fatalf("%s out of schema order in %s", tag, out)
		}
		last = i
	}

	if !strings.Contains(out, `<dc:title xml:lang="fr">Un titre</dc:title>`) {
		t.Errorf("language attribute missing: %s", out)
	}
	if !strings.Contains(out, `<dc:relation xsi:type="dcterms:URI">http://example.org/rel</dc:relation>`) {
		t.Errorf("uri value not typed: %s", out)
	}
}

func TestOaiDcDeterministic(t *testing.T) {
	f := NewOaiDc(Params{ExposeMedia: true})
	item := sampleItem()
	item.Media = []domain.Media{{ID: 1, OriginalURL: "http://example.org/files/1.jpg"}}

	a, err := f.Render(item)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Render(item)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("renders differ:\n%s\n%s", a, b)
	}
}

func TestOaiDcNoMediaNoThumbnail(t *testing.T) {
	out := render(t, NewOaiDc(Params{ExposeMedia: false}), sampleItem())

	if strings.Contains(out, "dc:identifier.thumbnail") {
		t.Errorf("unexpected thumbnail: %s", out)
	}
	if strings.Contains(out, "<dc:identifier") {
		t.Errorf("unexpected identifier: %s", out)
	}
}

func TestOaiDcIdentifiers(t *testing.T) {
	item := sampleItem()
	item.Media = []domain.Media{
		{ID: 1, OriginalURL: "http://example.org/files/1.jpg", ThumbnailURLs: map[string]string{"medium": "http://example.org/medium/1.jpg"}},
		{ID: 2, OriginalURL: "http://example.org/files/2.pdf"},
	}
	f := NewOaiDc(Params{
		ExposeMedia: true,
		ItemURL:     func(i domain.Item) string { return "http://example.org/item/7" },
	})
	out := render(t, f, item)

	want := `<dc:identifier xsi:type="dcterms:URI">http://example.org/item/7</dc:identifier>` +
		`<dc:identifier.thumbnail xsi:type="dcterms:URI">http://example.org/medium/1.jpg</dc:identifier.thumbnail>` +
		`<dc:identifier xsi:type="dcterms:URI">http://example.org/files/1.jpg</dc:identifier>` +
		`<dc:identifier xsi:type="dcterms:URI">http://example.org/files/2.pdf</dc:identifier>`
	if !strings.Contains(out, want) {
		t.Fatalf("identifier tail mismatch:\n%s", out)
	}
}

func TestThumbnailPriority(t *testing.T) {
	medium := map[string]string{"medium": "http://example.org/medium.jpg"}
	var tests = []struct {
		name string
		item domain.Item
		want string
	}{
		{"none", domain.Item{}, ""},
		{"asset wins", domain.Item{
			Thumbnail: &domain.Asset{AssetURL: "http://example.org/asset.png"},
			Media:     []domain.Media{{Ingester: "remoteFile", Data: map[string]string{"thumbnail": "http://remote/t.jpg"}}},
		}, "http://example.org/asset.png"},
		{"remote declared", domain.Item{
			Media: []domain.Media{{Ingester: "remoteFile", Data: map[string]string{"thumbnail": "http://remote/t.jpg"}, ThumbnailURLs: medium}},
		}, "http://remote/t.jpg"},
		{"remote without declared falls back", domain.Item{
			Media: []domain.Media{{Ingester: "remoteFile", ThumbnailURLs: medium}},
		}, "http://example.org/medium.jpg"},
		{"generated medium", domain.Item{
			Media: []domain.Media{{Ingester: "upload", ThumbnailURLs: medium}},
		}, "http://example.org/medium.jpg"},
		{"no derivatives", domain.Item{
			Media: []domain.Media{{Ingester: "upload"}},
		}, ""},
	}

	for _, test := range tests {
		if got := thumbnailURL(test.item); got != test.want {
			t.Errorf("%s: got %q want %q", test.name, got, test.want)
		}
	}
}

func TestOaiDcThesisPolicy(t *testing.T) {
	item := domain.Item{Values: map[string][]domain.Value{
		"dcterms:description": {
			literal("Thesis (M.A.)--Fashion Institute of Technology, State University of New York, 2019"),
			literal("A plain description"),
		},
	}}

	out := render(t, NewOaiDc(Params{ElementPolicies: []ElementPolicy{ThesisDescription}}), item)
	if !strings.Contains(out, "<dc:description.thesis>Thesis (M.A.)") {
		t.Errorf("thesis statement not re-tagged: %s", out)
	}
	if !strings.Contains(out, "<dc:description>A plain description</dc:description>") {
		t.Errorf("plain description altered: %s", out)
	}

	out = render(t, NewOaiDc(Params{}), item)
	if strings.Contains(out, "description.thesis") {
		t.Errorf("policy applied without being configured: %s", out)
	}
}

func TestThesisDescription(t *testing.T) {
	var tests = []struct {
		localName string
		text      string
		ok        bool
	}{
		{"description", "MFA thesis, Fashion Institute of Technology, State University of New York", true},
		{"description", "Fashion Institute of Technology, State University of New York", false},
		{"description", "M.P.S. thesis, another university", false},
		{"abstract", "MBA, Fashion Institute of Technology, State University of New York", false},
	}
	for _, test := range tests {
		name, ok := ThesisDescription(test.localName, test.text)
		if ok != test.ok {
			t.Errorf("ThesisDescription(%q, %q) = %v", test.localName, test.text, ok)
		}
		if ok && name != "dc:description.thesis" {
			t.Errorf("unexpected element %s", name)
		}
	}
}

func TestOaiDcHooks(t *testing.T) {
	f := NewOaiDc(Params{Hooks: Hooks{
		Pre: func(item domain.Item, values map[string][]domain.Value) map[string][]domain.Value {
			values["dcterms:publisher"] = []domain.Value{literal("Injected Press")}
			return values
		},
		Term: func(item domain.Item, term string, values []domain.Value) []domain.Value {
			if term == "dcterms:rights" {
				return nil
			}
			return values
		},
	}})
	item := sampleItem()
	out := render(t, f, item)

	if !strings.Contains(out, "<dc:publisher>Injected Press</dc:publisher>") {
		t.Errorf("pre hook ignored: %s", out)
	}
	if strings.Contains(out, "dc:rights") {
		t.Errorf("term hook ignored: %s", out)
	}
	if _, ok := item.Values["dcterms:publisher"]; ok {
		t.Errorf("pre hook must not mutate the item")
	}
}
