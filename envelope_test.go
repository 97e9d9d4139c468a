package oairepo

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestBuilderDropsPayloadOnError(t *testing.T) {
	b := NewBuilder("http://example.org/oai", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	b.Echo(url.Values{"verb": {"Frobnicate"}})
	b.SetPayload(&Identify{RepositoryName: "x"})
	b.AddError(BadVerb, "Illegal verb")
	b.AddError(BadVerb, "Illegal verb")

	r := b.Build()
	if r.Identify != nil {
		t.Fatalf("payload must not be combined with errors")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected one distinct error, got %d", len(r.Errors))
	}
	if r.Request.Verb != "" {
		t.Fatalf("badVerb responses must not echo arguments")
	}

	out, err := r.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`<responseDate>2024-05-06T07:08:09Z</responseDate>`,
		`<request>http://example.org/oai</request>`,
		`<error code="badVerb">Illegal verb</error>`,
		`xmlns="http://www.openarchives.org/OAI/2.0/"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s in %s", want, s)
		}
	}
}

func TestBuilderEchoesArguments(t *testing.T) {
	b := NewBuilder("http://example.org/oai", time.Now())
	b.Echo(url.Values{"verb": {"ListRecords"}, "metadataPrefix": {"oai_dc"}})
	b.SetPayload(&ListRecords{
		Records: []Record{{
			Header:   Header{Identifier: "oai:x:1", Datestamp: "2020-01-01T00:00:00Z"},
			Metadata: &Metadata{Inner: []byte("<a/>")},
		}},
		ResumptionToken: &ResumptionToken{CompleteListSize: 3, Cursor: 0, Value: "tok"},
	})

	out, err := b.Build().Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`<request verb="ListRecords" metadataPrefix="oai_dc">`,
		`<metadata><a/></metadata>`,
		`<resumptionToken completeListSize="3" cursor="0">tok</resumptionToken>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s in %s", want, s)
		}
	}
}

func TestSetDescriptionEscapes(t *testing.T) {
	d := NewSetDescription("a < b")
	if !strings.Contains(string(d.Inner), "<dc:description>a &lt; b</dc:description>") {
		t.Fatalf("unexpected description %s", d.Inner)
	}
	if NewSetDescription("") != nil {
		t.Fatalf("empty description should be omitted")
	}
}
