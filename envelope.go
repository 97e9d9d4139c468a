package oairepo

import (
	"bytes"
	"encoding/xml"
	"net/url"
	"time"
)

// Response is the <OAI-PMH> document. Errors and a verb payload are mutually
// exclusive; use Builder to assemble one.
type Response struct {
	XMLName        xml.Name    `xml:"OAI-PMH"`
	Xmlns          string      `xml:"xmlns,attr"`
	XmlnsXSI       string      `xml:"xmlns:xsi,attr"`
	SchemaLocation string      `xml:"xsi:schemaLocation,attr"`
	ResponseDate   string      `xml:"responseDate"`
	Request        RequestEcho `xml:"request"`
	Errors         []Error     `xml:"error,omitempty"`

	Identify            *Identify            `xml:"Identify,omitempty"`
	ListMetadataFormats *ListMetadataFormats `xml:"ListMetadataFormats,omitempty"`
	ListSets            *ListSets            `xml:"ListSets,omitempty"`
	GetRecord           *GetRecord           `xml:"GetRecord,omitempty"`
	ListIdentifiers     *ListIdentifiers     `xml:"ListIdentifiers,omitempty"`
	ListRecords         *ListRecords         `xml:"ListRecords,omitempty"`
}

// RequestEcho is the <request> element: base URL plus the arguments that
// were understood.
type RequestEcho struct {
	Verb            string `xml:"verb,attr,omitempty"`
	Identifier      string `xml:"identifier,attr,omitempty"`
	MetadataPrefix  string `xml:"metadataPrefix,attr,omitempty"`
	From            string `xml:"from,attr,omitempty"`
	Until           string `xml:"until,attr,omitempty"`
	Set             string `xml:"set,attr,omitempty"`
	ResumptionToken string `xml:"resumptionToken,attr,omitempty"`
	URL             string `xml:",chardata"`
}

type Identify struct {
	RepositoryName    string        `xml:"repositoryName"`
	BaseURL           string        `xml:"baseURL"`
	ProtocolVersion   string        `xml:"protocolVersion"`
	AdminEmails       []string      `xml:"adminEmail"`
	EarliestDatestamp string        `xml:"earliestDatestamp"`
	DeletedRecord     string        `xml:"deletedRecord"`
	Granularity       string        `xml:"granularity"`
	Descriptions      []Description `xml:"description,omitempty"`
}

type Description struct {
	OAIIdentifier *OAIIdentifier `xml:"oai-identifier,omitempty"`
}

type OAIIdentifier struct {
	Xmlns                string `xml:"xmlns,attr"`
	XmlnsXSI             string `xml:"xmlns:xsi,attr"`
	SchemaLocation       string `xml:"xsi:schemaLocation,attr"`
	Scheme               string `xml:"scheme"`
	RepositoryIdentifier string `xml:"repositoryIdentifier"`
	Delimiter            string `xml:"delimiter"`
	SampleIdentifier     string `xml:"sampleIdentifier"`
}

// NewOAIIdentifierDescription describes the oai:<namespace>:<id> scheme.
func NewOAIIdentifierDescription(namespaceID string) Description {
	return Description{
		OAIIdentifier: &OAIIdentifier{
			Xmlns:                NamespaceOAIID,
			XmlnsXSI:             NamespaceXSI,
			SchemaLocation:       NamespaceOAIID + " " + SchemaOAIID,
			Scheme:               "oai",
			RepositoryIdentifier: namespaceID,
			Delimiter:            ":",
			SampleIdentifier:     ComposeOAIIdentifier(namespaceID, 1),
		},
	}
}

type MetadataFormat struct {
	Prefix    string `xml:"metadataPrefix"`
	Schema    string `xml:"schema"`
	Namespace string `xml:"metadataNamespace"`
}

type ListMetadataFormats struct {
	Formats []MetadataFormat `xml:"metadataFormat"`
}

type Set struct {
	Spec        string          `xml:"setSpec"`
	Name        string          `xml:"setName"`
	Description *SetDescription `xml:"setDescription,omitempty"`
}

// SetDescription holds a pre-rendered oai_dc fragment.
type SetDescription struct {
	Inner []byte `xml:",innerxml"`
}

const (
	namespaceOAIDC = "http://www.openarchives.org/OAI/2.0/oai_dc/"
	schemaOAIDC    = "http://www.openarchives.org/OAI/2.0/oai_dc.xsd"
	namespaceDC    = "http://purl.org/dc/elements/1.1/"
)

// NewSetDescription wraps text in a single dc:description element.
func NewSetDescription(text string) *SetDescription {
	if text == "" {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(`<oai_dc:dc xmlns:oai_dc="` + namespaceOAIDC + `" xmlns:dc="` + namespaceDC +
		`" xmlns:xsi="` + NamespaceXSI + `" xsi:schemaLocation="` + namespaceOAIDC + " " + schemaOAIDC + `">`)
	buf.WriteString("<dc:description>")
	_ = xml.EscapeText(&buf, []byte(text))
	buf.WriteString("</dc:description></oai_dc:dc>")
	return &SetDescription{Inner: buf.Bytes()}
}

type ListSets struct {
	Sets            []Set            `xml:"set"`
	ResumptionToken *ResumptionToken `xml:"resumptionToken,omitempty"`
}

type Header struct {
	Status     string   `xml:"status,attr,omitempty"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
}

// Metadata holds the fragment produced by a metadata format.
type Metadata struct {
	Inner []byte `xml:",innerxml"`
}

type Record struct {
	Header   Header    `xml:"header"`
	Metadata *Metadata `xml:"metadata,omitempty"`
}

type GetRecord struct {
	Record Record `xml:"record"`
}

type ListIdentifiers struct {
	Headers         []Header         `xml:"header"`
	ResumptionToken *ResumptionToken `xml:"resumptionToken,omitempty"`
}

type ListRecords struct {
	Records         []Record         `xml:"record"`
	ResumptionToken *ResumptionToken `xml:"resumptionToken,omitempty"`
}

// ResumptionToken is the flow control element. An empty Value marks the
// last page of a resumed list.
type ResumptionToken struct {
	ExpirationDate   string `xml:"expirationDate,attr,omitempty"`
	CompleteListSize int    `xml:"completeListSize,attr"`
	Cursor           int    `xml:"cursor,attr"`
	Value            string `xml:",chardata"`
}

// Payload is a verb specific response body.
type Payload interface {
	attach(r *Response)
}

func (p *Identify) attach(r *Response)            { r.Identify = p }
func (p *ListMetadataFormats) attach(r *Response) { r.ListMetadataFormats = p }
func (p *ListSets) attach(r *Response)            { r.ListSets = p }
func (p *GetRecord) attach(r *Response)           { r.GetRecord = p }
func (p *ListIdentifiers) attach(r *Response)     { r.ListIdentifiers = p }
func (p *ListRecords) attach(r *Response)         { r.ListRecords = p }

// Builder assembles a Response.
type Builder struct {
	baseURL string
	now     time.Time
	params  url.Values
	errors  []Error
	payload Payload
}

func NewBuilder(baseURL string, now time.Time) *Builder {
	return &Builder{baseURL: baseURL, now: now}
}

// Echo records the request arguments for the <request> element.
func (b *Builder) Echo(params url.Values) {
	b.params = params
}

// AddError appends an error unless an identical one is already present.
func (b *Builder) AddError(code ErrorCode, message string) {
	for _, e := range b.errors {
		if e.Code == code && e.Message == message {
			return
		}
	}
	b.errors = append(b.errors, Error{Code: code, Message: message})
}

func (b *Builder) HasErrors() bool {
	return len(b.errors) > 0
}

func (b *Builder) Errors() []Error {
	return b.errors
}

func (b *Builder) SetPayload(p Payload) {
	b.payload = p
}

// Build produces the document. When errors were added the payload is dropped.
func (b *Builder) Build() *Response {
	r := &Response{
		Xmlns:          NamespaceOAI,
		XmlnsXSI:       NamespaceXSI,
		SchemaLocation: NamespaceOAI + " " + SchemaOAI,
		ResponseDate:   FormatDatestamp(b.now),
		Request:        RequestEcho{URL: b.baseURL},
	}

	if len(b.errors) > 0 {
		r.Errors = append([]Error(nil), b.errors...)
		if !b.hasCode(BadVerb) && !b.hasCode(BadArgument) {
			b.echoArguments(&r.Request)
		}
		return r
	}

	b.echoArguments(&r.Request)
	if b.payload != nil {
		b.payload.attach(r)
	}
	return r
}

func (b *Builder) hasCode(code ErrorCode) bool {
	for _, e := range b.errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func (b *Builder) echoArguments(echo *RequestEcho) {
	if b.params == nil {
		return
	}
	echo.Verb = b.params.Get(ArgVerb)
	echo.Identifier = b.params.Get(ArgIdentifier)
	echo.MetadataPrefix = b.params.Get(ArgMetadataPrefix)
	echo.From = b.params.Get(ArgFrom)
	echo.Until = b.params.Get(ArgUntil)
	echo.Set = b.params.Get(ArgSet)
	echo.ResumptionToken = b.params.Get(ArgResumptionToken)
}

// Marshal encodes the response with an XML declaration.
func (r *Response) Marshal() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body))
	out = append(out, xml.Header...)
	return append(out, body...), nil
}
