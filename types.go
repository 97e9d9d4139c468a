package oairepo

import (
	"fmt"
)

const (
	ProtocolVersion = "2.0"

	NamespaceOAI   = "http://www.openarchives.org/OAI/2.0/"
	SchemaOAI      = "http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"
	NamespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	NamespaceOAIID = "http://www.openarchives.org/OAI/2.0/oai-identifier"
	SchemaOAIID    = "http://www.openarchives.org/OAI/2.0/oai-identifier.xsd"
)

// Verb is one of the six protocol requests.
type Verb string

const (
	VerbIdentify            Verb = "Identify"
	VerbListMetadataFormats Verb = "ListMetadataFormats"
	VerbListSets            Verb = "ListSets"
	VerbListIdentifiers     Verb = "ListIdentifiers"
	VerbListRecords         Verb = "ListRecords"
	VerbGetRecord           Verb = "GetRecord"
)

var verbs = map[Verb]bool{
	VerbIdentify:            true,
	VerbListMetadataFormats: true,
	VerbListSets:            true,
	VerbListIdentifiers:     true,
	VerbListRecords:         true,
	VerbGetRecord:           true,
}

// IsVerb reports whether s names a protocol verb.
func IsVerb(s string) bool {
	return verbs[Verb(s)]
}

// Request argument names.
const (
	ArgVerb            = "verb"
	ArgIdentifier      = "identifier"
	ArgMetadataPrefix  = "metadataPrefix"
	ArgFrom            = "from"
	ArgUntil           = "until"
	ArgSet             = "set"
	ArgResumptionToken = "resumptionToken"
)

// ErrorCode is a protocol level error condition.
type ErrorCode string

const (
	BadArgument             ErrorCode = "badArgument"
	BadResumptionToken      ErrorCode = "badResumptionToken"
	BadVerb                 ErrorCode = "badVerb"
	CannotDisseminateFormat ErrorCode = "cannotDisseminateFormat"
	IDDoesNotExist          ErrorCode = "idDoesNotExist"
	NoRecordsMatch          ErrorCode = "noRecordsMatch"
	NoMetadataFormats       ErrorCode = "noMetadataFormats"
	NoSetHierarchy          ErrorCode = "noSetHierarchy"
)

// Error is an error element of a response. It is a value reported to the
// harvester, not a failure of the server.
type Error struct {
	Code    ErrorCode `xml:"code,attr"`
	Message string    `xml:",chardata"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
