package domain

type ValueType string

const (
	ValueLiteral  ValueType = "literal"
	ValueURI      ValueType = "uri"
	ValueResource ValueType = "resource"
)

const (
	IngesterRemoteFile = "remoteFile"

	ThumbnailMedium = "medium"

	// TermRole is the annotation term carrying contributor roles.
	TermRole = "bf:role"
)

// DCTerms are the fifteen unqualified Dublin Core elements in oai_dc schema order.
var DCTerms = []string{
	"title",
	"creator",
	"subject",
	"description",
	"publisher",
	"contributor",
	"date",
	"type",
	"format",
	"identifier",
	"source",
	"language",
	"relation",
	"coverage",
	"rights",
}

// DCTerm qualifies a Dublin Core local name with the dcterms prefix.
func DCTerm(localName string) string {
	return "dcterms:" + localName
}
