package oairepo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity of a datestamp argument.
type Granularity int

const (
	GranularityNone Granularity = iota
	GranularityDay
	GranularitySecond
)

const (
	DayFormat    = "2006-01-02"
	SecondFormat = "2006-01-02T15:04:05Z"

	// GranularitySpec is what Identify advertises.
	GranularitySpec = "YYYY-MM-DDThh:mm:ssZ"
)

// ParseDatestamp parses a from/until argument in either granularity.
func ParseDatestamp(s string) (time.Time, Granularity, error) {
	switch len(s) {
	case len(DayFormat):
		t, err := time.Parse(DayFormat, s)
		if err != nil {
			return time.Time{}, GranularityNone, err
		}
		return t, GranularityDay, nil
	case len(SecondFormat):
		t, err := time.Parse(SecondFormat, s)
		if err != nil {
			return time.Time{}, GranularityNone, err
		}
		return t, GranularitySecond, nil
	default:
		return time.Time{}, GranularityNone, fmt.Errorf("invalid datestamp %q", s)
	}
}

// FormatDatestamp renders t in UTC at second granularity.
func FormatDatestamp(t time.Time) string {
	return t.UTC().Format(SecondFormat)
}

// ComposeOAIIdentifier builds oai:<namespace>:<id>.
func ComposeOAIIdentifier(namespaceID string, id int64) string {
	return "oai:" + namespaceID + ":" + strconv.FormatInt(id, 10)
}

// ParseOAIIdentifier extracts the local item id from an identifier issued
// under namespaceID.
func ParseOAIIdentifier(namespaceID, identifier string) (int64, error) {
	prefix := "oai:" + namespaceID + ":"
	if !strings.HasPrefix(identifier, prefix) {
		return 0, fmt.Errorf("identifier %q is outside namespace %q", identifier, namespaceID)
	}
	local := strings.TrimPrefix(identifier, prefix)
	id, err := strconv.ParseInt(local, 10, 64)
	// only the canonical spelling resolves: no sign, no leading zeros
	if err != nil || id <= 0 || strconv.FormatInt(id, 10) != local {
		return 0, fmt.Errorf("invalid local identifier in %q", identifier)
	}
	return id, nil
}
