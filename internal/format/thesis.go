package format

import "strings"

// ElementPolicy may choose a different element name for a value. ok is false
// when the policy does not apply.
type ElementPolicy func(localName, text string) (name string, ok bool)

const (
	thesisInstitution = "Fashion Institute of Technology, State University of New York"
	thesisElement     = "dc:description.thesis"
)

// Degree abbreviations as they appear in thesis statements. The bare forms
// also match inside unrelated words; that is the established behaviour.
var thesisDegrees = []string{"M.A.", "MA", "M.F.A.", "MFA", "M.P.S.", "MPS", "M.S.", "MS", "M.B.A.", "MBA"}

// ThesisDescription re-tags thesis statements of the institution as
// dc:description.thesis.
func ThesisDescription(localName, text string) (string, bool) {
	if localName != "description" || !strings.Contains(text, thesisInstitution) {
		return "", false
	}
	for _, degree := range thesisDegrees {
		if strings.Contains(text, degree) {
			return thesisElement, true
		}
	}
	return "", false
}
