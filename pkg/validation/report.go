package validation

import (
	"strings"
)

// Kind identifies the constraint a violation breaks.
type Kind string

const (
	KindMandatory Kind = "mandatory"
	KindXor       Kind = "xor"
	KindRequires  Kind = "requires"
	KindExcludes  Kind = "excludes"
	KindPrice     Kind = "price"
)

// Violation is one broken constraint.
type Violation struct {
	Kind        Kind     `json:"kind"`
	Message     string   `json:"message"`
	FeatureIDs  []int64  `json:"feature_ids,omitempty"`
	InstanceIDs []string `json:"instance_ids,omitempty"`
}

// Report is the outcome of one validation run.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
	Total      float64     `json:"total"`
	PriceLimit float64     `json:"price_limit"`
}

const (
	reportHeader = "Validation Results\n\n"
	validLine    = "Your configuration is valid."
	bullet       = "• "
)

// Lines returns the violation messages in report order.
func (r *Report) Lines() []string {
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = v.Message
	}
	return lines
}

// ByKind returns the violations of the given kind.
func (r *Report) ByKind(kind Kind) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// String renders the human-readable report.
func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString(reportHeader)

	for _, v := range r.Violations {
		sb.WriteString(bullet)
		sb.WriteString(v.Message)
		sb.WriteString("\n")
	}
	if r.Valid {
		sb.WriteString(validLine)
	}

	return sb.String()
}

func (r *Report) add(v Violation) {
	r.Violations = append(r.Violations, v)
	r.Valid = false
}
