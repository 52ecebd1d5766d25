// Package segment defines the fixed set of prompt segments and the prompt
// structures that decide which segments are active.
package segment

import "promptito-be/pkg/i18n"

// ID names one semantic section of a prompt.
type ID string

const (
	Role         ID = "role"
	Goal         ID = "goal"
	Context      ID = "context"
	Inputs       ID = "inputs"
	Constraints  ID = "constraints"
	OutputFormat ID = "output-format"
	Examples     ID = "examples"
)

// DefaultOrder is the canonical segment order.
var DefaultOrder = []ID{Role, Goal, Context, Inputs, Constraints, OutputFormat, Examples}

// All returns a copy of DefaultOrder.
func All() []ID {
	out := make([]ID, len(DefaultOrder))
	copy(out, DefaultOrder)
	return out
}

// IsKnown reports whether id is one of the seven segments.
func IsKnown(id ID) bool {
	for _, s := range DefaultOrder {
		if s == id {
			return true
		}
	}
	return false
}

// Index returns the canonical position of id, or -1.
func Index(id ID) int {
	for i, s := range DefaultOrder {
		if s == id {
			return i
		}
	}
	return -1
}

func (id ID) LabelKey() string {
	return "promptBuilder.columns." + string(id)
}

func (id ID) PlaceholderKey() string {
	return "promptBuilder.placeholders." + string(id)
}

// Label resolves the display label for id.
func Label(id ID, tr i18n.Translator) string {
	return tr.T(id.LabelKey())
}

// Placeholder resolves the empty-state hint for id.
func Placeholder(id ID, tr i18n.Translator) string {
	return tr.T(id.PlaceholderKey())
}
