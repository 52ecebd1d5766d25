// Package compose turns a builder state into prompt text and decides whether
// a state is complete enough to save, export or publish.
package compose

import (
	"strings"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"
)

// SegmentLines returns the trimmed, non-empty contents of seg in stored
// order. For the role segment the state's role text is prepended unless an
// existing line already contains it.
func SegmentLines(st state.BuilderState, seg segment.ID) []string {
	lines := make([]string, 0)
	for _, it := range st.Items(seg) {
		if v := strings.TrimSpace(it.Content); v != "" {
			lines = append(lines, v)
		}
	}
	if seg != segment.Role {
		return lines
	}
	role := strings.TrimSpace(st.Role)
	if role == "" {
		return lines
	}
	needle := strings.ToLower(role)
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), needle) {
			return lines
		}
	}
	return append([]string{role}, lines...)
}

// VisibleSegments is the effective order of st, with constraints hidden when
// the safety block is off and nothing else was added to it.
func VisibleSegments(st state.BuilderState) []segment.ID {
	order := segment.EffectiveOrder(st.Structure, st.SegmentOrder)
	out := make([]segment.ID, 0, len(order))
	for _, id := range order {
		if id == segment.Constraints && !st.AntiHallucination && len(st.Items(id)) == 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Section is one rendered block of the prompt.
type Section struct {
	Segment segment.ID `json:"segment"`
	Label   string     `json:"label"`
	Lines   []string   `json:"lines"`
}

// Sections returns the non-empty visible sections in order.
func Sections(st state.BuilderState, tr i18n.Translator) []Section {
	out := make([]Section, 0)
	for _, id := range VisibleSegments(st) {
		lines := SegmentLines(st, id)
		if len(lines) == 0 {
			continue
		}
		out = append(out, Section{Segment: id, Label: segment.Label(id, tr), Lines: lines})
	}
	return out
}

// Compose renders st as "## <Label>" sections separated by blank lines.
// Equal states always render the same text.
func Compose(st state.BuilderState, tr i18n.Translator) string {
	sections := Sections(st, tr)
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, "## "+s.Label+"\n"+strings.Join(s.Lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// HasContent reports whether at least one visible segment renders lines.
func HasContent(st state.BuilderState) bool {
	for _, id := range VisibleSegments(st) {
		if len(SegmentLines(st, id)) > 0 {
			return true
		}
	}
	return false
}
