// Package editor is the single reducer behind every builder mutation.
package editor

import (
	"strings"

	"promptito-be/pkg/builder/dnd"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/reorder"
)

// Action is one user intent.
type Action interface{ isAction() }

type (
	Drop struct {
		Source dnd.Source
		Target dnd.Target
	}
	SetTitle     struct{ Title string }
	SetRole      struct{ Role string }
	SetNiche     struct{ Niche string }
	SetTags      struct{ Tags []string }
	SetStructure struct{ Structure string }

	ToggleAntiHallucination struct{ Enabled bool }

	SetManualText struct {
		Segment segment.ID
		Text    string
	}
	EditItem struct {
		ItemID  string
		Content string
	}
	RemoveItem struct{ ItemID string }

	// MoveSegment shifts a segment row by Delta positions, -1 for up.
	MoveSegment struct {
		Segment segment.ID
		Delta   int
	}
	SetMode            struct{ Mode state.Mode }
	CompleteOnboarding struct{}
)

func (Drop) isAction()                    {}
func (SetTitle) isAction()                {}
func (SetRole) isAction()                 {}
func (SetNiche) isAction()                {}
func (SetTags) isAction()                 {}
func (SetStructure) isAction()            {}
func (ToggleAntiHallucination) isAction() {}
func (SetManualText) isAction()           {}
func (EditItem) isAction()                {}
func (RemoveItem) isAction()              {}
func (MoveSegment) isAction()             {}
func (SetMode) isAction()                 {}
func (CompleteOnboarding) isAction()      {}

type Editor struct {
	dnd *dnd.Controller
	tr  i18n.Translator
}

func New(controller *dnd.Controller, tr i18n.Translator) *Editor {
	return &Editor{dnd: controller, tr: tr}
}

// Reduce applies a to st and returns a normalized state. It never fails and
// never modifies st.
func (e *Editor) Reduce(st state.BuilderState, a Action) state.BuilderState {
	out := st.Clone()
	switch act := a.(type) {
	case Drop:
		out = e.dnd.Drop(state.Normalize(out, e.tr), act.Source, act.Target)
	case SetTitle:
		out.Title = act.Title
	case SetRole:
		out.Role = act.Role
	case SetNiche:
		out.Niche = act.Niche
	case SetTags:
		out.Tags = cleanTags(act.Tags)
	case SetStructure:
		if !segment.IsKnownStructure(act.Structure) {
			break
		}
		out.Structure = act.Structure
		out.Macro = act.Structure
		out.Columns = state.NormalizeColumns(out.Columns, e.tr)
		out.SegmentOrder = state.NormalizeSegmentOrder(segment.Segments(act.Structure), out.Columns)
	case ToggleAntiHallucination:
		out.AntiHallucination = act.Enabled
	case SetManualText:
		if segment.IsKnown(act.Segment) {
			out.Columns = state.UpsertManualItem(state.NormalizeColumns(out.Columns, e.tr), act.Segment, act.Text, e.tr)
		}
	case EditItem:
		if seg, idx, ok := out.FindItem(act.ItemID); ok {
			out.Column(seg).Items[idx].Content = act.Content
		}
	case RemoveItem:
		if seg, idx, ok := out.FindItem(act.ItemID); ok && !out.Items(seg)[idx].IsSafety() {
			col := out.Column(seg)
			col.Items = reorder.RemoveAt(col.Items, idx)
		}
	case MoveSegment:
		order := state.NormalizeSegmentOrder(out.SegmentOrder, out.Columns)
		from := reorder.IndexFunc(order, func(id segment.ID) bool { return id == act.Segment })
		out.SegmentOrder = reorder.Move(order, from, from+act.Delta)
	case SetMode:
		if act.Mode == state.ModePro || act.Mode == state.ModeQuest {
			out.PreferredMode = act.Mode
		}
	case CompleteOnboarding:
		out.OnboardingCompleted = true
	}
	return state.Normalize(out, e.tr)
}

// ReduceAll folds actions over st in order.
func (e *Editor) ReduceAll(st state.BuilderState, actions ...Action) state.BuilderState {
	for _, a := range actions {
		st = e.Reduce(st, a)
	}
	return st
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
