package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"promptito-be/pkg/builder/dnd"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
)

var ErrUnknownAction = errors.New("unknown action kind")

// endpoint is the wire form of a drag source or target.
type endpoint struct {
	Type    string     `json:"type"`
	ID      string     `json:"id,omitempty"`
	Segment segment.ID `json:"segment,omitempty"`
}

type wireAction struct {
	Kind      string     `json:"kind"`
	Source    *endpoint  `json:"source,omitempty"`
	Target    *endpoint  `json:"target,omitempty"`
	Title     string     `json:"title,omitempty"`
	Role      string     `json:"role,omitempty"`
	Niche     string     `json:"niche,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Structure string     `json:"structure,omitempty"`
	Enabled   bool       `json:"enabled,omitempty"`
	Segment   segment.ID `json:"segment,omitempty"`
	Text      string     `json:"text,omitempty"`
	ItemID    string     `json:"itemId,omitempty"`
	Content   string     `json:"content,omitempty"`
	Delta     int        `json:"delta,omitempty"`
	Mode      state.Mode `json:"mode,omitempty"`
}

// DecodeAction parses the tagged JSON form {"kind": "...", ...}.
func DecodeAction(raw []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	switch w.Kind {
	case "drop":
		src, err := decodeSource(w.Source)
		if err != nil {
			return nil, err
		}
		return Drop{Source: src, Target: decodeTarget(w.Target)}, nil
	case "setTitle":
		return SetTitle{Title: w.Title}, nil
	case "setRole":
		return SetRole{Role: w.Role}, nil
	case "setNiche":
		return SetNiche{Niche: w.Niche}, nil
	case "setTags":
		return SetTags{Tags: w.Tags}, nil
	case "setStructure":
		return SetStructure{Structure: w.Structure}, nil
	case "toggleAntiHallucination":
		return ToggleAntiHallucination{Enabled: w.Enabled}, nil
	case "setManualText":
		return SetManualText{Segment: w.Segment, Text: w.Text}, nil
	case "editItem":
		return EditItem{ItemID: w.ItemID, Content: w.Content}, nil
	case "removeItem":
		return RemoveItem{ItemID: w.ItemID}, nil
	case "moveSegment":
		return MoveSegment{Segment: w.Segment, Delta: w.Delta}, nil
	case "setMode":
		return SetMode{Mode: w.Mode}, nil
	case "completeOnboarding":
		return CompleteOnboarding{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, w.Kind)
	}
}

func decodeSource(e *endpoint) (dnd.Source, error) {
	if e == nil {
		return nil, errors.New("drop action requires a source")
	}
	switch e.Type {
	case "palette":
		return dnd.PaletteSource{BlockID: e.ID}, nil
	case "item":
		return dnd.ItemSource{ItemID: e.ID}, nil
	case "segment":
		return dnd.SegmentRowSource{Segment: e.Segment}, nil
	default:
		return nil, fmt.Errorf("unknown drag source type %q", e.Type)
	}
}

// decodeTarget maps an absent or unrecognized target to nil, a drop outside
// every zone.
func decodeTarget(e *endpoint) dnd.Target {
	if e == nil {
		return nil
	}
	switch e.Type {
	case "item":
		return dnd.ItemTarget{ItemID: e.ID}
	case "column":
		return dnd.ColumnTarget{Segment: e.Segment}
	case "segment":
		return dnd.SegmentRowTarget{Segment: e.Segment}
	default:
		return nil
	}
}
