// Package state holds the prompt builder document and the normalization rules
// that repair it after every mutation or load.
package state

import (
	"strings"
	"time"

	"promptito-be/pkg/builder/segment"
)

const (
	CurrentVersion = 2
	DefaultNiche   = "all"

	SafetyItemID   = "anti-hallucination"
	manualIDPrefix = "manual-"
	ManualSourceID = "manual"
)

// Origin tells where an item came from. It decides whether an item is the
// safety block or a segment's manual text, instead of the item id.
type Origin string

const (
	OriginCatalog Origin = "catalog"
	OriginManual  Origin = "manual"
	OriginSystem  Origin = "system"
)

type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
)

// ParseLevel maps catalog levels onto item levels. Anything above basic
// becomes intermediate.
func ParseLevel(v string) Level {
	if Level(v) == LevelBasic || v == "" {
		return LevelBasic
	}
	return LevelIntermediate
}

type Mode string

const (
	ModeQuest Mode = "quest"
	ModePro   Mode = "pro"
)

// Item is one content block placed in a segment.
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	SourceID string   `json:"sourceId,omitempty"`
	Niche    string   `json:"niche,omitempty"`
	Level    Level    `json:"level"`
	Tags     []string `json:"tags"`
	Origin   Origin   `json:"origin,omitempty"`
}

// IsSafety reports whether the item is the anti-hallucination block.
func (it Item) IsSafety() bool { return it.Origin == OriginSystem }

// IsManual reports whether the item holds a segment's free text.
func (it Item) IsManual() bool { return it.Origin == OriginManual }

func (it Item) clone() Item {
	it.Tags = append([]string{}, it.Tags...)
	return it
}

// Column holds the ordered items of one segment.
type Column struct {
	ID    segment.ID `json:"id"`
	Title string     `json:"title"`
	Items []Item     `json:"items"`
}

// BuilderState is the whole authoring document.
type BuilderState struct {
	Version             int          `json:"version"`
	Title               string       `json:"title"`
	Role                string       `json:"role"`
	Structure           string       `json:"structure"`
	Macro               string       `json:"macro"`
	Niche               string       `json:"niche"`
	AntiHallucination   bool         `json:"antiHallucination"`
	Tags                []string     `json:"tags"`
	Columns             []Column     `json:"columns"`
	SegmentOrder        []segment.ID `json:"segmentOrder"`
	PreferredMode       Mode         `json:"preferredMode,omitempty"`
	OnboardingCompleted bool         `json:"onboardingCompleted,omitempty"`
}

// Draft is the persisted form of a state.
type Draft struct {
	State     BuilderState `json:"state"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (d Draft) Clone() Draft {
	d.State = d.State.Clone()
	return d
}

// ManualItemID is the interchange id of a segment's manual item.
func ManualItemID(seg segment.ID) string {
	return manualIDPrefix + string(seg)
}

// inferOrigin repairs records written before items carried an origin.
func inferOrigin(it Item) Origin {
	switch it.Origin {
	case OriginCatalog, OriginManual, OriginSystem:
		return it.Origin
	}
	switch {
	case it.ID == SafetyItemID:
		return OriginSystem
	case it.SourceID == ManualSourceID || strings.HasPrefix(it.ID, manualIDPrefix):
		return OriginManual
	default:
		return OriginCatalog
	}
}

// Clone returns a deep copy.
func (s BuilderState) Clone() BuilderState {
	out := s
	out.Tags = append([]string{}, s.Tags...)
	out.SegmentOrder = append([]segment.ID{}, s.SegmentOrder...)
	out.Columns = make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		items := make([]Item, len(c.Items))
		for j, it := range c.Items {
			items[j] = it.clone()
		}
		out.Columns[i] = Column{ID: c.ID, Title: c.Title, Items: items}
	}
	return out
}

// Column returns a pointer to the column for seg, or nil.
func (s *BuilderState) Column(seg segment.ID) *Column {
	for i := range s.Columns {
		if s.Columns[i].ID == seg {
			return &s.Columns[i]
		}
	}
	return nil
}

// Items returns the items of seg, or nil when the column is missing.
func (s BuilderState) Items(seg segment.ID) []Item {
	for _, c := range s.Columns {
		if c.ID == seg {
			return c.Items
		}
	}
	return nil
}

// FindItem locates an item across all columns.
func (s BuilderState) FindItem(id string) (segment.ID, int, bool) {
	for _, c := range s.Columns {
		for i, it := range c.Items {
			if it.ID == id {
				return c.ID, i, true
			}
		}
	}
	return "", -1, false
}

// ItemCount counts items across all columns.
func (s BuilderState) ItemCount() int {
	n := 0
	for _, c := range s.Columns {
		n += len(c.Items)
	}
	return n
}

// ManualText returns the manual text stored for seg.
func (s BuilderState) ManualText(seg segment.ID) string {
	for _, it := range s.Items(seg) {
		if it.IsManual() {
			return it.Content
		}
	}
	return ""
}
