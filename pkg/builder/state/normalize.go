package state

import (
	"encoding/json"
	"strings"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/i18n"

	"github.com/google/uuid"
)

const (
	safetyTitleKey   = "promptBuilder.antiHallucination"
	safetyContentKey = "promptBuilder.antiHallucinationDefault"
	manualTitleKey   = "promptBuilder.manualTitle"
)

// New returns a fresh, normalized state.
func New(tr i18n.Translator) BuilderState {
	return BuilderState{
		Version:           CurrentVersion,
		Structure:         segment.DefaultStructure,
		Macro:             segment.DefaultStructure,
		Niche:             DefaultNiche,
		AntiHallucination: true,
		Tags:              []string{},
		Columns:           baseColumns(tr, true),
		SegmentOrder:      segment.All(),
		PreferredMode:     ModeQuest,
	}
}

// SafetyItem builds the anti-hallucination block.
func SafetyItem(tr i18n.Translator) Item {
	return Item{
		ID:      SafetyItemID,
		Title:   tr.T(safetyTitleKey),
		Content: tr.T(safetyContentKey),
		Level:   LevelBasic,
		Tags:    []string{"safety"},
		Origin:  OriginSystem,
	}
}

func baseColumns(tr i18n.Translator, withSafety bool) []Column {
	cols := make([]Column, 0, len(segment.DefaultOrder))
	for _, id := range segment.DefaultOrder {
		c := Column{ID: id, Title: segment.Label(id, tr), Items: []Item{}}
		if id == segment.Constraints && withSafety {
			c.Items = append(c.Items, SafetyItem(tr))
		}
		cols = append(cols, c)
	}
	return cols
}

// NormalizeColumns returns exactly one column per known segment in canonical
// order. Known columns keep their items, missing ones come from the base
// layout and unknown ids are dropped. The first of duplicated ids wins.
func NormalizeColumns(columns []Column, tr i18n.Translator) []Column {
	existing := make(map[segment.ID]Column, len(columns))
	for _, c := range columns {
		if !segment.IsKnown(c.ID) {
			continue
		}
		if _, dup := existing[c.ID]; dup {
			continue
		}
		existing[c.ID] = c
	}

	// Safety placement is left to EnsureSafetyBlock.
	base := baseColumns(tr, false)
	out := make([]Column, 0, len(base))
	for _, b := range base {
		c, ok := existing[b.ID]
		if !ok {
			out = append(out, b)
			continue
		}
		items := make([]Item, 0, len(c.Items))
		for _, it := range c.Items {
			it = it.clone()
			it.Origin = inferOrigin(it)
			it = releaseReservedID(it)
			if it.Tags == nil {
				it.Tags = []string{}
			}
			if it.Level == "" {
				it.Level = LevelBasic
			}
			items = append(items, it)
		}
		out = append(out, Column{ID: b.ID, Title: b.Title, Items: items})
	}
	return out
}

// releaseReservedID gives a fresh id to an item that holds the safety or a
// manual id without having that origin.
func releaseReservedID(it Item) Item {
	switch {
	case it.ID == SafetyItemID && it.Origin != OriginSystem:
		it.ID = uuid.NewString()
	case strings.HasPrefix(it.ID, manualIDPrefix) && it.Origin != OriginManual:
		it.ID = uuid.NewString()
	}
	return it
}

// NormalizeSegmentOrder keeps the known segments of order that exist in
// columns, drops duplicates and appends the missing ones canonically.
func NormalizeSegmentOrder(order []segment.ID, columns []Column) []segment.ID {
	present := make(map[segment.ID]bool, len(columns))
	for _, c := range columns {
		present[c.ID] = true
	}
	seen := make(map[segment.ID]bool, len(segment.DefaultOrder))
	out := make([]segment.ID, 0, len(segment.DefaultOrder))
	for _, id := range order {
		if !segment.IsKnown(id) || !present[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range segment.DefaultOrder {
		if !seen[id] && present[id] {
			out = append(out, id)
		}
	}
	return out
}

// EnsureSafetyBlock makes constraints hold exactly one safety block when
// enabled and none otherwise. A block already in constraints keeps its
// position; copies found in other segments are dropped.
func EnsureSafetyBlock(columns []Column, enabled bool, tr i18n.Translator) []Column {
	out := make([]Column, len(columns))
	found := false
	for ci, c := range columns {
		kept := make([]Item, 0, len(c.Items)+1)
		for _, it := range c.Items {
			it.Origin = inferOrigin(it)
			it = releaseReservedID(it)
			if it.Origin == OriginSystem {
				if !enabled || found || c.ID != segment.Constraints {
					continue
				}
				found = true
				it.ID = SafetyItemID
				it.Origin = OriginSystem
				it.Title = tr.T(safetyTitleKey)
			}
			kept = append(kept, it)
		}
		out[ci] = Column{ID: c.ID, Title: c.Title, Items: kept}
	}

	if enabled && !found {
		for ci := range out {
			if out[ci].ID == segment.Constraints {
				out[ci].Items = append([]Item{SafetyItem(tr)}, out[ci].Items...)
				break
			}
		}
	}
	return out
}

// UpsertManualItem replaces the manual item of seg. Text that is blank after
// trimming removes it; otherwise the untrimmed text is stored at the end of
// the segment.
func UpsertManualItem(columns []Column, seg segment.ID, text string, tr i18n.Translator) []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		items := make([]Item, 0, len(c.Items)+1)
		for _, it := range c.Items {
			if c.ID == seg && inferOrigin(it) == OriginManual {
				continue
			}
			items = append(items, it)
		}
		if c.ID == seg && strings.TrimSpace(text) != "" {
			items = append(items, Item{
				ID:       ManualItemID(seg),
				Title:    tr.T(manualTitleKey),
				Content:  text,
				SourceID: ManualSourceID,
				Level:    LevelBasic,
				Tags:     []string{},
				Origin:   OriginManual,
			})
		}
		out[i] = Column{ID: c.ID, Title: c.Title, Items: items}
	}
	return out
}

// dedupeManualItems keeps at most one non-empty manual item per column.
func dedupeManualItems(columns []Column) []Column {
	for ci := range columns {
		kept := make([]Item, 0, len(columns[ci].Items))
		seen := false
		for _, it := range columns[ci].Items {
			if it.Origin == OriginManual {
				if seen || strings.TrimSpace(it.Content) == "" {
					continue
				}
				seen = true
				it.ID = ManualItemID(columns[ci].ID)
				it.SourceID = ManualSourceID
			}
			kept = append(kept, it)
		}
		columns[ci].Items = kept
	}
	return columns
}

// Normalize repairs any state into one that satisfies every structural
// invariant. It never fails and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s BuilderState, tr i18n.Translator) BuilderState {
	out := s.Clone()
	out.Version = CurrentVersion
	if strings.TrimSpace(out.Structure) == "" {
		out.Structure = segment.DefaultStructure
	}
	if strings.TrimSpace(out.Macro) == "" {
		out.Macro = out.Structure
	}
	if strings.TrimSpace(out.Niche) == "" {
		out.Niche = DefaultNiche
	}
	// Stored states without a mode predate the guided flow.
	if out.PreferredMode != ModeQuest && out.PreferredMode != ModePro {
		out.PreferredMode = ModePro
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}

	out.Columns = NormalizeColumns(out.Columns, tr)
	out.Columns = dedupeManualItems(out.Columns)
	out.Columns = EnsureSafetyBlock(out.Columns, out.AntiHallucination, tr)
	out.SegmentOrder = NormalizeSegmentOrder(out.SegmentOrder, out.Columns)
	return out
}

// Decode parses a persisted state and normalizes it. Input that is not a
// state at all yields a fresh state and ok=false.
func Decode(raw []byte, tr i18n.Translator) (BuilderState, bool) {
	if len(raw) == 0 {
		return New(tr), false
	}
	// Absent flag means the default, which is on.
	flags := struct {
		AntiHallucination *bool `json:"antiHallucination"`
	}{}
	var s BuilderState
	if err := json.Unmarshal(raw, &s); err != nil {
		return New(tr), false
	}
	if err := json.Unmarshal(raw, &flags); err == nil && flags.AntiHallucination == nil {
		s.AntiHallucination = true
	}
	return Normalize(s, tr), true
}
