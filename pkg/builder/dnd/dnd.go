// Package dnd applies a completed drag gesture to a builder state.
//
// Sources and targets are closed sum types; Controller.Drop is total and an
// invalid combination leaves the state unchanged.
package dnd

import (
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/reorder"

	"github.com/google/uuid"
)

// Source is what was picked up.
type Source interface{ isSource() }

// PaletteSource is a catalog block being imported.
type PaletteSource struct{ BlockID string }

// ItemSource is an item already placed in a segment.
type ItemSource struct{ ItemID string }

// SegmentRowSource is a segment row in the order list.
type SegmentRowSource struct{ Segment segment.ID }

func (PaletteSource) isSource()    {}
func (ItemSource) isSource()       {}
func (SegmentRowSource) isSource() {}

// Target is where it was released. A nil Target means outside any drop zone.
type Target interface{ isTarget() }

// ItemTarget is an existing item.
type ItemTarget struct{ ItemID string }

// ColumnTarget is a segment container.
type ColumnTarget struct{ Segment segment.ID }

// SegmentRowTarget is a segment row in the order list.
type SegmentRowTarget struct{ Segment segment.ID }

func (ItemTarget) isTarget()       {}
func (ColumnTarget) isTarget()     {}
func (SegmentRowTarget) isTarget() {}

// Controller resolves palette blocks and mints ids for imported items.
type Controller struct {
	catalog *catalog.Store
	tr      i18n.Translator
	newID   func() string
}

func NewController(store *catalog.Store, tr i18n.Translator) *Controller {
	return &Controller{catalog: store, tr: tr, newID: uuid.NewString}
}

// WithIDGenerator swaps the id source, mostly for tests.
func (c *Controller) WithIDGenerator(gen func() string) *Controller {
	c.newID = gen
	return c
}

// Drop returns the state after releasing src over dst. The input is never
// modified.
func (c *Controller) Drop(st state.BuilderState, src Source, dst Target) state.BuilderState {
	if src == nil || dst == nil {
		return st.Clone()
	}
	switch s := src.(type) {
	case SegmentRowSource:
		return c.dropSegmentRow(st, s, dst)
	case PaletteSource:
		return c.dropPalette(st, s, dst)
	case ItemSource:
		return c.dropItem(st, s, dst)
	default:
		return st.Clone()
	}
}

func (c *Controller) dropSegmentRow(st state.BuilderState, src SegmentRowSource, dst Target) state.BuilderState {
	out := st.Clone()
	over, ok := dst.(SegmentRowTarget)
	if !ok || over.Segment == src.Segment {
		return out
	}
	order := state.NormalizeSegmentOrder(out.SegmentOrder, out.Columns)
	out.SegmentOrder = reorder.MoveByKey(order, func(id segment.ID) segment.ID { return id }, src.Segment, over.Segment)
	return out
}

// targetColumn resolves the segment a palette or item drop lands in.
func targetColumn(st state.BuilderState, dst Target) (segment.ID, bool) {
	switch d := dst.(type) {
	case ColumnTarget:
		if st.Column(d.Segment) == nil {
			return "", false
		}
		return d.Segment, true
	case ItemTarget:
		seg, _, ok := st.FindItem(d.ItemID)
		return seg, ok
	default:
		return "", false
	}
}

func (c *Controller) dropPalette(st state.BuilderState, src PaletteSource, dst Target) state.BuilderState {
	out := st.Clone()
	block, ok := c.catalog.Block(src.BlockID)
	if !ok {
		return out
	}
	seg, ok := targetColumn(out, dst)
	if !ok {
		return out
	}
	col := out.Column(seg)
	col.Items = append(col.Items, state.Item{
		ID:       c.newID(),
		Title:    c.tr.T(block.TitleKey),
		Content:  c.tr.T(block.ContentKey),
		SourceID: block.ID,
		Niche:    block.Niche,
		Level:    state.ParseLevel(block.Level),
		Tags:     append([]string{}, block.Tags...),
		Origin:   state.OriginCatalog,
	})
	return out
}

func (c *Controller) dropItem(st state.BuilderState, src ItemSource, dst Target) state.BuilderState {
	out := st.Clone()
	fromSeg, fromIdx, ok := out.FindItem(src.ItemID)
	if !ok {
		return out
	}
	toSeg, ok := targetColumn(out, dst)
	if !ok {
		return out
	}
	from := out.Column(fromSeg)
	moving := from.Items[fromIdx]
	// Manual text is edited in place and never picked up.
	if moving.IsManual() {
		return out
	}

	if fromSeg == toSeg {
		over, isItem := dst.(ItemTarget)
		if !isItem {
			return out
		}
		_, toIdx, _ := out.FindItem(over.ItemID)
		from.Items = reorder.Move(from.Items, fromIdx, toIdx)
		return out
	}

	// The safety block belongs to constraints.
	if moving.IsSafety() {
		return out
	}

	to := out.Column(toSeg)
	from.Items = reorder.RemoveAt(from.Items, fromIdx)
	switch d := dst.(type) {
	case ItemTarget:
		_, toIdx, _ := out.FindItem(d.ItemID)
		to.Items = reorder.Insert(to.Items, toIdx, moving)
	default:
		to.Items = append(to.Items, moving)
	}
	return out
}
