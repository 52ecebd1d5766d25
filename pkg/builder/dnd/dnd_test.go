package dnd

import (
	"fmt"
	"testing"

	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tr = i18n.Map{
	"blocks.goalTitle":   "Explain",
	"blocks.goalContent": "Explain the concept step by step.",
}

func newController(t *testing.T) *Controller {
	t.Helper()
	store, err := catalog.Load([]byte(`[
		{"id":"b1","titleKey":"blocks.goalTitle","contentKey":"blocks.goalContent",
		 "niche":"edu","level":"advanced","tags":["edu"],"targetColumn":"goal"}
	]`), nil)
	require.NoError(t, err)

	n := 0
	return NewController(store, tr).WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	})
}

func item(id string) state.Item {
	return state.Item{ID: id, Title: id, Content: id, Level: state.LevelBasic, Tags: []string{}, Origin: state.OriginCatalog}
}

func ids(items []state.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func fixture() state.BuilderState {
	st := state.New(tr)
	st.Column(segment.Goal).Items = []state.Item{item("g1"), item("g2"), item("g3")}
	st.Column(segment.Context).Items = []state.Item{item("c1")}
	return st
}

func TestDropPaletteOnColumn(t *testing.T) {
	c := newController(t)
	st := fixture()

	out := c.Drop(st, PaletteSource{BlockID: "b1"}, ColumnTarget{Segment: segment.Role})

	role := out.Items(segment.Role)
	require.Len(t, role, 1)
	got := role[0]
	assert.Equal(t, "new-1", got.ID)
	assert.Equal(t, "Explain", got.Title)
	assert.Equal(t, "Explain the concept step by step.", got.Content)
	assert.Equal(t, "b1", got.SourceID)
	assert.Equal(t, state.LevelIntermediate, got.Level)
	assert.Equal(t, state.OriginCatalog, got.Origin)
	assert.Equal(t, []string{"edu"}, got.Tags)

	assert.Empty(t, st.Items(segment.Role), "input must not change")
}

func TestDropPaletteOnItemAppendsToItsColumn(t *testing.T) {
	c := newController(t)
	out := c.Drop(fixture(), PaletteSource{BlockID: "b1"}, ItemTarget{ItemID: "c1"})
	assert.Equal(t, []string{"c1", "new-1"}, ids(out.Items(segment.Context)))
}

func TestDropPaletteUnknownBlock(t *testing.T) {
	c := newController(t)
	st := fixture()
	assert.Equal(t, st, c.Drop(st, PaletteSource{BlockID: "missing"}, ColumnTarget{Segment: segment.Goal}))
}

func TestDropItemSameColumn(t *testing.T) {
	c := newController(t)
	out := c.Drop(fixture(), ItemSource{ItemID: "g1"}, ItemTarget{ItemID: "g3"})
	assert.Equal(t, []string{"g2", "g3", "g1"}, ids(out.Items(segment.Goal)))

	out = c.Drop(fixture(), ItemSource{ItemID: "g3"}, ItemTarget{ItemID: "g1"})
	assert.Equal(t, []string{"g3", "g1", "g2"}, ids(out.Items(segment.Goal)))
}

func TestDropItemAcrossColumns(t *testing.T) {
	c := newController(t)

	out := c.Drop(fixture(), ItemSource{ItemID: "g2"}, ItemTarget{ItemID: "c1"})
	assert.Equal(t, []string{"g1", "g3"}, ids(out.Items(segment.Goal)))
	assert.Equal(t, []string{"g2", "c1"}, ids(out.Items(segment.Context)))

	out = c.Drop(fixture(), ItemSource{ItemID: "g2"}, ColumnTarget{Segment: segment.Context})
	assert.Equal(t, []string{"c1", "g2"}, ids(out.Items(segment.Context)))
}

func TestDropItemOnOwnColumnIsNoop(t *testing.T) {
	c := newController(t)
	st := fixture()
	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: "g2"}, ColumnTarget{Segment: segment.Goal}))
}

func TestSafetyBlockStaysInConstraints(t *testing.T) {
	c := newController(t)
	st := fixture()

	out := c.Drop(st, ItemSource{ItemID: state.SafetyItemID}, ColumnTarget{Segment: segment.Goal})
	assert.Equal(t, st, out)

	st.Column(segment.Constraints).Items = append(st.Column(segment.Constraints).Items, item("k1"))
	out = c.Drop(st, ItemSource{ItemID: state.SafetyItemID}, ItemTarget{ItemID: "k1"})
	assert.Equal(t, []string{"k1", state.SafetyItemID}, ids(out.Items(segment.Constraints)))
}

func TestManualItemsAreNotDraggable(t *testing.T) {
	c := newController(t)
	st := fixture()
	st.Columns = state.UpsertManualItem(st.Columns, segment.Goal, "goal text", tr)
	st.Columns = state.UpsertManualItem(st.Columns, segment.Context, "context text", tr)
	manual := state.ManualItemID(segment.Goal)

	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: manual}, ColumnTarget{Segment: segment.Context}))
	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: manual}, ItemTarget{ItemID: "c1"}))
	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: manual}, ItemTarget{ItemID: "g1"}))

	// Other items can still be dropped around them.
	out := c.Drop(st, ItemSource{ItemID: "g1"}, ItemTarget{ItemID: state.ManualItemID(segment.Context)})
	assert.Equal(t, []string{"c1", "g1", state.ManualItemID(segment.Context)}, ids(out.Items(segment.Context)))
	assert.Equal(t, st.ItemCount(), out.ItemCount())
}

func TestDropSegmentRow(t *testing.T) {
	c := newController(t)
	st := fixture()

	out := c.Drop(st, SegmentRowSource{Segment: segment.Role}, SegmentRowTarget{Segment: segment.Context})
	assert.Equal(t, []segment.ID{
		segment.Goal, segment.Context, segment.Role,
		segment.Inputs, segment.Constraints, segment.OutputFormat, segment.Examples,
	}, out.SegmentOrder)

	assert.Equal(t, st, c.Drop(st, SegmentRowSource{Segment: segment.Role}, ColumnTarget{Segment: segment.Goal}))
}

func TestDropWithoutTargetIsNoop(t *testing.T) {
	c := newController(t)
	st := fixture()
	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: "g1"}, nil))
	assert.Equal(t, st, c.Drop(st, nil, ColumnTarget{Segment: segment.Goal}))
	assert.Equal(t, st, c.Drop(st, ItemSource{ItemID: "ghost"}, ColumnTarget{Segment: segment.Goal}))
}
