package catalog

import (
	"testing"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	blocks := []byte(`[
		{"id": "a", "titleKey": "t.a", "contentKey": "c.a", "niche": "dev:web", "level": "basic", "tags": ["dev"], "targetColumn": "role"},
		{"id": "b", "titleKey": "t.b", "contentKey": "c.b", "niche": "dev:backend", "level": "intermediate", "tags": ["dev"], "targetColumn": "goal"},
		{"id": "c", "titleKey": "t.c", "contentKey": "c.c", "niche": "images:logo", "level": "basic", "tags": ["images"], "targetColumn": "goal"}
	]`)
	s, err := Load(blocks, nil)
	require.NoError(t, err)
	return s
}

var testTr = i18n.Map{
	"t.a": "Frontend Engineer",
	"c.a": "React and accessibility",
	"t.b": "Backend task",
	"c.b": "Build an endpoint",
	"t.c": "Logo concept",
	"c.c": "Minimal ENDPOINT-free mark",
}

func ids(blocks []Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	s := testStore(t)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "empty query matches all", q: Query{}, want: []string{"a", "b", "c"}},
		{name: "niche all", q: Query{Niche: NicheAll}, want: []string{"a", "b", "c"}},
		{name: "niche prefix", q: Query{Niche: "dev"}, want: []string{"a", "b"}},
		{name: "exact niche", q: Query{Niche: "dev:web"}, want: []string{"a"}},
		{name: "search title case-insensitive", q: Query{Search: "FRONTEND"}, want: []string{"a"}},
		{name: "search content", q: Query{Search: "endpoint"}, want: []string{"b", "c"}},
		{name: "target segment", q: Query{Target: segment.Goal}, want: []string{"b", "c"}},
		{name: "combined", q: Query{Search: "endpoint", Niche: "dev", Target: segment.Goal}, want: []string{"b"}},
		{name: "no match", q: Query{Search: "quantum"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Filter(tt.q, testTr)))
		})
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := Load([]byte(`[{"id":"x"},{"id":"x"}]`), nil)
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	s := testStore(t)
	got := s.Suggest("lgo", testTr, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "c", got[0].ID)

	assert.Empty(t, s.Suggest("  ", testTr, 5))
}

func TestEmbeddedCatalog(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	b, ok := s.Block("dev-web-1")
	require.True(t, ok)
	assert.Equal(t, segment.Role, b.TargetColumn)
	assert.Equal(t, "dev:web", b.Niche)

	for _, blk := range s.Blocks() {
		assert.True(t, segment.IsKnown(blk.TargetColumn), blk.ID)
	}

	_, ok = s.Tool("web-search")
	assert.True(t, ok)
	assert.Contains(t, s.Niches(), "videos:shorts")
}
