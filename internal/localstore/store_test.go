package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tr = i18n.Map{}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	st := state.New(tr)
	st.Title = "Weekly report"
	st.Columns = state.UpsertManualItem(st.Columns, segment.Goal, "Summarize the week", tr)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	saved, err := s.Save("weekly", st, now)
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)

	got, err := s.Load("weekly", tr)
	require.NoError(t, err)
	assert.Equal(t, "Weekly report", got.State.Title)
	assert.Equal(t, "Summarize the week", got.State.ManualText(segment.Goal))
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestSaveReplacesAndListOrders(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	a := state.New(tr)
	a.Title = "A"
	_, err := s.Save("a", a, base)
	require.NoError(t, err)

	b := state.New(tr)
	b.Title = "B"
	_, err = s.Save("b", b, base.Add(time.Minute))
	require.NoError(t, err)

	a.Title = "A2"
	_, err = s.Save("a", a, base.Add(2*time.Minute))
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "A2", entries[0].Title)
	assert.Equal(t, "b", entries[1].Name)
}

func TestLoadMissingAndDelete(t *testing.T) {
	s := openStore(t)

	_, err := s.Load("ghost", tr)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, s.Delete("ghost"), ErrDraftNotFound)

	_, err = s.Save("x", state.New(tr), time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Delete("x"))

	_, err = s.Load("x", tr)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSaveRequiresName(t *testing.T) {
	s := openStore(t)
	_, err := s.Save("  ", state.New(tr), time.Now())
	assert.Error(t, err)
}
