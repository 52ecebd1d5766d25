package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeState(t *testing.T, st state.BuilderState) string {
	t.Helper()
	raw, err := json.Marshal(st)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestComposePrintsPrompt(t *testing.T) {
	tr := i18n.Map{}
	st := state.New(tr)
	st.Columns = state.UpsertManualItem(st.Columns, segment.Goal, "Summarize the meeting notes", tr)

	out, err := run(t, "compose", writeState(t, st))
	require.NoError(t, err)
	assert.Contains(t, out, "Summarize the meeting notes")
}

func TestValidateReportsMissingSegments(t *testing.T) {
	_, err := run(t, "validate", writeState(t, state.New(i18n.Map{})))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing content in")
}

func TestDraftRoundTrip(t *testing.T) {
	tr := i18n.Map{}
	st := state.New(tr)
	st.Title = "Standup"
	file := writeState(t, st)
	store := filepath.Join(t.TempDir(), "drafts.db")

	_, err := run(t, "draft", "save", "standup", file, "--store", store)
	require.NoError(t, err)

	out, err := run(t, "draft", "load", "standup", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Standup"`)

	out, err = run(t, "draft", "list", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "standup")
}
