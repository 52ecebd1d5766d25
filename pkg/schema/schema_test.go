package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPack = `{
	"id": "p1", "title": "Writing", "description": "", "visibility": "private", "tags": [],
	"skills": [{"id": "s1", "name": "Tone", "description": "Keeps tone", "tags": [], "language": "both", "markdown": "# Tone"}]
}`

func TestValidateSkillPack(t *testing.T) {
	require.NoError(t, ValidateSkillPack([]byte(validPack)))

	err := ValidateSkillPack([]byte(`{"id":"p1","title":"","description":"","visibility":"secret","tags":[],"skills":[]}`))
	require.Error(t, err)
	v, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, v.Issues, 2)
	assert.Contains(t, err.Error(), "skill pack validation failed with 2 errors")
}

func TestValidateAgentSpec(t *testing.T) {
	valid := `{
		"id": "a1", "title": "Researcher", "role": "analyst", "objective": "summarize",
		"inputs": [], "steps": [{"id": "st1", "step": "read", "doneCriteria": "read all"}],
		"tools": ["web-search"], "policies": [], "outputContract": "markdown", "attachedSkills": []
	}`
	require.NoError(t, ValidateAgentSpec([]byte(valid)))

	err := ValidateAgentSpec([]byte(`{
		"id": "a1", "title": "Researcher", "role": "analyst", "objective": "summarize",
		"inputs": [], "steps": [{"id": "st1", "step": "", "doneCriteria": "x"}],
		"tools": [], "policies": [], "outputContract": "markdown", "attachedSkills": []
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps.0.step")
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	assert.Error(t, ValidateAgentSpec([]byte(`{`)))
}
