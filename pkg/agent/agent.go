// Package agent assembles agent specs: role, objective, ordered steps with
// done criteria, tool metadata, policies and attached skills.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/reorder"
	"promptito-be/pkg/schema"
	"promptito-be/pkg/skill"
)

// DefaultPolicies are the anti-hallucination policies a new agent starts with.
var DefaultPolicies = []string{
	"Si falta informacion, haz preguntas antes de asumir.",
	"No inventes datos; marca incertidumbre.",
	"Diferencia hechos de suposiciones.",
	"Respeta estrictamente el formato de salida solicitado.",
}

type Step struct {
	ID           string `json:"id"`
	Step         string `json:"step"`
	DoneCriteria string `json:"doneCriteria"`
}

type Spec struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Role           string        `json:"role"`
	Objective      string        `json:"objective"`
	Inputs         []string      `json:"inputs"`
	Steps          []Step        `json:"steps"`
	Tools          []string      `json:"tools"`
	Policies       []string      `json:"policies"`
	OutputContract string        `json:"outputContract"`
	AttachedSkills []skill.Skill `json:"attachedSkills"`
}

// New returns a blank spec with one empty step and the default policies.
func New(id, stepID string, tr i18n.Translator) Spec {
	return Spec{
		ID:             id,
		Inputs:         []string{},
		Steps:          []Step{{ID: stepID}},
		Tools:          []string{},
		Policies:       append([]string{}, DefaultPolicies...),
		OutputContract: tr.T("agentBuilder.defaultOutputContract"),
		AttachedSkills: []skill.Skill{},
	}
}

// Clone returns a deep copy.
func (s Spec) Clone() Spec {
	out := s
	out.Inputs = append([]string{}, s.Inputs...)
	out.Steps = append([]Step{}, s.Steps...)
	out.Tools = append([]string{}, s.Tools...)
	out.Policies = append([]string{}, s.Policies...)
	out.AttachedSkills = append([]skill.Skill{}, s.AttachedSkills...)
	return out
}

// MoveStep moves step active to the position of step over.
func (s Spec) MoveStep(active, over string) Spec {
	out := s.Clone()
	if active == over {
		return out
	}
	out.Steps = reorder.MoveByKey(out.Steps, func(st Step) string { return st.ID }, active, over)
	return out
}

// ToggleTool adds toolID when absent and removes it when present.
func (s Spec) ToggleTool(toolID string) Spec {
	out := s.Clone()
	if idx := reorder.IndexFunc(out.Tools, func(id string) bool { return id == toolID }); idx >= 0 {
		out.Tools = reorder.RemoveAt(out.Tools, idx)
		return out
	}
	out.Tools = append(out.Tools, toolID)
	return out
}

// ToggleSkill attaches sk when absent and detaches it when present.
func (s Spec) ToggleSkill(sk skill.Skill) Spec {
	out := s.Clone()
	if idx := reorder.IndexFunc(out.AttachedSkills, func(v skill.Skill) bool { return v.ID == sk.ID }); idx >= 0 {
		out.AttachedSkills = reorder.RemoveAt(out.AttachedSkills, idx)
		return out
	}
	out.AttachedSkills = append(out.AttachedSkills, sk)
	return out
}

// Finalize prepares a spec for saving or export: blank inputs are dropped
// and an empty title becomes the untitled label.
func (s Spec) Finalize(tr i18n.Translator) Spec {
	out := s.Clone()
	if strings.TrimSpace(out.Title) == "" {
		out.Title = tr.T("agentBuilder.untitled")
	}
	out.Inputs = nonEmpty(out.Inputs)
	return out
}

// Validate checks the spec against the agent spec schema.
func (s Spec) Validate() error {
	data, err := json.Marshal(s.Clone())
	if err != nil {
		return err
	}
	return schema.ValidateAgentSpec(data)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func selectedTools(s Spec, store *catalog.Store) []catalog.Tool {
	out := make([]catalog.Tool, 0, len(s.Tools))
	for _, t := range store.Tools() {
		for _, id := range s.Tools {
			if id == t.ID {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Prompt renders the runtime prompt of the agent.
func Prompt(s Spec, store *catalog.Store, tr i18n.Translator) string {
	inputs := nonEmpty(s.Inputs)
	inputLines := make([]string, len(inputs))
	for i, in := range inputs {
		inputLines[i] = fmt.Sprintf("%d. %s", i+1, in)
	}
	stepLines := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		stepLines[i] = fmt.Sprintf("%d. %s\n   Done: %s", i+1, st.Step, st.DoneCriteria)
	}
	tools := selectedTools(s, store)
	toolLines := make([]string, len(tools))
	for i, t := range tools {
		toolLines[i] = tr.T(t.NameKey) + ": " + tr.T(t.DescriptionKey)
	}
	toolText := strings.Join(toolLines, "\n")
	if toolText == "" {
		toolText = "-"
	}
	policies := nonEmpty(s.Policies)
	policyLines := make([]string, len(policies))
	for i, p := range policies {
		policyLines[i] = "- " + p
	}

	return strings.Join([]string{
		"# Agent Role\n" + s.Role,
		"# Objective\n" + s.Objective,
		"# Inputs\n" + strings.Join(inputLines, "\n"),
		"# Plan/Steps\n" + strings.Join(stepLines, "\n"),
		"# Tools (metadata)\n" + toolText,
		"# Policies/Constraints\n" + strings.Join(policyLines, "\n"),
		"# Output Contract\n" + s.OutputContract,
	}, "\n\n")
}

// AgentsMarkdown renders the AGENTS.md usage document.
func AgentsMarkdown(s Spec, store *catalog.Store, tr i18n.Translator) string {
	title := s.Title
	if title == "" {
		title = "Agent"
	}
	inputs := nonEmpty(s.Inputs)
	inputLines := make([]string, len(inputs))
	for i, in := range inputs {
		inputLines[i] = "- " + in
	}
	stepLines := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		stepLines[i] = fmt.Sprintf("%d. %s (Done: %s)", i+1, st.Step, st.DoneCriteria)
	}
	tools := selectedTools(s, store)
	toolLines := make([]string, len(tools))
	for i, t := range tools {
		toolLines[i] = fmt.Sprintf("- %s (%s)", tr.T(t.NameKey), tr.T(t.DescriptionKey))
	}

	return strings.Join([]string{
		"# " + title,
		"## Que hace\n" + s.Objective,
		"## Inputs esperados\n" + strings.Join(inputLines, "\n"),
		"## Steps\n" + strings.Join(stepLines, "\n"),
		"## Tools seleccionadas\n" + strings.Join(toolLines, "\n"),
		"## Output contract\n" + s.OutputContract,
		"## Como usarlo\n1. Completa los inputs.\n2. Ejecuta los steps en orden.\n3. Valida el resultado con el output contract.",
	}, "\n\n")
}
