package bundle

import (
	"encoding/json"
	"time"

	"promptito-be/pkg/agent"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/skill"
	"promptito-be/pkg/slug"
)

// PromptMeta is the meta.json of a prompt export.
type PromptMeta struct {
	Title        string       `json:"title"`
	Macro        string       `json:"macro"`
	Structure    string       `json:"structure"`
	SegmentOrder []segment.ID `json:"segmentOrder"`
	Tags         []string     `json:"tags"`
	ExportedAt   time.Time    `json:"exportedAt"`
}

type packMeta struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Visibility  skill.Visibility `json:"visibility"`
	Tags        []string         `json:"tags"`
	SkillsCount int              `json:"skillsCount"`
}

func indent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Prompt exports a builder state. It fails with *compose.BlockedError when
// the state is not ready.
func Prompt(st state.BuilderState, tr i18n.Translator, now time.Time) (Archive, error) {
	if err := compose.Check(st).Err(); err != nil {
		return Archive{}, err
	}

	text := compose.Compose(st, tr)
	segments, err := indent(st.Columns)
	if err != nil {
		return Archive{}, err
	}
	title := st.Title
	if title == "" {
		title = tr.T("promptBuilder.untitled")
	}
	macro := st.Macro
	if macro == "" {
		macro = st.Structure
	}
	meta, err := indent(PromptMeta{
		Title:        title,
		Macro:        macro,
		Structure:    st.Structure,
		SegmentOrder: compose.VisibleSegments(st),
		Tags:         append([]string{}, st.Tags...),
		ExportedAt:   now.UTC(),
	})
	if err != nil {
		return Archive{}, err
	}

	data, err := CreateZip([]FileEntry{
		{Path: "PROMPT.md", Content: []byte(text)},
		{Path: "PROMPT.txt", Content: []byte(text)},
		{Path: "segments.json", Content: segments},
		{Path: "meta.json", Content: meta},
	}, now)
	if err != nil {
		return Archive{}, err
	}
	return Archive{Filename: slug.MakeOr(st.Title, "prompt") + ".zip", Data: data}, nil
}

// Agent exports an agent spec with its attached skills. The spec is
// finalized and validated first.
func Agent(spec agent.Spec, store *catalog.Store, tr i18n.Translator, now time.Time) (Archive, error) {
	// The archive name follows what the user typed, not the untitled label.
	name := slug.MakeOr(spec.Title, "agent")
	spec = spec.Finalize(tr)
	if err := spec.Validate(); err != nil {
		return Archive{}, err
	}
	agentJSON, err := indent(spec)
	if err != nil {
		return Archive{}, err
	}

	files := []FileEntry{
		{Path: "AGENTS.md", Content: []byte(agent.AgentsMarkdown(spec, store, tr))},
		{Path: "agent.json", Content: agentJSON},
	}
	for _, sk := range spec.AttachedSkills {
		md, err := skill.Markdown(sk)
		if err != nil {
			return Archive{}, err
		}
		files = append(files, FileEntry{Path: "skills/" + slug.MakeOr(sk.Name, "skill") + "/SKILL.md", Content: []byte(md)})
	}
	data, err := CreateZip(files, now)
	if err != nil {
		return Archive{}, err
	}
	return Archive{Filename: name + ".zip", Data: data}, nil
}

// SkillPack exports a pack as <pack>/pack.json plus one SKILL.md per skill.
func SkillPack(p skill.Pack, now time.Time) (Archive, error) {
	if err := p.Validate(); err != nil {
		return Archive{}, err
	}
	root := slug.MakeOr(p.Title, "pack")
	meta, err := indent(packMeta{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Visibility:  p.Visibility,
		Tags:        append([]string{}, p.Tags...),
		SkillsCount: len(p.Skills),
	})
	if err != nil {
		return Archive{}, err
	}

	files := []FileEntry{{Path: root + "/pack.json", Content: meta}}
	for _, sk := range p.Skills {
		md, err := skill.Markdown(sk)
		if err != nil {
			return Archive{}, err
		}
		files = append(files, FileEntry{Path: root + "/" + slug.MakeOr(sk.Name, "skill") + "/SKILL.md", Content: []byte(md)})
	}
	data, err := CreateZip(files, now)
	if err != nil {
		return Archive{}, err
	}
	return Archive{Filename: root + ".zip", Data: data}, nil
}
