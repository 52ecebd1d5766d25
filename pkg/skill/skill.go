// Package skill models skill packs and renders each skill as a SKILL.md
// document with YAML frontmatter.
package skill

import (
	"encoding/json"
	"strings"

	"promptito-be/pkg/i18n"
	"promptito-be/pkg/reorder"
	"promptito-be/pkg/schema"
)

type Language string

const (
	LanguageES   Language = "es"
	LanguageEN   Language = "en"
	LanguageBoth Language = "both"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

const templateTag = "plantilla"

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Language    Language `json:"language"`
	Markdown    string   `json:"markdown"`
}

type Pack struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	Tags        []string   `json:"tags"`
	Skills      []Skill    `json:"skills"`
}

// Builder creates packs and skills with localized defaults.
type Builder struct {
	tr    i18n.Translator
	newID func() string
}

func NewBuilder(tr i18n.Translator, newID func() string) *Builder {
	return &Builder{tr: tr, newID: newID}
}

// NewPack returns an empty private pack.
func (b *Builder) NewPack() Pack {
	return Pack{
		ID:         b.newID(),
		Title:      b.tr.T("skillBuilder.defaultPackTitle"),
		Visibility: VisibilityPrivate,
		Tags:       []string{},
		Skills:     []Skill{},
	}
}

// NewSkill returns a blank skill. A template skill carries a placeholder
// description and the template tag.
func (b *Builder) NewSkill(template bool) Skill {
	s := Skill{
		ID:       b.newID(),
		Name:     b.tr.T("skillBuilder.newSkill"),
		Tags:     []string{},
		Language: LanguageBoth,
		Markdown: b.tr.T("skillBuilder.defaultMarkdown"),
	}
	if template {
		s.Description = b.tr.T("skillBuilder.noDescription")
		s.Tags = []string{templateTag}
	}
	return s
}

// Add appends s to the pack.
func (p Pack) Add(s Skill) Pack {
	out := p.clone()
	out.Skills = append(out.Skills, s.clone())
	return out
}

// Duplicate appends a copy of the skill id under a new id, named
// "<name> <copy>". The second result is false when id is unknown.
func (b *Builder) Duplicate(p Pack, id string) (Pack, Skill, bool) {
	idx := p.index(id)
	if idx < 0 {
		return p.clone(), Skill{}, false
	}
	dup := p.Skills[idx].clone()
	dup.ID = b.newID()
	dup.Name = dup.Name + " " + b.tr.T("actions.copy")
	return p.Add(dup), dup, true
}

// Delete drops the skill id.
func (p Pack) Delete(id string) Pack {
	out := p.clone()
	if idx := out.index(id); idx >= 0 {
		out.Skills = reorder.RemoveAt(out.Skills, idx)
	}
	return out
}

// Update replaces the skill whose id matches s.ID.
func (p Pack) Update(s Skill) Pack {
	out := p.clone()
	if idx := out.index(s.ID); idx >= 0 {
		out.Skills[idx] = s.clone()
	}
	return out
}

// MoveSkill moves the skill active to the position of over.
func (p Pack) MoveSkill(active, over string) Pack {
	out := p.clone()
	out.Skills = reorder.MoveByKey(out.Skills, func(s Skill) string { return s.ID }, active, over)
	return out
}

// HasMinimumFields reports whether the pack can be exported.
func (p Pack) HasMinimumFields() bool {
	return strings.TrimSpace(p.Title) != "" && len(p.Skills) > 0
}

// Validate checks the pack against the skill pack schema.
func (p Pack) Validate() error {
	data, err := json.Marshal(p.withDefaults())
	if err != nil {
		return err
	}
	return schema.ValidateSkillPack(data)
}

func (p Pack) index(id string) int {
	return reorder.IndexFunc(p.Skills, func(s Skill) bool { return s.ID == id })
}

// withDefaults fills the fields that have defaults so nil slices do not
// fail validation.
func (p Pack) withDefaults() Pack {
	out := p.clone()
	if out.Visibility == "" {
		out.Visibility = VisibilityPrivate
	}
	for i := range out.Skills {
		if out.Skills[i].Language == "" {
			out.Skills[i].Language = LanguageBoth
		}
	}
	return out
}

func (s Skill) clone() Skill {
	s.Tags = append([]string{}, s.Tags...)
	return s
}

func (p Pack) clone() Pack {
	out := p
	out.Tags = append([]string{}, p.Tags...)
	out.Skills = make([]Skill, len(p.Skills))
	for i, s := range p.Skills {
		out.Skills[i] = s.clone()
	}
	return out
}
