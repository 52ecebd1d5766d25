package skill

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	frontmatterDelimiter = "---"
	frontmatterVersion   = "0.1"
	maxFrontmatterSize   = 64 * 1024
)

// Frontmatter is the YAML header of a SKILL.md file.
type Frontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Version     string   `yaml:"version"`
	Language    Language `yaml:"language"`
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func (f Frontmatter) node() *yaml.Node {
	tags := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, t := range f.Tags {
		tags.Content = append(tags.Content, quoted(t))
	}
	plain := func(k string) *yaml.Node { return &yaml.Node{Kind: yaml.ScalarNode, Value: k} }
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		plain("name"), quoted(f.Name),
		plain("description"), quoted(f.Description),
		plain("tags"), tags,
		plain("version"), quoted(f.Version),
		plain("language"), quoted(string(f.Language)),
	}}
}

// Markdown renders s as a SKILL.md document.
func Markdown(s Skill) (string, error) {
	fm := Frontmatter{
		Name:        s.Name,
		Description: s.Description,
		Tags:        s.Tags,
		Version:     frontmatterVersion,
		Language:    s.Language,
	}
	if fm.Language == "" {
		fm.Language = LanguageBoth
	}
	header, err := yaml.Marshal(fm.node())
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	b.Write(header)
	b.WriteString(frontmatterDelimiter + "\n\n")
	b.WriteString(s.Markdown)
	return b.String(), nil
}

// ParseMarkdown splits a SKILL.md document into its frontmatter and body.
func ParseMarkdown(content []byte) (Frontmatter, string, error) {
	content = bytes.TrimSpace(content)
	delimiter := []byte(frontmatterDelimiter)
	if !bytes.HasPrefix(content, delimiter) {
		return Frontmatter{}, "", errors.New("SKILL.md must start with YAML frontmatter (---)")
	}

	rest := bytes.TrimPrefix(content[len(delimiter):], []byte("\n"))
	endIdx := bytes.Index(rest, []byte("\n"+frontmatterDelimiter))
	if endIdx == -1 {
		return Frontmatter{}, "", errors.New("SKILL.md frontmatter missing closing delimiter (---)")
	}
	fmBytes := rest[:endIdx]
	if len(fmBytes) > maxFrontmatterSize {
		return Frontmatter{}, "", fmt.Errorf("frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	body := rest[endIdx+1+len(delimiter):]
	return fm, strings.TrimLeft(string(body), "\n"), nil
}

// FromMarkdown builds a skill from a SKILL.md document.
func FromMarkdown(id string, content []byte) (Skill, error) {
	fm, body, err := ParseMarkdown(content)
	if err != nil {
		return Skill{}, err
	}
	if strings.TrimSpace(fm.Name) == "" {
		return Skill{}, errors.New("skill name is required in SKILL.md frontmatter")
	}
	lang := fm.Language
	if lang != LanguageES && lang != LanguageEN {
		lang = LanguageBoth
	}
	return Skill{
		ID:          id,
		Name:        fm.Name,
		Description: fm.Description,
		Tags:        fm.Tags,
		Language:    lang,
		Markdown:    body,
	}, nil
}
