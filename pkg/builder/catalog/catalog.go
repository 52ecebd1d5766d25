// Package catalog serves the read-only palette of reusable content blocks and
// the tool metadata offered to agents.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/i18n"

	"github.com/sahilm/fuzzy"
)

//go:embed data/blocks.json data/tools.json
var dataFS embed.FS

// NicheAll disables the niche filter.
const NicheAll = "all"

// Block is a catalog entry that can be dropped into a segment.
type Block struct {
	ID         string     `json:"id"`
	TitleKey   string     `json:"titleKey"`
	ContentKey string     `json:"contentKey"`
	Niche      string     `json:"niche"`
	Structure  string     `json:"structure"`
	Level      string     `json:"level"`
	Tags       []string   `json:"tags"`
	Image      string     `json:"image,omitempty"`
	// TargetColumn is a hint for the palette filter. Drops are not restricted to it.
	TargetColumn segment.ID `json:"targetColumn"`
}

// Tool is agent tool metadata.
type Tool struct {
	ID             string `json:"id"`
	NameKey        string `json:"nameKey"`
	DescriptionKey string `json:"descriptionKey"`
}

// Query narrows the palette. Zero values match everything.
type Query struct {
	Search string
	Niche  string
	Target segment.ID
}

// Store is the loaded catalog. It is safe for concurrent reads.
type Store struct {
	blocks []Block
	byID   map[string]int
	tools  []Tool
}

var (
	defaultStore *Store
	loadOnce     sync.Once
	loadErr      error
)

// Default loads the embedded catalog on first use.
func Default() (*Store, error) {
	loadOnce.Do(func() {
		var blocksRaw, toolsRaw []byte
		blocksRaw, loadErr = dataFS.ReadFile("data/blocks.json")
		if loadErr != nil {
			return
		}
		toolsRaw, loadErr = dataFS.ReadFile("data/tools.json")
		if loadErr != nil {
			return
		}
		defaultStore, loadErr = Load(blocksRaw, toolsRaw)
	})
	return defaultStore, loadErr
}

// MustDefault panics when the embedded catalog is broken.
func MustDefault() *Store {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Load builds a store from raw JSON arrays.
func Load(blocksJSON, toolsJSON []byte) (*Store, error) {
	s := &Store{byID: make(map[string]int)}
	if len(blocksJSON) > 0 {
		if err := json.Unmarshal(blocksJSON, &s.blocks); err != nil {
			return nil, fmt.Errorf("parse blocks: %w", err)
		}
	}
	if len(toolsJSON) > 0 {
		if err := json.Unmarshal(toolsJSON, &s.tools); err != nil {
			return nil, fmt.Errorf("parse tools: %w", err)
		}
	}
	for i, b := range s.blocks {
		if _, dup := s.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate block id %q", b.ID)
		}
		s.byID[b.ID] = i
	}
	return s, nil
}

// Blocks returns every block in catalog order.
func (s *Store) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Block resolves a block by id.
func (s *Store) Block(id string) (Block, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Block{}, false
	}
	return s.blocks[i], true
}

func (s *Store) Tools() []Tool {
	out := make([]Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

func (s *Store) Tool(id string) (Tool, bool) {
	for _, t := range s.tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Filter returns the blocks matching q, in catalog order.
func (s *Store) Filter(q Query, tr i18n.Translator) []Block {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Block, 0)
	for _, b := range s.blocks {
		if !matchesNiche(b.Niche, q.Niche) {
			continue
		}
		if q.Target != "" && b.TargetColumn != q.Target {
			continue
		}
		if needle != "" {
			title := strings.ToLower(tr.T(b.TitleKey))
			content := strings.ToLower(tr.T(b.ContentKey))
			if !strings.Contains(title, needle) && !strings.Contains(content, needle) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func matchesNiche(blockNiche, filter string) bool {
	if filter == "" || filter == NicheAll {
		return true
	}
	return strings.HasPrefix(blockNiche, filter)
}

// Niches lists the distinct niche values, sorted.
func (s *Store) Niches() []string {
	seen := make(map[string]struct{})
	for _, b := range s.blocks {
		seen[b.Niche] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type titleSource struct {
	blocks []Block
	tr     i18n.Translator
}

func (t titleSource) String(i int) string { return t.tr.T(t.blocks[i].TitleKey) }
func (t titleSource) Len() int            { return len(t.blocks) }

// Suggest ranks blocks by fuzzy match of pattern against their translated
// titles, best first. limit <= 0 means no limit.
func (s *Store) Suggest(pattern string, tr i18n.Translator, limit int) []Block {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return []Block{}
	}
	matches := fuzzy.FindFrom(pattern, titleSource{blocks: s.blocks, tr: tr})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Block, 0, len(matches))
	for _, m := range matches {
		out = append(out, s.blocks[m.Index])
	}
	return out
}
