package specification

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SortRecent    = "recent"
	SortViews     = "views"
	SortFavorites = "favorites"
)

// PublicActive keeps the prompts that appear in the gallery.
type PublicActive struct{}

func (PublicActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visibility = ? AND status = ?", "public", "active")
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// ByMacro is a no-op for an empty macro.
type ByMacro struct {
	Macro string
}

func (s ByMacro) Apply(db *gorm.DB) *gorm.DB {
	if s.Macro == "" {
		return db
	}
	return db.Where("macro = ?", s.Macro)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	if s.Status == "" {
		return db
	}
	return db.Where("status = ?", s.Status)
}

// HasTag matches prompts whose jsonb tag array contains Tag.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	if s.Tag == "" {
		return db
	}
	raw, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?::jsonb", string(raw))
}

// GallerySearch is a case-insensitive match over title, structure, macro and
// tags.
type GallerySearch struct {
	Query string
}

func (s GallerySearch) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	pattern := "%" + escapeLike(q) + "%"
	return db.Where(
		"title ILIKE ? OR structure ILIKE ? OR macro ILIKE ? OR tags::text ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GallerySort orders by the requested key, newest first on ties. Unknown keys
// sort by recency.
type GallerySort struct {
	Sort string
}

func (s GallerySort) Apply(db *gorm.DB) *gorm.DB {
	switch s.Sort {
	case SortViews:
		return db.Order("views_count DESC").Order("created_at DESC")
	case SortFavorites:
		return db.Order("favorites_count DESC").Order("created_at DESC")
	default:
		return db.Order("created_at DESC")
	}
}

type ByPromptID struct {
	PromptID uuid.UUID
}

func (s ByPromptID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("prompt_id = ?", s.PromptID)
}

type ByTargetID struct {
	TargetID uuid.UUID
}

func (s ByTargetID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("target_id = ?", s.TargetID)
}

type ByPromptIDs struct {
	PromptIDs []uuid.UUID
}

func (s ByPromptIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("prompt_id IN ?", s.PromptIDs)
}
