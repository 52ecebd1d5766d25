package specification

import (
	"testing"

	"promptito-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func render(t *testing.T, specs ...Specification) (string, []interface{}) {
	db := dryRun(t).Model(&model.Prompt{})
	for _, s := range specs {
		db = s.Apply(db)
	}
	stmt := db.Find(&[]model.Prompt{}).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestGallerySpecifications(t *testing.T) {
	sql, vars := render(t, PublicActive{}, ByMacro{Macro: "RTF"}, HasTag{Tag: "go"}, GallerySort{Sort: SortViews})

	assert.Contains(t, sql, "visibility = $1 AND status = $2")
	assert.Contains(t, sql, "macro = $3")
	assert.Contains(t, sql, "tags @> $4::jsonb")
	assert.Contains(t, sql, "ORDER BY views_count DESC,created_at DESC")
	assert.Equal(t, []interface{}{"public", "active", "RTF", `["go"]`}, vars)
}

func TestEmptyFiltersAreNoops(t *testing.T) {
	sql, vars := render(t, ByMacro{}, HasTag{}, GallerySearch{Query: "  "}, ByStatus{})
	for _, col := range []string{"macro", "tags", "ILIKE", "status"} {
		assert.NotContains(t, sql, col)
	}
	assert.Empty(t, vars)
}

func TestGallerySearchEscapesWildcards(t *testing.T) {
	sql, vars := render(t, GallerySearch{Query: "50%_off"})
	assert.Contains(t, sql, "title ILIKE $1")
	require.Len(t, vars, 4)
	assert.Equal(t, `%50\%\_off%`, vars[0])
}

func TestGallerySortDefaultsToRecent(t *testing.T) {
	sql, _ := render(t, GallerySort{Sort: "bogus"})
	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestPaginationWithoutLimit(t *testing.T) {
	sql, _ := render(t, Pagination{Limit: 0, Offset: 10})
	assert.NotContains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}
