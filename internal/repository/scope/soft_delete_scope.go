package scope

import "gorm.io/gorm"

// WithSoftDelete includes soft deleted rows, for moderators looking up the
// target of an old report.
func WithSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
