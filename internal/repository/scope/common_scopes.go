package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByUpdatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC")
}

// OpenReports keeps reports still waiting for a moderator.
func OpenReports(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "open")
}
