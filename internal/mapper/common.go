package mapper

import (
	"time"

	"gorm.io/gorm"
)

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func valueTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func fromDeletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func toDeletedAt(t *time.Time, deleted bool) gorm.DeletedAt {
	switch {
	case t != nil:
		return gorm.DeletedAt{Time: *t, Valid: true}
	case deleted:
		return gorm.DeletedAt{Time: time.Now(), Valid: true}
	default:
		return gorm.DeletedAt{}
	}
}

func copyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return append([]string{}, tags...)
}
