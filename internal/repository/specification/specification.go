package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ScopeFunc lets a plain gorm scope be passed where a Specification is expected.
type ScopeFunc func(db *gorm.DB) *gorm.DB

func (f ScopeFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}
