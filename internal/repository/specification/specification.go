package specification

import "gorm.io/gorm"

// Specification is a composable query predicate. Repositories apply
// any number of them to a base query, so callers like the catalog
// search or topic listing combine filters, ordering and pagination
// without the repository knowing the shape of each.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
