package scope

import "gorm.io/gorm"

// OrderByCreatedDesc orders newest first; id breaks ties between rows created
// within the same clock tick.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
