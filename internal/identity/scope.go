package identity

import "gorm.io/gorm"

// OwnedBy returns a GORM scope that filters by owner_id.
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", userID)
	}
}

// Active returns a GORM scope that hides soft-deleted rows.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
