package tenant

import "gorm.io/gorm"

// Scope restricts any query to one tenant. Every repository in the app
// applies it so cross-company reads are impossible by construction.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
