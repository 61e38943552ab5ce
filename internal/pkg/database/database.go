package database

import "gorm.io/gorm"

// DB is the shared GORM handle, assigned once by SetupDatabase.
var DB *gorm.DB

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}
