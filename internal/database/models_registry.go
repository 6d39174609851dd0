package database

import "lumagram/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Subscription{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	}
}
