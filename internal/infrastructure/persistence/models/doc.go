// Package models contains GORM-specific persistence models that map to database tables.
// The domain layer only sees shared.KeyValueStore; rows and tags stay here.
package models
