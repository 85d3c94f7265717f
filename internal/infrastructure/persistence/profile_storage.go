package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileStorage implements ProfileStorage on the profile_entries table.
// It backs the CLI's sqlite profile file and the gateway's postgres database.
type GormProfileStorage struct {
	db  *Database
	now func() time.Time
}

// NewGormProfileStorage creates a profile storage on db
func NewGormProfileStorage(db *Database) *GormProfileStorage {
	return &GormProfileStorage{db: db, now: time.Now}
}

// AutoMigrate creates the profile_entries table when it is missing.
// Postgres deployments use the SQL migrations instead.
func (s *GormProfileStorage) AutoMigrate(ctx context.Context) error {
	if err := s.db.DB.WithContext(ctx).AutoMigrate(&models.ProfileEntry{}); err != nil {
		return fmt.Errorf("failed to migrate profile_entries: %w", err)
	}
	return nil
}

// Profile returns the store scoped to profileID
func (s *GormProfileStorage) Profile(profileID string) shared.KeyValueStore {
	return &gormProfile{storage: s, profileID: profileID}
}

// Ping checks the database connection
func (s *GormProfileStorage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection
func (s *GormProfileStorage) Close() error {
	return s.db.Close()
}

type gormProfile struct {
	storage   *GormProfileStorage
	profileID string
}

func (p *gormProfile) where(ctx context.Context, key string) *gorm.DB {
	return p.storage.db.DB.WithContext(ctx).
		Where(map[string]any{"profile_id": p.profileID, "entry_key": key})
}

func (p *gormProfile) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.ProfileEntry
	err := p.where(ctx, key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read profile entry: %w", err)
	}
	return entry.Value, true, nil
}

func (p *gormProfile) Set(ctx context.Context, key, value string) error {
	entry := models.ProfileEntry{
		ProfileID: p.profileID,
		EntryKey:  key,
		Value:     value,
		UpdatedAt: p.storage.now().UTC(),
	}
	err := p.storage.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write profile entry: %w", err)
	}
	return nil
}

func (p *gormProfile) Delete(ctx context.Context, key string) error {
	if err := p.where(ctx, key).Delete(&models.ProfileEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete profile entry: %w", err)
	}
	return nil
}

// Ensure GormProfileStorage implements ProfileStorage
var _ shared.ProfileStorage = (*GormProfileStorage)(nil)
