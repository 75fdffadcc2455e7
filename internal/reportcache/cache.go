// Package reportcache keeps a local copy of the last fetched reports so
// the CLI can list them offline. It is display-only convenience: nothing
// auth-related is ever derived from it.
package reportcache

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/detective-ambiental/detective/internal/api"
)

// CachedReport is the flattened row stored locally.
type CachedReport struct {
	Folio     string `gorm:"primaryKey"`
	PublicID  string
	Title     string
	Date      string
	Category  string
	Status    string
	Email     string
	Latitude  float64
	Longitude float64
	SyncedAt  time.Time
}

// Cache wraps the local SQLite database.
type Cache struct {
	db *gorm.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open report cache: %w", err)
	}

	if err := db.AutoMigrate(&CachedReport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate report cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// SyncReports upserts the given reports, keyed by folio.
func (c *Cache) SyncReports(reports []api.Report) error {
	if len(reports) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]CachedReport, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, CachedReport{
			Folio:    r.Folio,
			PublicID: r.PublicID,
			Title:    r.Title,
			Date:     r.Date,
			Category: r.Categories.Category,
			Status:   r.Status.Status,
			Email:    r.User.Email,
			SyncedAt: now,
		})
	}

	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "folio"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"public_id", "title", "date", "category", "status", "email", "synced_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to sync reports: %w", err)
	}
	return nil
}

// SyncLocations updates the coordinates of cached reports from the map
// projection, inserting rows for reports not seen yet.
func (c *Cache) SyncLocations(reports []api.MapReport) error {
	if len(reports) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]CachedReport, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, CachedReport{
			Folio:     r.Folio,
			Title:     r.Title,
			Category:  r.Category,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			SyncedAt:  now,
		})
	}

	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "folio"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"latitude", "longitude", "synced_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to sync report locations: %w", err)
	}
	return nil
}

// List returns all cached reports ordered by folio.
func (c *Cache) List() ([]CachedReport, error) {
	var rows []CachedReport
	if err := c.db.Order("folio").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read report cache: %w", err)
	}
	return rows, nil
}
