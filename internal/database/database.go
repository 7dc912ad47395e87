package database

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"equipvalue/server/internal/models"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// RunMigrations creates or updates the valuations table
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(&models.ValuationRecord{})
}

// InsertValuation appends a valuation record and returns its generated id.
// Records are never updated or deleted.
func (d *Database) InsertValuation(ctx context.Context, record *models.ValuationRecord) (int64, error) {
	if err := d.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, fmt.Errorf("failed to insert valuation: %w", err)
	}
	return record.ID, nil
}

// GetRecentValuations returns the most recently persisted valuations
func (d *Database) GetRecentValuations(limit int) ([]models.ValuationRecord, error) {
	var records []models.ValuationRecord
	err := d.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent valuations: %w", err)
	}
	return records, nil
}

// GetValuationStats summarizes all persisted valuations
func (d *Database) GetValuationStats() (models.ValuationStats, error) {
	var stats models.ValuationStats
	row := d.db.Model(&models.ValuationRecord{}).
		Select(`
			COUNT(*) AS total_valuations,
			COALESCE(AVG(final_price), 0) AS average_final_price,
			COALESCE(MIN(final_price), 0) AS min_final_price,
			COALESCE(MAX(final_price), 0) AS max_final_price,
			COALESCE(AVG(confidence_score), 0) AS average_confidence
		`).
		Row()

	err := row.Scan(
		&stats.TotalValuations,
		&stats.AverageFinalPrice,
		&stats.MinFinalPrice,
		&stats.MaxFinalPrice,
		&stats.AverageConfidence,
	)
	if err != nil {
		return stats, fmt.Errorf("failed to get valuation stats: %w", err)
	}
	return stats, nil
}

// GetDB returns the underlying GORM database instance
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
