// Package persistence is the durable local fallback store. It is written
// through on every local mutation and read when the remote endpoint is
// unreachable at startup.
package persistence

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trading-journal-go/internal/models"
)

// Store persists the full trade collection in a local sqlite database.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore opens the database at the given DSN and migrates the schema.
func NewStore(dsn string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open fallback database: %w", err)
	}

	if err := db.AutoMigrate(&models.Trade{}); err != nil {
		return nil, fmt.Errorf("failed to migrate fallback database: %w", err)
	}

	return &Store{db: db, logger: logger.Named("persistence")}, nil
}

// Save replaces the persisted contents with the given trade set in a
// single transaction.
func (s *Store) Save(trades []models.Trade) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Trade{}).Error; err != nil {
			return err
		}
		if len(trades) == 0 {
			return nil
		}
		return tx.Create(&trades).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save trades locally: %w", err)
	}
	s.logger.Debug("Saved trades to fallback store", zap.Int("count", len(trades)))
	return nil
}

// Load returns the persisted trade set. Missing or unreadable data never
// raises; it degrades to an empty collection.
func (s *Store) Load() []models.Trade {
	var trades []models.Trade
	if err := s.db.Find(&trades).Error; err != nil {
		s.logger.Warn("Could not load trades from fallback store, starting empty", zap.Error(err))
		return []models.Trade{}
	}
	return trades
}
