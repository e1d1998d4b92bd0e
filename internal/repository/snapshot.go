package repository

import (
	"errors"

	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository is a repository for a client's persisted planner blobs.
type SnapshotRepository struct {
	DB *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{DB: db}
}

// Get retrieves the value stored under key for the client.
func (r *SnapshotRepository) Get(clientID, key string) (string, error) {
	var snap models.Snapshot
	if err := r.DB.Where("client_id = ? AND item_key = ?", clientID, key).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFoundError{message: "snapshot not found"}
		}
		logger.Get().Error("failed to get snapshot", zap.String("client_id", clientID), zap.String("key", key), zap.Error(err))
		return "", err
	}
	return snap.Value, nil
}

// Set creates or replaces the value stored under key for the client.
func (r *SnapshotRepository) Set(clientID, key, value string) error {
	snap := models.Snapshot{ClientID: clientID, Key: key, Value: value}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		logger.Get().Error("failed to set snapshot", zap.String("client_id", clientID), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Remove deletes the key for the client. Removing an absent key is not an error.
func (r *SnapshotRepository) Remove(clientID, key string) error {
	err := r.DB.Unscoped().Where("client_id = ? AND item_key = ?", clientID, key).Delete(&models.Snapshot{}).Error
	if err != nil {
		logger.Get().Error("failed to remove snapshot", zap.String("client_id", clientID), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
