package models

import "gorm.io/gorm"

// Snapshot is one persisted key/value blob in a client's flat store.
type Snapshot struct {
	gorm.Model
	ClientID string `gorm:"uniqueIndex:idx_snapshot_client_key;not null"`
	Key      string `gorm:"column:item_key;uniqueIndex:idx_snapshot_client_key;not null"`
	Value    string `gorm:"type:text"`
}
