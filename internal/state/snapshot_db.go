package state

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/darshak-ai/restaurant-platform/pkg/db"
	"github.com/darshak-ai/restaurant-platform/pkg/db/models"
)

// DBSnapshotter keeps session snapshots in the relational store. Used when a
// durable backend is configured; SQLite serves the same role in development.
type DBSnapshotter struct {
	client *db.Client
}

// NewDBSnapshotter wraps the shared database client and ensures the snapshot
// table exists.
func NewDBSnapshotter(ctx context.Context, client *db.Client) (*DBSnapshotter, error) {
	if client == nil {
		return nil, fmt.Errorf("database client required")
	}
	if err := client.DB().WithContext(ctx).AutoMigrate(&models.StateSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return &DBSnapshotter{client: client}, nil
}

// Save implements Snapshotter via upsert on the session id.
func (d *DBSnapshotter) Save(ctx context.Context, sessionID string, payload []byte) error {
	record := models.StateSnapshot{
		SessionID:  sessionID,
		StorageKey: StorageKey,
		Payload:    string(payload),
	}
	return d.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}

// Load implements Snapshotter.
func (d *DBSnapshotter) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	var record models.StateSnapshot
	err := d.client.DB().WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(record.Payload), true, nil
}

// Delete implements Snapshotter.
func (d *DBSnapshotter) Delete(ctx context.Context, sessionID string) error {
	return d.client.DB().WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.StateSnapshot{}).Error
}
