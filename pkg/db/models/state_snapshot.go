package models

import "time"

// StateSnapshot is the serialized per-session application state ("restaurant-
// app-storage"). The payload is the persisted subset of the client state store,
// written on every mutation and replayed when the session returns.
type StateSnapshot struct {
	SessionID  string    `gorm:"column:session_id;primaryKey"`
	StorageKey string    `gorm:"column:storage_key;not null;default:'restaurant-app-storage'"`
	Payload    string    `gorm:"column:payload;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the snapshot table name.
func (StateSnapshot) TableName() string {
	return "state_snapshots"
}
