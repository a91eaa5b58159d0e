// Package gormstate persists zone state rows in Postgres through gorm. One
// row per zone, payload as a JSON document, write-through upserts.
package gormstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type zoneStateRow struct {
	ZoneID    string    `gorm:"column:zone_id;primaryKey"`
	Payload   []byte    `gorm:"column:payload"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (zoneStateRow) TableName() string { return "zone_states" }

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore migrates the zone_states table and returns a ready store.
func NewStore(db *gorm.DB, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&zoneStateRow{}); err != nil {
		return Store{}, fmt.Errorf("migrate zone_states: %w", err)
	}
	return Store{db: db, log: log}, nil
}

// Load returns every persisted zone state. Rows whose payload no longer
// decodes are skipped with a warning so one bad row cannot wipe the rest of
// the world on boot.
func (s Store) Load(ctx context.Context) (map[string]world.ZoneState, error) {
	var rows []zoneStateRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load zone states: %w", err)
	}
	out := make(map[string]world.ZoneState, len(rows))
	for _, row := range rows {
		var st world.ZoneState
		if err := json.Unmarshal(row.Payload, &st); err != nil {
			s.log.Warn("zone state row undecodable, skipping",
				zap.String("zone", row.ZoneID),
				zap.Error(err))
			continue
		}
		out[row.ZoneID] = st
	}
	return out, nil
}

func (s Store) Save(ctx context.Context, zoneID string, st world.ZoneState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode zone state %s: %w", zoneID, err)
	}
	row := zoneStateRow{
		ZoneID:    zoneID,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "zone_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

var _ ports.ZoneStateStore = Store{}
