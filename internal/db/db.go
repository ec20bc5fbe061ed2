package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/config"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Room{},
		&model.Booking{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.EnableExclusionConstraint {
		log.Println("Applying no-overlap exclusion DDL...")
		if err := applyExclusionDDL(db); err != nil {
			return nil, err
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// applyExclusionDDL makes the database itself reject two active bookings on
// the same room with overlapping [start_time, end_time) ranges. The advisory
// lock in the store already serialises writers; this constraint catches
// writers that bypass the store.
func applyExclusionDDL(db *gorm.DB) error {
	ddls := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist;",

		"ALTER TABLE bookings " +
			"ADD CONSTRAINT bookings_interval_valid CHECK (start_time < end_time);",

		// [)-bounded range: a booking ending exactly when another starts is
		// not an overlap.
		"ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap " +
			"EXCLUDE USING GIST (room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&) " +
			"WHERE (status = 'active');",

		"CREATE INDEX idx_bookings_room_id_start_time ON bookings (room_id, start_time DESC);",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
