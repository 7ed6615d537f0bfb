package db

import (
	"log"
	"time"

	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.PatientAssignment{},
		&models.RecurringAvailability{},
		&models.DateOverride{},
		&models.Appointment{},
		&models.GlucoseReading{},
		&models.ClinicalInfo{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// At most one active booking per (doctor, start). Partial index, so
	// cancelled rows free the slot; gorm tags cannot express the WHERE.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_active_booking_slot
        ON appointments (doctor_id, start_time)
        WHERE status IN ('scheduled', 'rescheduled')
    `)

	return db
}
