package db

import (
	"log"
	"time"

	"github.com/barbersoft/agenda-api/internal/config"
	"github.com/barbersoft/agenda-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
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
		&models.Unit{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Um cliente por (unidade, telefone) quando o telefone existe.
	// Bookings concorrentes do mesmo telefone caem em re-fetch + merge.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_unit_phone
        ON clients (unit_id, phone)
        WHERE phone IS NOT NULL
    `)

	db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_appointments_barber_window
        ON appointments (barber_id, start_time, end_time)
    `)

	return db
}
