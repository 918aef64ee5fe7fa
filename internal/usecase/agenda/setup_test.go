package agenda

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/barbersoft/agenda-api/internal/audit"
	infraRepo "github.com/barbersoft/agenda-api/internal/infra/repository"
	"github.com/barbersoft/agenda-api/internal/models"
	"github.com/barbersoft/agenda-api/internal/timezone"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Uma única conexão: cada conexão nova a :memory: seria um banco vazio.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Unit{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_unit_phone
        ON clients (unit_id, phone)
        WHERE phone IS NOT NULL
    `).Error; err != nil {
		t.Fatalf("create index: %v", err)
	}

	return db
}

type fixture struct {
	db      *gorm.DB
	unit    models.Unit
	barber  models.Barber
	service models.Service

	check  *CheckAvailability
	create *CreateBooking
	cancel *CancelBooking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	unit := models.Unit{
		CompanyID:             "c0a80121-0000-4000-8000-000000000001",
		Name:                  "Unidade Centro",
		EvolutionInstanceName: "unidade-centro",
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}

	barber := models.Barber{
		UnitID:    unit.ID,
		CompanyID: unit.CompanyID,
		Name:      "Carlos Silva",
		IsActive:  true,
	}
	if err := db.Create(&barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}

	service := models.Service{
		UnitID:          unit.ID,
		Name:            "Corte Masculino",
		Price:           50,
		DurationMinutes: 30,
		IsActive:        true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	resolveClient := NewResolveClient(clientRepo, dispatcher)

	return &fixture{
		db:      db,
		unit:    unit,
		barber:  barber,
		service: service,
		check:   NewCheckAvailability(catalogRepo, appointmentRepo),
		create:  NewCreateBooking(catalogRepo, appointmentRepo, resolveClient, dispatcher),
		cancel:  NewCancelBooking(appointmentRepo, dispatcher),
	}
}

func (f *fixture) seedAppointment(t *testing.T, phoneDigits string, start time.Time, durationMin int, status string) models.Appointment {
	t.Helper()

	ap := models.Appointment{
		UnitID:     f.unit.ID,
		BarberID:   f.barber.ID,
		ServiceID:  f.service.ID,
		ClientName: "João",
		StartTime:  start,
		EndTime:    start.Add(time.Duration(durationMin) * time.Minute),
		TotalPrice: f.service.Price,
		Status:     status,
	}
	if phoneDigits != "" {
		ap.ClientPhone = &phoneDigits
	}
	if err := f.db.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap
}

func spTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", value, timezone.Default())
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}
