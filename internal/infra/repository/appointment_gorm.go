package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForDay(
	ctx context.Context,
	unitID string,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"unit_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			unitID, domain.StatusCancelled, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Create (conflict-safe)
// --------------------------------------------------

// CreateIfNoConflict verifica sobreposição e insere dentro de uma única
// transação. No Postgres um advisory lock transacional por barbeiro
// serializa verificação+inserção entre requisições concorrentes; sem ele
// duas criações simultâneas poderiam passar pela checagem antes de
// qualquer commit. SQLite serializa escritas por conta própria.
func (r *AppointmentGormRepository) CreateIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				ap.BarberID,
			).Error; err != nil {
				return err
			}
		}

		q := tx.Select("id")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conflicts []models.Appointment
		if err := q.
			Where(
				"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.BarberID, domain.StatusCancelled, ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	unitID string,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND unit_id = ?", appointmentID, unitID).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindEarliestActiveByPhone(
	ctx context.Context,
	unitID string,
	phone string,
	from time.Time,
	to *time.Time,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"unit_id = ? AND client_phone = ? AND status IN ?",
			unitID, phone, domain.ActiveStatuses(),
		).
		Where("start_time >= ?", from)

	if to != nil {
		q = q.Where("start_time < ?", *to)
	}

	var ap models.Appointment
	err := q.Order("start_time ASC").First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Cancel
// --------------------------------------------------

// Cancel só transita linhas ainda ativas; uma segunda requisição que
// perder a corrida afeta zero linhas e o caller trata como não encontrado.
func (r *AppointmentGormRepository) Cancel(
	ctx context.Context,
	unitID string,
	appointmentID string,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"id = ? AND unit_id = ? AND status IN ?",
			appointmentID, unitID, domain.ActiveStatuses(),
		).
		Updates(map[string]any{
			"status":       domain.StatusCancelled,
			"cancelled_at": now,
		})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

var _ domain.AppointmentRepository = (*AppointmentGormRepository)(nil)
