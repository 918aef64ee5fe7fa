package agenda

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/barbersoft/agenda-api/internal/audit"
	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
	"github.com/barbersoft/agenda-api/internal/timezone"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
)

// ======================================================
// INPUT
// ======================================================

type CancelBookingInput struct {
	UnitID string

	AppointmentID string
	ClientPhone   string // somente dígitos
	TargetDate    string // opcional, restringe a busca por telefone ao dia
}

// ======================================================
// USE CASE — Cancellation Resolver
// ======================================================

type CancelBooking struct {
	appointments domain.AppointmentRepository
	audit        *audit.Dispatcher
}

func NewCancelBooking(
	appointments domain.AppointmentRepository,
	auditDispatcher *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		appointments: appointments,
		audit:        auditDispatcher,
	}
}

// Execute cancela exatamente um agendamento: por id direto, ou buscando
// o agendamento ativo mais próximo do telefone (restrito ao dia quando
// informado, futuro caso contrário).
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Appointment, error) {

	if in.UnitID == "" {
		return nil, httperr.ErrBusiness("missing_unit")
	}
	if in.AppointmentID == "" && in.ClientPhone == "" {
		return nil, httperr.ErrBusiness("missing_cancel_key")
	}

	if in.AppointmentID != "" {
		return uc.cancelByID(ctx, in.UnitID, in.AppointmentID)
	}
	return uc.cancelByPhone(ctx, in)
}

func (uc *CancelBooking) cancelByID(
	ctx context.Context,
	unitID string,
	appointmentID string,
) (*models.Appointment, error) {

	rows, err := uc.appointments.Cancel(ctx, unitID, appointmentID, timezone.Now())
	if err != nil {
		log.Printf("cancel failed for appointment %s: %v", appointmentID, err)
		return nil, httperr.ErrBusiness("cancel_failed")
	}
	if rows == 0 {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap, err := uc.appointments.GetByID(ctx, unitID, appointmentID)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness("cancel_failed")
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:    unitID,
		CompanyID: ap.CompanyID,
		Action:    "booking_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

func (uc *CancelBooking) cancelByPhone(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Appointment, error) {

	var (
		from time.Time
		to   *time.Time
	)

	if in.TargetDate != "" {
		// Aceita tanto YYYY-MM-DD quanto um instante completo.
		dateOnly, _, _ := strings.Cut(in.TargetDate, "T")
		day, err := time.ParseInLocation("2006-01-02", dateOnly, timezone.Default())
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		from = day
		dayEnd := day.Add(24 * time.Hour)
		to = &dayEnd
	} else {
		from = timezone.Now()
	}

	found, err := uc.appointments.FindEarliestActiveByPhone(
		ctx, in.UnitID, in.ClientPhone, from, to,
	)
	if err != nil {
		log.Printf("appointment lookup failed for phone %s: %v", in.ClientPhone, err)
		return nil, httperr.ErrBusiness("cancel_failed")
	}
	if found == nil {
		return nil, httperr.ErrBusinessDetail("no_appointment_for_phone", in.TargetDate)
	}

	rows, err := uc.appointments.Cancel(ctx, in.UnitID, found.ID, timezone.Now())
	if err != nil {
		log.Printf("cancel failed for appointment %s: %v", found.ID, err)
		return nil, httperr.ErrBusiness("cancel_failed")
	}
	if rows == 0 {
		// Outra requisição cancelou entre a busca e o update.
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap, err := uc.appointments.GetByID(ctx, in.UnitID, found.ID)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness("cancel_failed")
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:    in.UnitID,
		CompanyID: ap.CompanyID,
		Action:    "booking_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
