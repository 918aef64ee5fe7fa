package agenda

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
	"github.com/barbersoft/agenda-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckAvailabilityInput struct {
	UnitID       string
	Date         string // YYYY-MM-DD
	Professional string // filtro opcional por nome
}

type CheckAvailabilityResult struct {
	Date     string
	Slots    []domain.Slot
	Services []models.Service
	Message  string
}

// ======================================================
// USE CASE — Availability Calculator
// ======================================================

type CheckAvailability struct {
	catalog      domain.CatalogRepository
	appointments domain.AppointmentRepository
}

func NewCheckAvailability(
	catalog domain.CatalogRepository,
	appointments domain.AppointmentRepository,
) *CheckAvailability {
	return &CheckAvailability{
		catalog:      catalog,
		appointments: appointments,
	}
}

// Execute é somente leitura: nunca muda estado e pode ser chamado de
// forma concorrente e redundante.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (*CheckAvailabilityResult, error) {

	if in.Date == "" {
		return nil, httperr.ErrBusiness("missing_date")
	}
	if in.UnitID == "" {
		return nil, httperr.ErrBusiness("missing_unit")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Default())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	barbers, err := uc.catalog.ListActiveBarbers(ctx, in.UnitID, in.Professional)
	if err != nil {
		log.Printf("barber listing failed for unit %s: %v", in.UnitID, err)
		return nil, httperr.ErrBusiness("barbers_lookup_failed")
	}

	if len(barbers) == 0 {
		message := "Nenhum barbeiro ativo encontrado"
		if in.Professional != "" {
			message = fmt.Sprintf("Nenhum barbeiro encontrado com o nome %q", in.Professional)
		}
		return &CheckAvailabilityResult{
			Date:    in.Date,
			Slots:   []domain.Slot{},
			Message: message,
		}, nil
	}

	// Catálogo de serviços é informativo no check: falha degrada para
	// lista vazia em vez de abortar a resposta.
	services, err := uc.catalog.ListActiveServices(ctx, in.UnitID)
	if err != nil {
		log.Printf("service listing failed for unit %s: %v", in.UnitID, err)
		services = []models.Service{}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.appointments.ListForDay(ctx, in.UnitID, dayStart, dayEnd)
	if err != nil {
		log.Printf("appointment listing failed for unit %s: %v", in.UnitID, err)
		return nil, httperr.ErrBusiness("appointments_lookup_failed")
	}

	return &CheckAvailabilityResult{
		Date:     in.Date,
		Slots:    domain.BuildSlots(date, barbers, appointments),
		Services: services,
	}, nil
}
