package agenda

import (
	"context"
	"time"

	"github.com/barbersoft/agenda-api/internal/audit"
	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
	"github.com/barbersoft/agenda-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	UnitID    string
	CompanyID string

	ClientName  string
	ClientPhone string // somente dígitos, pode ser vazio

	BarberName  string
	ServiceName string
	StartsAt    string // instante alvo

	BirthDate string
	Notes     string
	Tags      []string
}

type CreateBookingResult struct {
	Appointment *models.Appointment

	Client        *models.Client
	ClientCreated bool

	BarberName  string
	ServiceName string
}

// ======================================================
// USE CASE — Booking Transaction Handler
// ======================================================

type CreateBooking struct {
	catalog       domain.CatalogRepository
	appointments  domain.AppointmentRepository
	resolveClient *ResolveClient
	audit         *audit.Dispatcher
}

func NewCreateBooking(
	catalog domain.CatalogRepository,
	appointments domain.AppointmentRepository,
	resolveClient *ResolveClient,
	auditDispatcher *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		catalog:       catalog,
		appointments:  appointments,
		resolveClient: resolveClient,
		audit:         auditDispatcher,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1. Campos obrigatórios
	// --------------------------------------------------
	if in.ClientName == "" || in.BarberName == "" || in.ServiceName == "" ||
		in.StartsAt == "" || in.UnitID == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// --------------------------------------------------
	// 2. Identidade do cliente (find-or-create)
	// --------------------------------------------------
	client, clientCreated, err := uc.resolveClient.Execute(ctx, ResolveClientInput{
		UnitID:    in.UnitID,
		CompanyID: in.CompanyID,
		Name:      in.ClientName,
		Phone:     in.ClientPhone,
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		Tags:      in.Tags,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Barbeiro por nome (primeiro match, sem desambiguação)
	// --------------------------------------------------
	barber, err := uc.catalog.FindBarberByName(ctx, in.UnitID, in.BarberName)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, httperr.ErrBusinessDetail("barber_not_found", in.BarberName)
	}

	// --------------------------------------------------
	// 4. Serviço por nome
	// --------------------------------------------------
	service, err := uc.catalog.FindServiceByName(ctx, in.UnitID, in.ServiceName)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, httperr.ErrBusinessDetail("service_not_found", in.ServiceName)
	}

	// --------------------------------------------------
	// 5. Janela do agendamento
	// --------------------------------------------------
	start, err := parseDateTime(in.StartsAt)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_datetime")
	}
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// --------------------------------------------------
	// 6+7. Conflito + inserção (atômicos no repositório)
	// --------------------------------------------------
	companyID := in.CompanyID
	if companyID == "" {
		companyID = barber.CompanyID
	}

	ap := &models.Appointment{
		UnitID:     in.UnitID,
		BarberID:   barber.ID,
		ServiceID:  service.ID,
		ClientName: in.ClientName,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: service.Price,
		Status:     string(domain.InitialStatus()),
	}
	if companyID != "" {
		ap.CompanyID = &companyID
	}
	if in.ClientPhone != "" {
		ap.ClientPhone = &in.ClientPhone
	}

	if err := uc.appointments.CreateIfNoConflict(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UnitID:    in.UnitID,
				CompanyID: ap.CompanyID,
				Action:    "booking_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"barber_id": barber.ID,
					"start":     start,
					"end":       end,
				},
			})
			return nil, httperr.ErrBusinessDetail("time_conflict", barber.Name)
		}
		return nil, httperr.ErrBusiness("appointment_create_failed")
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:    in.UnitID,
		CompanyID: ap.CompanyID,
		Action:    "booking_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return &CreateBookingResult{
		Appointment:   ap,
		Client:        client,
		ClientCreated: clientCreated,
		BarberName:    barber.Name,
		ServiceName:   service.Name,
	}, nil
}

// parseDateTime aceita instantes com offset explícito (RFC3339) e
// variantes sem offset, interpretadas no fuso padrão do produto.
func parseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(timezone.Default()), nil
	}

	loc := timezone.Default()
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, httperr.ErrBusiness("invalid_datetime")
}
