package agenda

import (
	"context"
	"testing"

	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
)

func TestCheckAvailability_EmptyDay(t *testing.T) {
	f := newFixture(t)

	res, err := f.check.Execute(context.Background(), CheckAvailabilityInput{
		UnitID: f.unit.ID,
		Date:   "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Date != "2025-03-10" {
		t.Errorf("date = %q", res.Date)
	}
	if len(res.Slots) != 26 {
		t.Fatalf("slots = %d, want 26 for one barber", len(res.Slots))
	}
	if len(res.Services) != 1 || res.Services[0].Name != f.service.Name {
		t.Errorf("services = %+v", res.Services)
	}
	if res.Message != "" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestCheckAvailability_BookedSlotExcluded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.create.Execute(ctx, CreateBookingInput{
		UnitID:      f.unit.ID,
		ClientName:  "João",
		BarberName:  "Carlos",
		ServiceName: "Corte",
		StartsAt:    "2025-03-10T10:00:00",
	}); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	res, err := f.check.Execute(ctx, CheckAvailabilityInput{
		UnitID: f.unit.ID,
		Date:   "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Slots) != 25 {
		t.Fatalf("slots = %d, want 25 after one 30min booking", len(res.Slots))
	}
	for _, s := range res.Slots {
		if s.Time == "10:00" {
			t.Errorf("10:00 still offered after booking")
		}
	}
}

func TestCheckAvailability_CancelledSlotReturns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, CreateBookingInput{
		UnitID:      f.unit.ID,
		ClientName:  "João",
		BarberName:  "Carlos",
		ServiceName: "Corte",
		StartsAt:    "2025-03-10T10:00:00",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := f.cancel.Execute(ctx, CancelBookingInput{
		UnitID:        f.unit.ID,
		AppointmentID: created.Appointment.ID,
	}); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	res, err := f.check.Execute(ctx, CheckAvailabilityInput{
		UnitID: f.unit.ID,
		Date:   "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Slots) != 26 {
		t.Fatalf("slots = %d, want 26 after cancellation", len(res.Slots))
	}
}

func TestCheckAvailability_ProfessionalFilter(t *testing.T) {
	f := newFixture(t)

	other := models.Barber{
		UnitID:    f.unit.ID,
		CompanyID: f.unit.CompanyID,
		Name:      "Rafael Lima",
		IsActive:  true,
	}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}

	res, err := f.check.Execute(context.Background(), CheckAvailabilityInput{
		UnitID:       f.unit.ID,
		Date:         "2025-03-10",
		Professional: "rafael",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Slots) != 26 {
		t.Fatalf("slots = %d, want 26 for the filtered barber", len(res.Slots))
	}
	for _, s := range res.Slots {
		if s.BarberID != other.ID {
			t.Fatalf("slot for wrong barber: %+v", s)
		}
	}
}

func TestCheckAvailability_NoBarberMatch(t *testing.T) {
	f := newFixture(t)

	res, err := f.check.Execute(context.Background(), CheckAvailabilityInput{
		UnitID:       f.unit.ID,
		Date:         "2025-03-10",
		Professional: "Ninguém",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Errorf("slots = %d, want 0", len(res.Slots))
	}
	if res.Message == "" {
		t.Error("expected explanatory message for empty barber filter")
	}
}

func TestCheckAvailability_InactiveBarberIgnored(t *testing.T) {
	f := newFixture(t)

	if err := f.db.Model(&models.Barber{}).
		Where("id = ?", f.barber.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate barber: %v", err)
	}

	res, err := f.check.Execute(context.Background(), CheckAvailabilityInput{
		UnitID: f.unit.ID,
		Date:   "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Errorf("slots = %d, want 0 with no active barbers", len(res.Slots))
	}
	if res.Message != "Nenhum barbeiro ativo encontrado" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestCheckAvailability_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.check.Execute(ctx, CheckAvailabilityInput{UnitID: f.unit.ID})
	if !httperr.IsBusiness(err, "missing_date") {
		t.Fatalf("err = %v, want missing_date", err)
	}

	_, err = f.check.Execute(ctx, CheckAvailabilityInput{Date: "2025-03-10"})
	if !httperr.IsBusiness(err, "missing_unit") {
		t.Fatalf("err = %v, want missing_unit", err)
	}

	_, err = f.check.Execute(ctx, CheckAvailabilityInput{UnitID: f.unit.ID, Date: "10/03/2025"})
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("err = %v, want invalid_date", err)
	}
}
