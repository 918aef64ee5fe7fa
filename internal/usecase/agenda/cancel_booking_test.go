package agenda

import (
	"context"
	"testing"

	"github.com/barbersoft/agenda-api/internal/httperr"
	"github.com/barbersoft/agenda-api/internal/models"
)

func TestCancelBooking_ByID(t *testing.T) {
	f := newFixture(t)
	ap := f.seedAppointment(t, "5511988887777", spTime(t, "2025-03-10T10:00:00"), 30, "pending")

	got, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:        f.unit.ID,
		AppointmentID: ap.ID,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
	if got.CancelledAt == nil {
		t.Error("cancelled_at not set")
	}

	var stored models.Appointment
	if err := f.db.First(&stored, "id = ?", ap.ID).Error; err != nil {
		t.Fatalf("load appointment: %v", err)
	}
	if stored.Status != "cancelled" {
		t.Errorf("persisted status = %q", stored.Status)
	}
}

func TestCancelBooking_ByID_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	ap := f.seedAppointment(t, "5511988887777", spTime(t, "2025-03-10T10:00:00"), 30, "pending")
	ctx := context.Background()

	if _, err := f.cancel.Execute(ctx, CancelBookingInput{UnitID: f.unit.ID, AppointmentID: ap.ID}); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	// Cancelamento é terminal: repetir não encontra agendamento ativo.
	_, err := f.cancel.Execute(ctx, CancelBookingInput{UnitID: f.unit.ID, AppointmentID: ap.ID})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}

func TestCancelBooking_ByID_UnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:        f.unit.ID,
		AppointmentID: "9d3b1f0a-0000-4000-8000-000000000000",
	})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}

func TestCancelBooking_ByPhoneWithDate(t *testing.T) {
	f := newFixture(t)
	phone := "5511988887777"

	target := f.seedAppointment(t, phone, spTime(t, "2025-03-10T10:00:00"), 30, "pending")
	other := f.seedAppointment(t, phone, spTime(t, "2025-03-12T10:00:00"), 30, "pending")

	got, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:      f.unit.ID,
		ClientPhone: phone,
		TargetDate:  "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ID != target.ID {
		t.Fatalf("cancelled %s, want %s", got.ID, target.ID)
	}

	var untouched models.Appointment
	if err := f.db.First(&untouched, "id = ?", other.ID).Error; err != nil {
		t.Fatalf("load other appointment: %v", err)
	}
	if untouched.Status != "pending" {
		t.Errorf("other day's appointment was cancelled too")
	}
}

func TestCancelBooking_ByPhoneEarliestWins(t *testing.T) {
	f := newFixture(t)
	phone := "5511988887777"

	later := f.seedAppointment(t, phone, spTime(t, "2025-03-10T15:00:00"), 30, "pending")
	earlier := f.seedAppointment(t, phone, spTime(t, "2025-03-10T09:00:00"), 30, "confirmed")
	_ = later

	got, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:      f.unit.ID,
		ClientPhone: phone,
		TargetDate:  "2025-03-10",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ID != earlier.ID {
		t.Fatalf("cancelled %s, want earliest %s", got.ID, earlier.ID)
	}
}

func TestCancelBooking_ByPhoneFutureOnly(t *testing.T) {
	f := newFixture(t)
	phone := "5511988887777"

	// Passado não é elegível sem data explícita.
	f.seedAppointment(t, phone, spTime(t, "2020-01-01T10:00:00"), 30, "pending")
	future := f.seedAppointment(t, phone, spTime(t, "2099-01-01T10:00:00"), 30, "pending")

	got, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:      f.unit.ID,
		ClientPhone: phone,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ID != future.ID {
		t.Fatalf("cancelled %s, want future %s", got.ID, future.ID)
	}
}

func TestCancelBooking_ByPhoneNoMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:      f.unit.ID,
		ClientPhone: "5511900000000",
		TargetDate:  "2025-03-10",
	})

	be, ok := httperr.AsBusiness(err)
	if !ok || be.Code != "no_appointment_for_phone" {
		t.Fatalf("err = %v, want no_appointment_for_phone", err)
	}
	if be.Detail != "2025-03-10" {
		t.Errorf("detail = %q", be.Detail)
	}
}

func TestCancelBooking_MissingKeys(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel.Execute(context.Background(), CancelBookingInput{UnitID: f.unit.ID})
	if !httperr.IsBusiness(err, "missing_cancel_key") {
		t.Fatalf("err = %v, want missing_cancel_key", err)
	}

	_, err = f.cancel.Execute(context.Background(), CancelBookingInput{ClientPhone: "5511988887777"})
	if !httperr.IsBusiness(err, "missing_unit") {
		t.Fatalf("err = %v, want missing_unit", err)
	}
}

func TestCancelBooking_InvalidTargetDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel.Execute(context.Background(), CancelBookingInput{
		UnitID:      f.unit.ID,
		ClientPhone: "5511988887777",
		TargetDate:  "10/03/2025",
	})
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("err = %v, want invalid_date", err)
	}
}
