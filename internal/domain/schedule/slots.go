package schedule

import (
	"time"

	"github.com/barbersoft/agenda-api/internal/models"
)

// Janela fixa de geração de slots (08:00–21:00, passos de 30 min).
// Constante de política do núcleo, independente do expediente configurado
// por unidade.
const (
	OpeningHour  = 8
	ClosingHour  = 21
	SlotInterval = 30 * time.Minute
)

type Slot struct {
	Time       string `json:"time"`
	DateTime   string `json:"datetime"`
	BarberID   string `json:"barber_id"`
	BarberName string `json:"barber_name"`
}

// BuildSlots cruza a grade fixa de horários com os agendamentos não
// cancelados do dia e devolve os pares (horário, barbeiro) livres.
//
// Um slot está ocupado quando start_time <= slot < end_time de algum
// agendamento do barbeiro: teste de contenção de intervalo, não de
// igualdade, para que a granularidade de 30 min seja independente da
// duração real do serviço.
func BuildSlots(date time.Time, barbers []models.Barber, appointments []models.Appointment) []Slot {
	slots := make([]Slot, 0, len(barbers)*2*(ClosingHour-OpeningHour))

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), OpeningHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), ClosingHour, 0, 0, 0, date.Location())

	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(SlotInterval) {
		for _, barber := range barbers {
			if isOccupied(barber.ID, cur, appointments) {
				continue
			}
			slots = append(slots, Slot{
				Time:       cur.Format("15:04"),
				DateTime:   cur.Format(time.RFC3339),
				BarberID:   barber.ID,
				BarberName: barber.Name,
			})
		}
	}

	return slots
}

func isOccupied(barberID string, slot time.Time, appointments []models.Appointment) bool {
	for _, ap := range appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !slot.Before(ap.StartTime) && slot.Before(ap.EndTime) {
			return true
		}
	}
	return false
}
