package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agendamento. Nome e telefone do cliente são snapshots desnormalizados:
// continuam válidos mesmo se o cadastro do cliente mudar depois.
type Appointment struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID    string  `gorm:"type:uuid;index" json:"unit_id"`
	CompanyID *string `gorm:"type:uuid" json:"company_id,omitempty"`

	BarberID  string `gorm:"type:uuid;index" json:"barber_id"`
	ServiceID string `gorm:"type:uuid" json:"service_id"`

	ClientName  string  `gorm:"size:100" json:"client_name"`
	ClientPhone *string `gorm:"size:20" json:"client_phone"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	TotalPrice float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
