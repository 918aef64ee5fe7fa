package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID    string `gorm:"type:uuid;index" json:"unit_id"`
	CompanyID string `gorm:"type:uuid" json:"company_id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	CalendarColor string `gorm:"size:20" json:"calendar_color"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
