package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Cliente da unidade, identificado pelo telefone normalizado (somente dígitos).
// A unicidade por (unit_id, phone) é garantida por índice parcial criado em db.NewDB.
type Client struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID    string  `gorm:"type:uuid;index" json:"unit_id"`
	CompanyID *string `gorm:"type:uuid" json:"company_id,omitempty"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Phone *string `gorm:"size:20" json:"phone"`

	BirthDate *datatypes.Date             `gorm:"type:date" json:"birth_date"`
	Notes     *string                     `gorm:"type:text" json:"notes"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`

	TotalVisits int `gorm:"default:0" json:"total_visits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
