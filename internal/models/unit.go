package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unidade física (filial) de uma empresa. Gerida fora deste serviço,
// consumida somente leitura.
type Unit struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string `gorm:"type:uuid;index" json:"company_id"`

	Name string `gorm:"size:100" json:"name"`

	// Identificador da instância do canal (WhatsApp) que atende esta unidade.
	EvolutionInstanceName string `gorm:"size:100;uniqueIndex" json:"evolution_instance_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
