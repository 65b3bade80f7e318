package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (base Base) GetID() string {
	return base.ID
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Scoped is embedded by every template-configuration entity. LojaID and
// TemplateID are always stamped from the caller's session and route, never
// from the payload.
type Scoped struct {
	Base
	LojaID     string `gorm:"size:36;not null;index" json:"loja_id"`
	TemplateID string `gorm:"size:36;not null;index" json:"template_id"`
}

// StoreScoped is Scoped without a template, for store-wide settings.
type StoreScoped struct {
	Base
	LojaID string `gorm:"size:36;not null;index" json:"loja_id"`
}

type TarefaStatus string

const (
	TarefaPending    TarefaStatus = "pending"
	TarefaInProgress TarefaStatus = "in_progress"
	TarefaDone       TarefaStatus = "done"
)

// IsValidTarefaStatus checks if a given status is valid
func IsValidTarefaStatus(s TarefaStatus) bool {
	switch s {
	case TarefaPending, TarefaInProgress, TarefaDone:
		return true
	default:
		return false
	}
}
