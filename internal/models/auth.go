package models

import (
	"time"
)

type User struct {
	Base
	Email    string  `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password string  `gorm:"not null" json:"-" admin:"listDisplay:exclude;search:exclude;view:exclude;addForm:exclude;editForm:exclude"`
	Nome     string  `json:"nome"`
	LojaID   *string `gorm:"size:36;index" json:"loja_id"`
	Loja     *Loja   `json:"loja,omitempty"`
}

type AuthTransaction struct {
	Base
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Token     string    `gorm:"type:text;not null" json:"token"`
	Refresh   string    `gorm:"type:text;not null" json:"refresh"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt time.Time `json:"expires_at"`
}
