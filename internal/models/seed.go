package models

import (
	"fmt"

	console "gestaotemplate/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// DefaultTemplateName is the template every new store starts with.
const DefaultTemplateName = "Padrão"

// CreateLoja creates a store and its default template in one transaction.
func CreateLoja(db *gorm.DB, nome, pasta string) (*Loja, error) {
	loja := &Loja{Nome: nome, Pasta: pasta}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loja).Error; err != nil {
			return fmt.Errorf("failed to create loja: %w", err)
		}
		template := Template{LojaID: loja.ID, Nome: DefaultTemplateName}
		if err := tx.Create(&template).Error; err != nil {
			return fmt.Errorf("failed to create default template: %w", err)
		}
		loja.Templates = []Template{template}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("Created loja %s (%s)", loja.Nome, loja.Pasta)
	return loja, nil
}

// CreateOwner creates a user owning a new store unless the email is taken.
// The password must already be hashed.
func CreateOwner(db *gorm.DB, nome, email, hashedPassword, lojaNome, pasta string) (*User, error) {
	var count int64
	db.Model(&User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Info("Owner %s already exists", email)
		return nil, nil
	}

	loja, err := CreateLoja(db, lojaNome, pasta)
	if err != nil {
		return nil, err
	}

	user := &User{
		Nome:     nome,
		Email:    email,
		Password: hashedPassword,
		LojaID:   &loja.ID,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create owner user: %w", err)
	}
	user.Loja = loja
	return user, nil
}
