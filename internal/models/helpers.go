package models

import (
	"gorm.io/gorm"
)

// GetLojaByID retrieves a store with its templates
func GetLojaByID(id string, db *gorm.DB) (*Loja, error) {
	loja := &Loja{}
	if err := db.Preload("Templates").Where("id = ?", id).First(loja).Error; err != nil {
		return nil, err
	}
	return loja, nil
}

func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("email = ?", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// TemplateBelongsTo reports whether templateID is a template of lojaID.
func TemplateBelongsTo(templateID, lojaID string, db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&Template{}).Where("id = ? AND loja_id = ?", templateID, lojaID).Count(&count).Error
	return count > 0, err
}
