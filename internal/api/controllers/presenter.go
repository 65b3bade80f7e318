package controllers

import (
	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/services"
)

// Present renders entity as JSON-ready map with every stored file key
// replaced by its public URL.
func Present(entity interface{}, schema validator.Schema, storage services.Storage) (map[string]interface{}, error) {
	m, err := services.ToMap(entity)
	if err != nil {
		return nil, err
	}
	for _, col := range schema.FileColumns() {
		if key, ok := m[col].(string); ok && key != "" {
			m[col] = storage.URL(key)
		}
	}
	return m, nil
}
