// Package testutil provides in-memory databases, storage and fixtures for
// package tests.
package testutil

import (
	"fmt"
	"testing"

	"gestaotemplate/internal/db"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/services"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PublicURL is the public base URL of the storage returned by NewStorage.
const PublicURL = "http://localhost:8081"

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// NewStorage returns local storage on an in-memory filesystem.
func NewStorage() *services.LocalStorage {
	return services.NewLocalStorageFs(afero.NewMemMapFs(), PublicURL)
}

// NewLoja creates a store with its default template.
func NewLoja(t testing.TB, gdb *gorm.DB, nome string) *models.Loja {
	t.Helper()
	loja, err := models.CreateLoja(gdb, nome, "loja_"+uuid.NewString()[:8])
	require.NoError(t, err)
	require.Len(t, loja.Templates, 1)
	return loja
}

// NewCategoria creates a catalog category of lojaID.
func NewCategoria(t testing.TB, gdb *gorm.DB, lojaID string) *models.Categoria {
	t.Helper()
	c := &models.Categoria{LojaID: lojaID, Nome: "Calçados"}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

// JPEG is the smallest byte sequence sniffed as image/jpeg.
func JPEG() []byte {
	return []byte{
		0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01,
		0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9,
	}
}

// PNG is the PNG signature followed by an IHDR chunk header.
func PNG() []byte {
	return []byte{
		0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x02, 0x00, 0x00, 0x00,
	}
}
