package resources

import (
	"testing"

	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsMatchModels(t *testing.T) {
	names := map[string]bool{}
	for _, def := range All() {
		t.Run(def.Name, func(t *testing.T) {
			assert.False(t, names[def.Name], "duplicate route")
			names[def.Name] = true

			columns, err := services.ToMap(def.Model)
			require.NoError(t, err)

			assert.Contains(t, columns, "loja_id")
			if def.Templated {
				assert.Contains(t, columns, "template_id")
			} else {
				assert.NotContains(t, columns, "template_id")
			}

			for _, f := range def.Schema {
				col := f.Name
				if f.Kind == validator.KindFile {
					col = f.Column
				}
				assert.Contains(t, columns, col, "field %s has no column", f.Name)
			}
			assert.NotEmpty(t, def.Table())
		})
	}
	assert.Len(t, All(), 23)
}

func TestTables(t *testing.T) {
	tables := Tables()
	assert.Len(t, tables, len(All()))
	assert.Contains(t, tables, Anuncio.Table())
	assert.Contains(t, tables, Idioma.Table())
}

func TestServiceConfig(t *testing.T) {
	cfg := BannersCategoriasGt.ServiceConfig()
	assert.Equal(t, "bannersCategorias", cfg.Folder)
	assert.True(t, cfg.Templated)
	assert.Equal(t, []string{"imagem_path"}, cfg.FileColumns)
	assert.Equal(t, []services.Reference{{Column: "categoria_id", Table: "categorias"}}, cfg.References)

	assert.False(t, Idioma.ServiceConfig().Templated)
}

func TestSweepTargets(t *testing.T) {
	targets := SweepTargets()
	require.NotEmpty(t, targets)

	byTable := map[string]services.SweepTarget{}
	for _, target := range targets {
		assert.NotEmpty(t, target.Columns)
		byTable[target.Table] = target
	}
	assert.Equal(t, []string{"imagem_desktop_path", "imagem_mobile_path"}, byTable["banners_rotativos"].Columns)
	assert.NotContains(t, byTable, "anuncios")
	assert.NotContains(t, byTable, "idiomas")
}
