package validator

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var bannerSchema = Schema{
	Str("titulo", 20).Required(),
	URL("link").Nullable(),
	Image("imagem").Required(),
	Int("ordem", 0, 100),
	Bool("exibir"),
	Enum("posicao", "topo", "rodape").WithDefault("topo"),
}

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0xFF, 0xD9}

// fileHeader round-trips content through a multipart form so the header
// behaves like one parsed from a request.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestValidateCreate(t *testing.T) {
	in := Input{
		Values: map[string]interface{}{
			"titulo": "  Summer Sale ",
			"ordem":  "3",
			"exibir": "on",
		},
		Files: map[string]*multipart.FileHeader{
			"imagem": fileHeader(t, "imagem", "banner.jpg", jpeg),
		},
	}

	res, errs := bannerSchema.Validate(in, false)
	require.Empty(t, errs)

	assert.Equal(t, "Summer Sale", res.Values["titulo"])
	assert.Equal(t, int64(3), res.Values["ordem"])
	assert.Equal(t, true, res.Values["exibir"])
	assert.Equal(t, "topo", res.Values["posicao"])
	assert.NotContains(t, res.Values, "link")

	require.Len(t, res.Files, 1)
	assert.Equal(t, "image/jpeg", res.Files[0].ContentType)
	assert.Equal(t, "imagem_path", res.Files[0].Field.Column)
	assert.Equal(t, "banner.jpg", res.Files[0].Filename)
	assert.Equal(t, "jpg", res.Files[0].Extension)
	assert.Equal(t, jpeg, res.Files[0].Content)
}

func TestValidateRequired(t *testing.T) {
	_, errs := bannerSchema.Validate(Input{Values: map[string]interface{}{"titulo": "Summer Sale"}}, false)
	require.Contains(t, errs, "imagem")
	assert.Equal(t, []string{"O campo imagem é obrigatório."}, errs["imagem"])
	assert.NotContains(t, errs, "titulo")

	_, errs = bannerSchema.Validate(Input{Values: map[string]interface{}{"titulo": "   "}}, false)
	assert.Equal(t, []string{"O campo titulo é obrigatório."}, errs["titulo"])
}

func TestValidatePartial(t *testing.T) {
	t.Run("absent fields are skipped", func(t *testing.T) {
		res, errs := bannerSchema.Validate(Input{Values: map[string]interface{}{"exibir": false}}, true)
		require.Empty(t, errs)
		assert.Equal(t, map[string]interface{}{"exibir": false}, res.Values)
		assert.Empty(t, res.Files)
	})

	t.Run("required still rejects empty values", func(t *testing.T) {
		_, errs := bannerSchema.Validate(Input{Values: map[string]interface{}{"titulo": ""}}, true)
		assert.Contains(t, errs, "titulo")
	})

	t.Run("empty values still pass the rules", func(t *testing.T) {
		schema := Schema{
			Enum("posicao", "topo", "rodape").WithDefault("topo"),
			Color("cor"),
			Str("subtitulo", 10),
		}
		res, errs := schema.Validate(Input{Values: map[string]interface{}{
			"posicao":   " ",
			"cor":       "",
			"subtitulo": "",
		}}, true)
		assert.Equal(t, []string{"O campo posicao selecionado é inválido."}, errs["posicao"])
		assert.Equal(t, []string{"O campo cor deve ser uma cor hexadecimal válida."}, errs["cor"])
		assert.NotContains(t, errs, "subtitulo")
		assert.Equal(t, map[string]interface{}{"subtitulo": ""}, res.Values)
	})

	t.Run("nullable clears", func(t *testing.T) {
		res, errs := bannerSchema.Validate(Input{Values: map[string]interface{}{"link": nil}}, true)
		require.Empty(t, errs)
		v, ok := res.Values["link"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestValidateRules(t *testing.T) {
	in := Input{Values: map[string]interface{}{
		"titulo":  "a title that is far too long",
		"link":    "not a url",
		"ordem":   json.Number("101"),
		"exibir":  "maybe",
		"posicao": "lateral",
	}}

	_, errs := bannerSchema.Validate(in, true)
	assert.Equal(t, []string{"O campo titulo não pode ter mais que 20 caracteres."}, errs["titulo"])
	assert.Equal(t, []string{"O campo link deve ser uma URL válida."}, errs["link"])
	assert.Equal(t, []string{"O campo ordem não pode ser maior que 100."}, errs["ordem"])
	assert.Equal(t, []string{"O campo exibir deve ser verdadeiro ou falso."}, errs["exibir"])
	assert.Equal(t, []string{"O campo posicao selecionado é inválido."}, errs["posicao"])
}

func TestValidateFile(t *testing.T) {
	t.Run("wrong type", func(t *testing.T) {
		in := Input{
			Values: map[string]interface{}{"titulo": "Summer Sale"},
			Files: map[string]*multipart.FileHeader{
				"imagem": fileHeader(t, "imagem", "banner.jpg", []byte("just some text")),
			},
		}
		res, errs := bannerSchema.Validate(in, false)
		assert.Equal(t, []string{"O campo imagem deve ser um arquivo do tipo: jpeg, png, gif, webp."}, errs["imagem"])
		assert.Empty(t, res.Files)
	})

	t.Run("too large", func(t *testing.T) {
		schema := Schema{Image("imagem").Required()}
		schema[0].MaxKB = 1
		big := append(append([]byte{}, jpeg...), make([]byte, 2048)...)
		in := Input{Files: map[string]*multipart.FileHeader{"imagem": fileHeader(t, "imagem", "big.jpg", big)}}
		_, errs := schema.Validate(in, false)
		assert.Equal(t, []string{"O campo imagem não pode ser maior que 1 kilobytes."}, errs["imagem"])
	})

	t.Run("extension follows the content", func(t *testing.T) {
		payload := append(append([]byte{}, jpeg...), []byte("<script>alert(1)</script>")...)
		in := Input{
			Values: map[string]interface{}{"titulo": "Summer Sale"},
			Files: map[string]*multipart.FileHeader{
				"imagem": fileHeader(t, "imagem", "evil.html", payload),
			},
		}
		res, errs := bannerSchema.Validate(in, false)
		require.Empty(t, errs)
		require.Len(t, res.Files, 1)
		assert.Equal(t, "evil.html", res.Files[0].Filename)
		assert.Equal(t, "jpg", res.Files[0].Extension)
	})

	t.Run("string instead of file", func(t *testing.T) {
		in := Input{Values: map[string]interface{}{"titulo": "Summer Sale", "imagem": "banner.jpg"}}
		_, errs := bannerSchema.Validate(in, false)
		assert.Equal(t, []string{"O campo imagem deve ser um arquivo."}, errs["imagem"])
	})
}

func TestCoerceJSONAndDecimal(t *testing.T) {
	schema := Schema{
		JSON("layout_config").Required(),
		Decimal("desconto", 0, 100).Nullable(),
		FK("categoria_id", "categorias"),
	}

	res, errs := schema.Validate(Input{Values: map[string]interface{}{
		"layout_config": `{"colunas":3}`,
		"desconto":      "12,5",
	}}, false)
	require.Empty(t, errs)
	assert.Equal(t, datatypes.JSON(`{"colunas":3}`), res.Values["layout_config"])
	assert.Equal(t, 12.5, res.Values["desconto"])

	_, errs = schema.Validate(Input{Values: map[string]interface{}{
		"layout_config": "{broken",
		"categoria_id":  "123",
	}}, false)
	assert.Equal(t, []string{"O campo layout config deve ser um JSON válido."}, errs["layout_config"])
	assert.Equal(t, []string{"O campo categoria id deve ser um UUID válido."}, errs["categoria_id"])
}

func TestFileColumns(t *testing.T) {
	assert.Equal(t, []string{"imagem_path"}, bannerSchema.FileColumns())
	assert.Empty(t, Schema{Bool("exibir")}.FileColumns())
}

func TestValidateValue(t *testing.T) {
	assert.Empty(t, ValidateValue("status", "done", "oneof=pending in_progress done"))
	errs := ValidateValue("status", "archived", "oneof=pending in_progress done")
	assert.Equal(t, []string{"O campo status selecionado é inválido."}, errs["status"])
}
