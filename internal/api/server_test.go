package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gestaotemplate/internal/api"
	"gestaotemplate/internal/config"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/services"
	"gestaotemplate/internal/testutil"
	"gestaotemplate/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const ownerPassword = "password123"

type harness struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
	storage *services.LocalStorage
	owner   *models.User
	token   string
}

type option func(*api.Deps)

func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()

	cfg := config.LoadTestConfig()
	db := testutil.NewDB(t)
	storage := testutil.NewStorage()

	deps := api.Deps{
		DB:      db,
		Storage: storage,
		Clima: services.NewClimaService(services.ClimaConfig{
			BaseURL: "http://127.0.0.1:0",
			Timeout: cfg.Weather.Timeout,
		}, nil),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	server, err := api.NewServer(cfg, deps)
	require.NoError(t, err)

	h := &harness{t: t, handler: server.Handler(), db: db, storage: storage}
	h.owner = h.createOwner("ana@example.com", "Loja da Ana")
	h.token = h.login("ana@example.com")
	return h
}

func (h *harness) createOwner(email, lojaNome string) *models.User {
	h.t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.MinCost)
	require.NoError(h.t, err)
	pasta, err := utils.Pasta(lojaNome)
	require.NoError(h.t, err)
	user, err := models.CreateOwner(h.db, "Ana", email, string(hashed), lojaNome, pasta)
	require.NoError(h.t, err)
	require.NotNil(h.t, user)
	return user
}

func (h *harness) login(email string) string {
	h.t.Helper()
	rec := h.json(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": ownerPassword,
	})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(h.t, rec)["token"].(string)
}

func (h *harness) templateID() string {
	return h.owner.Loja.Templates[0].ID
}

func (h *harness) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) json(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return h.do(req, token)
}

func (h *harness) multipart(method, path, token string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.multipartNamed(method, path, token, "Summer Sale.jpg", fields, files)
}

func (h *harness) multipartNamed(method, path, token, filename string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	h.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	for name, content := range files {
		part, err := w.CreateFormFile(name, filename)
		require.NoError(h.t, err)
		_, err = part.Write(content)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.do(req, token)
}

func (h *harness) storedFiles(folder string) []services.Object {
	h.t.Helper()
	objects, err := h.storage.List(context.Background(), services.EntityFolder(h.owner.Loja.Pasta, folder))
	require.NoError(h.t, err)
	return objects
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l), rec.Body.String())
	return l
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}

func TestScopedRoutesRequireAuth(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodGet, "/api/v1/anuncios/"+h.templateID(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Cabeçalho de autorização ausente", body["error"])
	assert.EqualValues(t, http.StatusUnauthorized, body["code"])

	rec = h.json(http.MethodGet, "/api/v1/anuncios/"+h.templateID(), "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserWithoutStoreIsForbidden(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nome":     "Bia",
		"email":    "Bia@Example.com",
		"password": ownerPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode(t, rec)
	assert.Equal(t, "bia@example.com", user["email"])
	assert.Nil(t, user["loja_id"])
	assert.NotContains(t, user, "password")

	token := h.login("bia@example.com")
	rec = h.json(http.MethodGet, "/api/v1/idiomas", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Usuário não possui loja associada", decode(t, rec)["error"])
}

func TestRegisterWithStore(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nome":     "Caio",
		"email":    "caio@example.com",
		"password": ownerPassword,
		"loja":     "Loja do Caio",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotNil(t, decode(t, rec)["loja_id"])

	token := h.login("caio@example.com")
	rec = h.json(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loja := decode(t, rec)["loja"].(map[string]interface{})
	assert.Equal(t, "Loja do Caio", loja["nome"])
	assert.Regexp(t, `^loja_do_caio_[a-z0-9]{6}$`, loja["pasta"])
	templates := loja["templates"].([]interface{})
	require.Len(t, templates, 1)
	assert.Equal(t, models.DefaultTemplateName, templates[0].(map[string]interface{})["nome"])

	rec = h.json(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nome":     "Caio",
		"email":    "caio@example.com",
		"password": ownerPassword,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "email")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	rec := h.json(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciais inválidas", decode(t, rec)["error"])
}

func TestRefreshAndLogout(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": ownerPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	refresh := decode(t, rec)["refresh_token"].(string)

	rec = h.json(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)

	rec = h.json(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.json(http.MethodPost, "/api/v1/users/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.json(http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.json(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBannerWithImage(t *testing.T) {
	h := newHarness(t)
	path := "/api/v1/banners-estaticos/" + h.templateID()

	rec := h.multipart(http.MethodPost, path, h.token,
		map[string]string{"titulo": "Summer Sale", "exibir": "true"},
		map[string][]byte{"imagem": testutil.JPEG()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	banner := decode(t, rec)
	assert.Equal(t, "Summer Sale", banner["titulo"])
	assert.Equal(t, true, banner["exibir"])
	assert.Equal(t, h.owner.Loja.ID, banner["loja_id"])
	assert.Equal(t, h.templateID(), banner["template_id"])

	url := banner["imagem_path"].(string)
	prefix := testutil.PublicURL + "/storage/" + h.owner.Loja.Pasta + "/assets/gestaoTemplate/bannerEstatico/summer-sale-"
	assert.True(t, strings.HasPrefix(url, prefix), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	files := h.storedFiles("bannerEstatico")
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(url, files[0].Key))

	rec = h.do(httptest.NewRequest(http.MethodGet, strings.TrimPrefix(url, testutil.PublicURL), nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testutil.JPEG(), rec.Body.Bytes())
}

func TestBannerWithoutImage(t *testing.T) {
	h := newHarness(t)

	rec := h.multipart(http.MethodPost, "/api/v1/banners-estaticos/"+h.templateID(), h.token,
		map[string]string{"titulo": "Summer Sale"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Os dados fornecidos são inválidos", body["error"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "imagem")
	assert.NotContains(t, errs, "titulo")

	var count int64
	require.NoError(t, h.db.Model(&models.BannerEstatico{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBannerRejectsWrongFileType(t *testing.T) {
	h := newHarness(t)

	rec := h.multipart(http.MethodPost, "/api/v1/banners-estaticos/"+h.templateID(), h.token,
		map[string]string{"titulo": "Summer Sale"},
		map[string][]byte{"imagem": []byte("%PDF-1.4 definitely not an image")})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "imagem")
	assert.Empty(t, h.storedFiles("bannerEstatico"))
}

func TestBannerUpdateReplacesImage(t *testing.T) {
	h := newHarness(t)
	path := "/api/v1/banners-estaticos/" + h.templateID()

	rec := h.multipart(http.MethodPost, path, h.token,
		map[string]string{"titulo": "Summer Sale"},
		map[string][]byte{"imagem": testutil.JPEG()})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)

	rec = h.multipart(http.MethodPatch, path+"/"+created["id"].(string), h.token,
		nil, map[string][]byte{"imagem": testutil.PNG()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)

	assert.Equal(t, "Summer Sale", updated["titulo"])
	assert.NotEqual(t, created["imagem_path"], updated["imagem_path"])
	files := h.storedFiles("bannerEstatico")
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(updated["imagem_path"].(string), files[0].Key))
}

func TestUploadExtensionFollowsContent(t *testing.T) {
	h := newHarness(t)

	payload := append(testutil.JPEG(), []byte("<script>alert(document.cookie)</script>")...)
	rec := h.multipartNamed(http.MethodPost, "/api/v1/banners-estaticos/"+h.templateID(), h.token, "evil.html",
		map[string]string{"titulo": "Summer Sale"},
		map[string][]byte{"imagem": payload})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	url := decode(t, rec)["imagem_path"].(string)
	assert.Contains(t, url, "/bannerEstatico/evil-")
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	rec = h.do(httptest.NewRequest(http.MethodGet, strings.TrimPrefix(url, testutil.PublicURL), nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
}

func TestStorageDoesNotListDirectories(t *testing.T) {
	h := newHarness(t)

	rec := h.multipart(http.MethodPost, "/api/v1/banners-estaticos/"+h.templateID(), h.token,
		map[string]string{"titulo": "Summer Sale"},
		map[string][]byte{"imagem": testutil.JPEG()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	folder := services.EntityFolder(h.owner.Loja.Pasta, "bannerEstatico")
	for _, path := range []string{
		"/storage/",
		"/storage/" + h.owner.Loja.Pasta + "/",
		"/storage/" + folder,
		"/storage/" + h.owner.Loja.Pasta + "/assets/gestaoTemplate/bannerEstatico/missing.jpg",
	} {
		rec = h.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), h.owner.Loja.Pasta, path)
	}
}

func TestEmptyEnumIsRejectedOnUpdate(t *testing.T) {
	h := newHarness(t)
	path := "/api/v1/favoritos/" + h.templateID()

	rec := h.json(http.MethodPost, path, h.token, map[string]interface{}{"icone": "estrela"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["id"].(string)

	rec = h.json(http.MethodPatch, path+"/"+id, h.token, map[string]interface{}{"icone": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"O campo icone selecionado é inválido."}, errs["icone"])

	rec = h.json(http.MethodGet, path+"/"+id, h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "estrela", decode(t, rec)["icone"])
}

func TestAnuncioLifecycle(t *testing.T) {
	h := newHarness(t)
	path := "/api/v1/anuncios/" + h.templateID()

	rec := h.json(http.MethodPost, path, h.token, map[string]interface{}{
		"texto":     "Frete grátis acima de R$ 199",
		"cor_fundo": "#ff0000",
		"exibir":    true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := created["id"].(string)

	rec = h.json(http.MethodGet, path+"/"+id, h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Frete grátis acima de R$ 199", got["texto"])
	assert.Equal(t, "#ff0000", got["cor_fundo"])
	assert.Equal(t, true, got["exibir"])

	rec = h.json(http.MethodGet, path, h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = h.json(http.MethodPatch, path+"/"+id, h.token, map[string]interface{}{"exibir": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode(t, rec)
	assert.Equal(t, false, patched["exibir"])
	assert.Equal(t, "Frete grátis acima de R$ 199", patched["texto"])
	assert.Equal(t, "#ff0000", patched["cor_fundo"])

	rec = h.json(http.MethodDelete, path+"/"+id, h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Registro excluído com sucesso", decode(t, rec)["message"])

	rec = h.json(http.MethodGet, path+"/"+id, h.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnuncioValidation(t *testing.T) {
	h := newHarness(t)
	path := "/api/v1/anuncios/" + h.templateID()

	rec := h.json(http.MethodPost, path, h.token, map[string]interface{}{"cor_fundo": "red"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"O campo texto é obrigatório."}, errs["texto"])
	assert.Contains(t, errs, "cor_fundo")

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec = h.do(req, h.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScopeComesFromSession(t *testing.T) {
	h := newHarness(t)
	other := h.createOwner("outra@example.com", "Outra Loja")
	otherToken := h.login("outra@example.com")

	rec := h.json(http.MethodPost, "/api/v1/anuncios/"+h.templateID(), h.token, map[string]interface{}{
		"texto":   "Só da Ana",
		"loja_id": other.Loja.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, h.owner.Loja.ID, created["loja_id"])

	// The other store can neither see the record nor use Ana's template.
	rec = h.json(http.MethodGet, "/api/v1/anuncios/"+other.Loja.Templates[0].ID+"/"+created["id"].(string), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.json(http.MethodGet, "/api/v1/anuncios/"+h.templateID()+"/"+created["id"].(string), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.json(http.MethodPost, "/api/v1/anuncios/"+h.templateID(), otherToken, map[string]interface{}{"texto": "intruso"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Template não encontrado", decode(t, rec)["error"])
}

func TestIdiomasAreStoreWide(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/v1/idiomas", h.token, map[string]interface{}{"codigo": "pt-BR", "padrao": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	idioma := decode(t, rec)
	assert.Equal(t, true, idioma["ativo"])
	assert.NotContains(t, idioma, "template_id")

	rec = h.json(http.MethodPost, "/api/v1/idiomas", h.token, map[string]interface{}{"codigo": "fr-FR"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTarefas(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/v1/tarefas", "", map[string]interface{}{"titulo": "Revisar banners"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tarefa := decode(t, rec)
	assert.Equal(t, "pending", tarefa["status"])
	id := tarefa["id"].(string)

	rec = h.json(http.MethodPost, "/api/v1/tarefas", "", map[string]interface{}{"titulo": "x", "status": "archived"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = h.json(http.MethodGet, "/api/v1/tarefas?status=bogus", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "status")

	rec = h.json(http.MethodGet, "/api/v1/tarefas?status=done", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))

	rec = h.json(http.MethodPatch, "/api/v1/tarefas/"+id, "", map[string]interface{}{"status": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = h.json(http.MethodPatch, "/api/v1/tarefas/"+id, "", map[string]interface{}{"status": "done"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Revisar banners", decode(t, rec)["titulo"])

	rec = h.json(http.MethodGet, "/api/v1/tarefas?status=done", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = h.json(http.MethodDelete, "/api/v1/tarefas/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tarefa excluída com sucesso", decode(t, rec)["message"])

	rec = h.json(http.MethodGet, "/api/v1/tarefas/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tarefa não encontrada", decode(t, rec)["error"])
}

type fakeLimiter struct {
	allowed bool
}

func (l fakeLimiter) Allow(context.Context, string) (bool, error) {
	return l.allowed, nil
}

func withClima(upstream *httptest.Server, limiter fakeLimiter) option {
	return func(d *api.Deps) {
		d.Clima = services.NewClimaService(services.ClimaConfig{BaseURL: upstream.URL, APIKey: "k", Timeout: 2 * time.Second}, nil)
		d.ClimaLimiter = limiter
	}
}

func weatherUpstream(t *testing.T) *httptest.Server {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Atlantis" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"Recife","main":{"temp":29.1,"humidity":78},"weather":[{"description":"céu limpo"}]}`))
	}))
	t.Cleanup(upstream.Close)
	return upstream
}

func TestClima(t *testing.T) {
	h := newHarness(t, withClima(weatherUpstream(t), fakeLimiter{allowed: true}))

	rec := h.json(http.MethodGet, "/api/v1/clima/Recife", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Recife", body["cidade"])
	assert.Equal(t, 29.1, body["temperatura"])
	assert.EqualValues(t, 78, body["umidade"])
	assert.Equal(t, "céu limpo", body["descricao"])

	rec = h.json(http.MethodGet, "/api/v1/clima/Atlantis", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "city not found", body["mensagem"])
	assert.EqualValues(t, http.StatusNotFound, body["status_code"])
}

func TestClimaRateLimited(t *testing.T) {
	h := newHarness(t, withClima(weatherUpstream(t), fakeLimiter{allowed: false}))

	rec := h.json(http.MethodGet, "/api/v1/clima/Recife", "", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["error"])
	assert.EqualValues(t, http.StatusTooManyRequests, body["status_code"])
}

func TestClimaUnreachable(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodGet, "/api/v1/clima/Recife", "", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Serviço de clima indisponível", decode(t, rec)["mensagem"])
}

func TestAdminPanelRequiresOperator(t *testing.T) {
	cfg := config.LoadTestConfig()
	cfg.Admin = config.AdminConfig{Enabled: true, Username: "ops", Password: "panel-pass"}
	server, err := api.NewServer(cfg, api.Deps{
		DB:      testutil.NewDB(t),
		Storage: testutil.NewStorage(),
		Clima:   services.NewClimaService(services.ClimaConfig{BaseURL: "http://127.0.0.1:0"}, nil),
	})
	require.NoError(t, err)

	get := func(path, user, pass string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if user != "" {
			req.SetBasicAuth(user, pass)
		}
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		return rec
	}

	rec := get("/admin/a/GestaoTemplate", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")

	rec = get("/admin/a/GestaoTemplate", "ops", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get("/admin/a/GestaoTemplate", "ops", "panel-pass")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	for _, name := range []string{"Loja", "Tarefa", "Banner Estatico", "Idioma"} {
		assert.Contains(t, body, name)
	}

	// The JSON API is not behind the panel credentials.
	rec = get("/api/v1/tarefas", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
