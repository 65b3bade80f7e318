package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"golang.org/x/time/rate"

	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/config"
	"gestaotemplate/internal/handlers"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/services"

	console "gestaotemplate/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP server is built from.
type Deps struct {
	DB      *gorm.DB
	Storage services.Storage
	Clima   *services.ClimaService
	// ClimaLimiter is optional.
	ClimaLimiter handlers.Limiter
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	deps   Deps
}

var log = console.New("API-Server")

// NewServer @title Gestão Template API
// @version 1.0
// @description Store-scoped configuration of storefront templates.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	e := echo.New()
	e.HideBanner = true

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.Server.RequestTimeout))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if cfg.Server.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit))))
	}

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	// Create server instance
	s := &Server{
		echo:   e,
		config: cfg,
		deps:   deps,
	}

	if cfg.Admin.Enabled {
		if err := s.setupAdminPanel(); err != nil {
			return nil, err
		}
	}

	// Register routes
	s.registerRoutes()
	return s, nil
}

// adminUserKey holds the operator authenticated for the admin panel.
const adminUserKey = "adminUser"

func isAdminPath(p string) bool {
	return p == "/admin" || strings.HasPrefix(p, "/admin/") || strings.HasPrefix(p, "/admin-assets/")
}

// adminAuth guards the panel with HTTP basic auth against ADMIN_USERNAME
// and ADMIN_PASSWORD.
func (s *Server) adminAuth() echo.MiddlewareFunc {
	username := []byte(s.config.Admin.Username)
	password := []byte(s.config.Admin.Password)
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Skipper: func(c echo.Context) bool {
			return !isAdminPath(c.Request().URL.Path)
		},
		Realm: "Gestao Template Admin",
		Validator: func(user, pass string, c echo.Context) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(user), username) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), password) != 1 {
				log.Warn("Rejected admin login for %q from %s", user, c.RealIP())
				return false, nil
			}
			c.Set(adminUserKey, user)
			return true, nil
		},
	})
}

func (s *Server) setupAdminPanel() error {
	s.echo.Use(s.adminAuth())

	// Create a new GORM integrator
	gormIntegrator := admingorm.NewIntegrator(s.deps.DB)
	// Create a new Echo integrator
	echoIntegrator := adminecho.NewIntegrator(s.echo.Group(""))

	// Every action requires the operator set by adminAuth
	permissionChecker := func(
		request admin.PermissionRequest, ctx interface{},
	) (bool, error) {
		c, ok := ctx.(echo.Context)
		if !ok {
			return false, nil
		}
		user, ok := c.Get(adminUserKey).(string)
		return ok && user != "", nil
	}

	// Create a new admin panel
	adminPanel, err := admin.NewPanel(
		gormIntegrator, echoIntegrator, permissionChecker, nil,
	)
	if err != nil {
		return log.Error("Failed to create admin panel", err)
	}

	// Register the admin panel
	app, err := adminPanel.RegisterApp(
		"GestaoTemplate",
		"Gestão Template Admin",
		nil,
	)
	if err != nil {
		return log.Error("Failed to register admin app", err)
	}

	for _, model := range adminModels() {
		if _, err := app.RegisterModel(model, nil); err != nil {
			return log.Error("Failed to register admin model %T", err, model)
		}
	}
	log.Success("Admin panel enabled")
	return nil
}

func adminModels() []interface{} {
	list := []interface{}{
		&models.Loja{},
		&models.Template{},
		&models.Categoria{},
		&models.Produto{},
		&models.User{},
		&models.Tarefa{},
	}
	return append(list, models.Entities()...)
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	status := "healthy"
	code := http.StatusOK
	if sqlDB, err := s.deps.DB.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]interface{}{
		"status":  status,
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// customHTTPErrorHandler is the only place errors become HTTP responses.
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
		fields  apperr.FieldErrors
	)

	var appErr *apperr.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Kind.Status()
		message = appErr.Message
		fields = appErr.Fields
		if appErr.Kind == apperr.KindInternal {
			_ = log.Error("Request %s %s failed", err, c.Request().Method, c.Request().URL.Path)
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusServiceUnavailable
		message = http.StatusText(code)
	default:
		_ = log.Error("Request %s %s failed", err, c.Request().Method, c.Request().URL.Path)
		message = apperr.MsgInternal
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			body := map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			}
			if len(fields) > 0 {
				body["errors"] = fields
			}
			err = c.JSON(code, body)
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}
