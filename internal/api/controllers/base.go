package controllers

import (
	"net/http"

	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/services"
	"gestaotemplate/internal/session"

	"github.com/labstack/echo/v4"
)

// ResourceController provides the store-scoped CRUD endpoints of one entity
type ResourceController[T any] struct {
	service   services.ScopedService[T]
	schema    validator.Schema
	storage   services.Storage
	templated bool
}

// NewResourceController creates a new resource controller
func NewResourceController[T any](service services.ScopedService[T], schema validator.Schema, storage services.Storage, templated bool) *ResourceController[T] {
	return &ResourceController[T]{
		service:   service,
		schema:    schema,
		storage:   storage,
		templated: templated,
	}
}

func (c *ResourceController[T]) scope(ctx echo.Context) (services.Scope, error) {
	principal, ok := session.FromContext(ctx.Request().Context())
	if !ok {
		return services.Scope{}, apperr.Unauthorized("")
	}
	if !principal.HasStore() {
		return services.Scope{}, apperr.Forbidden(apperr.MsgNoStore)
	}
	scope := services.Scope{LojaID: principal.LojaID, Pasta: principal.Pasta}
	if c.templated {
		scope.TemplateID = ctx.Param("template_id")
	}
	return scope, nil
}

// validate reads and checks the payload. Nothing is stored unless the whole
// payload, files included, is valid.
func (c *ResourceController[T]) validate(ctx echo.Context, partial bool) (map[string]interface{}, []services.Upload, error) {
	in, err := ReadInput(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, fields := c.schema.Validate(in, partial)
	if len(fields) > 0 {
		return nil, nil, apperr.Validation(fields)
	}
	uploads := make([]services.Upload, 0, len(res.Files))
	for _, f := range res.Files {
		uploads = append(uploads, services.Upload{
			Column:      f.Field.Column,
			Filename:    f.Filename,
			Extension:   f.Extension,
			ContentType: f.ContentType,
			Content:     f.Content,
		})
	}
	return res.Values, uploads, nil
}

// List handles retrieval of every record of the store (and template)
func (c *ResourceController[T]) List(ctx echo.Context) error {
	scope, err := c.scope(ctx)
	if err != nil {
		return err
	}
	entities, err := c.service.List(ctx.Request().Context(), scope)
	if err != nil {
		return err
	}
	out := make([]map[string]interface{}, 0, len(entities))
	for i := range entities {
		m, err := Present(&entities[i], c.schema, c.storage)
		if err != nil {
			return apperr.Internal(err)
		}
		out = append(out, m)
	}
	return ctx.JSON(http.StatusOK, out)
}

// Get handles retrieval of a single entity
func (c *ResourceController[T]) Get(ctx echo.Context) error {
	scope, err := c.scope(ctx)
	if err != nil {
		return err
	}
	entity, err := c.service.Get(ctx.Request().Context(), scope, ctx.Param("id"))
	if err != nil {
		return err
	}
	return c.respond(ctx, http.StatusOK, entity)
}

// Create handles creation of new entities
func (c *ResourceController[T]) Create(ctx echo.Context) error {
	scope, err := c.scope(ctx)
	if err != nil {
		return err
	}
	values, uploads, err := c.validate(ctx, false)
	if err != nil {
		return err
	}
	entity, err := c.service.Create(ctx.Request().Context(), scope, values, uploads)
	if err != nil {
		return err
	}
	return c.respond(ctx, http.StatusCreated, entity)
}

// Update handles partial updates; only supplied fields are checked and applied
func (c *ResourceController[T]) Update(ctx echo.Context) error {
	scope, err := c.scope(ctx)
	if err != nil {
		return err
	}
	values, uploads, err := c.validate(ctx, true)
	if err != nil {
		return err
	}
	entity, err := c.service.Update(ctx.Request().Context(), scope, ctx.Param("id"), values, uploads)
	if err != nil {
		return err
	}
	return c.respond(ctx, http.StatusOK, entity)
}

// Delete handles deletion of an entity and its files
func (c *ResourceController[T]) Delete(ctx echo.Context) error {
	scope, err := c.scope(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Request().Context(), scope, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Registro excluído com sucesso"})
}

func (c *ResourceController[T]) respond(ctx echo.Context, status int, entity *T) error {
	m, err := Present(entity, c.schema, c.storage)
	if err != nil {
		return apperr.Internal(err)
	}
	return ctx.JSON(status, m)
}

// RegisterRoutes registers CRUD routes for the controller. Templated
// entities are addressed under /:template_id.
func (c *ResourceController[T]) RegisterRoutes(g *echo.Group, path string) {
	if c.templated {
		path += "/:template_id"
	}
	g.GET(path, c.List)
	g.POST(path, c.Create)
	g.GET(path+"/:id", c.Get)
	g.PATCH(path+"/:id", c.Update)
	g.PUT(path+"/:id", c.Update)
	g.DELETE(path+"/:id", c.Delete)
}
