package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/events"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/utils/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Scope is the store (and template) a request operates on.
type Scope struct {
	LojaID     string
	TemplateID string
	Pasta      string
}

// Reference is a foreign key whose value must point at a row of Table
// belonging to the same store.
type Reference struct {
	Column string
	Table  string
}

// ScopedConfig describes the entity a ScopedService manages.
type ScopedConfig struct {
	Folder      string
	Templated   bool
	FileColumns []string
	References  []Reference
}

// ScopedService defines the store-scoped CRUD operations
type ScopedService[T any] interface {
	List(ctx context.Context, scope Scope) ([]T, error)
	Get(ctx context.Context, scope Scope, id string) (*T, error)
	Create(ctx context.Context, scope Scope, values map[string]interface{}, uploads []Upload) (*T, error)
	Update(ctx context.Context, scope Scope, id string, values map[string]interface{}, uploads []Upload) (*T, error)
	Delete(ctx context.Context, scope Scope, id string) error
}

// ScopedServiceImpl implements ScopedService on gorm and a Storage backend.
type ScopedServiceImpl[T any] struct {
	db      *gorm.DB
	storage Storage
	cfg     ScopedConfig
	table   string
	logger  *logger.Logger
}

// GormTableName resolves the table of model through gorm's naming strategy,
// honouring TableName methods.
func GormTableName(db *gorm.DB, model interface{}) string {
	if t, ok := model.(schema.Tabler); ok {
		return t.TableName()
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err == nil {
		return stmt.Schema.Table
	}
	return ""
}

// NewScopedService creates a new store-scoped service for T
func NewScopedService[T any](db *gorm.DB, storage Storage, cfg ScopedConfig) *ScopedServiceImpl[T] {
	table := GormTableName(db, new(T))
	return &ScopedServiceImpl[T]{
		db:      db,
		storage: storage,
		cfg:     cfg,
		table:   table,
		logger:  logger.New(table),
	}
}

func (s *ScopedServiceImpl[T]) scoped(ctx context.Context, scope Scope) *gorm.DB {
	q := s.db.WithContext(ctx).Model(new(T)).Where("loja_id = ?", scope.LojaID)
	if s.cfg.Templated {
		q = q.Where("template_id = ?", scope.TemplateID)
	}
	return q
}

func (s *ScopedServiceImpl[T]) List(ctx context.Context, scope Scope) ([]T, error) {
	entities := []T{}
	if err := s.scoped(ctx, scope).Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return entities, nil
}

func (s *ScopedServiceImpl[T]) Get(ctx context.Context, scope Scope, id string) (*T, error) {
	var entity T
	err := s.scoped(ctx, scope).Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &entity, nil
}

func (s *ScopedServiceImpl[T]) Create(ctx context.Context, scope Scope, values map[string]interface{}, uploads []Upload) (*T, error) {
	if s.cfg.Templated {
		if err := s.checkTemplate(ctx, scope); err != nil {
			return nil, err
		}
	}
	if err := s.checkReferences(ctx, scope, values); err != nil {
		return nil, err
	}

	stored, err := s.storeUploads(ctx, scope, values, uploads)
	if err != nil {
		return nil, err
	}

	row := make(map[string]interface{}, len(values)+2)
	for k, v := range values {
		row[k] = v
	}
	row["loja_id"] = scope.LojaID
	if s.cfg.Templated {
		row["template_id"] = scope.TemplateID
	}

	entity, err := decode[T](row)
	if err != nil {
		s.discard(ctx, stored)
		return nil, apperr.Internal(err)
	}

	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		s.discard(ctx, stored)
		return nil, apperr.Internal(fmt.Errorf("insert %s: %w", s.table, err))
	}

	events.Emit(events.Record(s.table, "created"), entity)
	return entity, nil
}

func (s *ScopedServiceImpl[T]) Update(ctx context.Context, scope Scope, id string, values map[string]interface{}, uploads []Upload) (*T, error) {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, scope, values); err != nil {
		return nil, err
	}

	previous, err := fileKeys(existing, s.cfg.FileColumns)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	stored, err := s.storeUploads(ctx, scope, values, uploads)
	if err != nil {
		return nil, err
	}

	if len(values) > 0 {
		if err := s.db.WithContext(ctx).Model(existing).Updates(values).Error; err != nil {
			s.discard(ctx, stored)
			return nil, apperr.Internal(fmt.Errorf("update %s: %w", s.table, err))
		}
	}

	updated, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	var replaced []string
	for _, up := range uploads {
		if key := previous[up.Column]; key != "" {
			replaced = append(replaced, key)
		}
	}
	s.discard(ctx, replaced)

	events.Emit(events.Record(s.table, "updated"), updated)
	return updated, nil
}

func (s *ScopedServiceImpl[T]) Delete(ctx context.Context, scope Scope, id string) error {
	existing, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	keys, err := fileKeys(existing, s.cfg.FileColumns)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete %s: %w", s.table, err))
	}

	all := make([]string, 0, len(keys))
	for _, k := range keys {
		all = append(all, k)
	}
	s.discard(ctx, all)

	events.Emit(events.Record(s.table, "deleted"), id)
	return nil
}

func (s *ScopedServiceImpl[T]) checkTemplate(ctx context.Context, scope Scope) error {
	ok, err := models.TemplateBelongsTo(scope.TemplateID, scope.LojaID, s.db.WithContext(ctx))
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("Template não encontrado")
	}
	return nil
}

func (s *ScopedServiceImpl[T]) checkReferences(ctx context.Context, scope Scope, values map[string]interface{}) error {
	fields := apperr.FieldErrors{}
	for _, ref := range s.cfg.References {
		v, ok := values[ref.Column]
		if !ok || v == nil {
			continue
		}
		var count int64
		err := s.db.WithContext(ctx).Table(ref.Table).
			Where("id = ? AND loja_id = ?", v, scope.LojaID).
			Count(&count).Error
		if err != nil {
			return apperr.Internal(err)
		}
		if count == 0 {
			fields.Add(ref.Column, fmt.Sprintf("O %s selecionado é inválido.", ref.Column))
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// storeUploads writes every upload and records its key in values. On failure
// the keys written so far are removed.
func (s *ScopedServiceImpl[T]) storeUploads(ctx context.Context, scope Scope, values map[string]interface{}, uploads []Upload) ([]string, error) {
	var stored []string
	for _, up := range uploads {
		key, err := StorageKey(scope.Pasta, s.cfg.Folder, up.Filename, up.Extension)
		if err == nil {
			err = s.storage.Put(ctx, key, up.Content, up.ContentType)
		}
		if err != nil {
			s.discard(ctx, stored)
			return nil, apperr.Internal(fmt.Errorf("store %s: %w", up.Column, err))
		}
		stored = append(stored, key)
		values[up.Column] = key
	}
	return stored, nil
}

// discard deletes keys, publishing the ones that could not be removed.
func (s *ScopedServiceImpl[T]) discard(ctx context.Context, keys []string) {
	for _, key := range deleteQuietly(ctx, s.storage, keys) {
		s.logger.Warn("Could not delete %s, scheduling retry", key)
		events.Emit(events.StorageDeleteFailed, key)
	}
}

// decode builds a T from a column-keyed map. Entity json tags equal column
// names.
func decode[T any](row map[string]interface{}) (*T, error) {
	b, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	entity := new(T)
	if err := json.Unmarshal(b, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// fileKeys returns the non-empty storage keys held in columns of entity.
func fileKeys(entity interface{}, columns []string) (map[string]string, error) {
	keys := map[string]string{}
	if len(columns) == 0 {
		return keys, nil
	}
	m, err := ToMap(entity)
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		if v, ok := m[col].(string); ok && v != "" {
			keys[col] = v
		}
	}
	return keys, nil
}

// ToMap marshals entity to a generic map keyed by its json names.
func ToMap(entity interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
