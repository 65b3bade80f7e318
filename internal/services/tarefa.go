package services

import (
	"context"
	"errors"
	"fmt"

	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/events"
	"gestaotemplate/internal/models"

	"gorm.io/gorm"
)

// TarefaService manages the to-do list. Tarefas are not owned by anyone.
type TarefaService struct {
	db *gorm.DB
}

func NewTarefaService(db *gorm.DB) *TarefaService {
	return &TarefaService{db: db}
}

// List returns every tarefa, oldest first, optionally only those in status.
func (s *TarefaService) List(ctx context.Context, status models.TarefaStatus) ([]models.Tarefa, error) {
	tarefas := []models.Tarefa{}
	q := s.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&tarefas).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tarefas, nil
}

func (s *TarefaService) Get(ctx context.Context, id string) (*models.Tarefa, error) {
	var tarefa models.Tarefa
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tarefa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Tarefa não encontrada")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &tarefa, nil
}

func (s *TarefaService) Create(ctx context.Context, values map[string]interface{}) (*models.Tarefa, error) {
	tarefa, err := decode[models.Tarefa](values)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tarefa.Status == "" {
		tarefa.Status = models.TarefaPending
	}
	if err := s.db.WithContext(ctx).Create(tarefa).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("insert tarefa: %w", err))
	}
	events.Emit(events.Record("tarefas", "created"), tarefa)
	return tarefa, nil
}

func (s *TarefaService) Update(ctx context.Context, id string, values map[string]interface{}) (*models.Tarefa, error) {
	tarefa, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		if err := s.db.WithContext(ctx).Model(tarefa).Updates(values).Error; err != nil {
			return nil, apperr.Internal(fmt.Errorf("update tarefa: %w", err))
		}
	}
	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	events.Emit(events.Record("tarefas", "updated"), updated)
	return updated, nil
}

func (s *TarefaService) Delete(ctx context.Context, id string) error {
	tarefa, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(tarefa).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete tarefa: %w", err))
	}
	events.Emit(events.Record("tarefas", "deleted"), id)
	return nil
}
