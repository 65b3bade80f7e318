package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gestaotemplate/internal/services"
	"gestaotemplate/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskHandler processes storage maintenance tasks
type TaskHandler struct {
	storage services.Storage
	sweeper *services.Sweeper
	logger  *logger.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(storage services.Storage, sweeper *services.Sweeper) *TaskHandler {
	return &TaskHandler{
		storage: storage,
		sweeper: sweeper,
		logger:  logger.New("task_handler"),
	}
}

// HandleStorageDelete removes one stored file. A file that is already gone
// counts as removed.
func (h *TaskHandler) HandleStorageDelete(ctx context.Context, t *asynq.Task) error {
	var p StorageDeletePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil || p.Key == "" {
		return fmt.Errorf("invalid %s payload: %w", TaskTypeStorageDelete, asynq.SkipRetry)
	}

	if err := h.storage.Delete(ctx, p.Key); err != nil && !errors.Is(err, services.ErrObjectNotFound) {
		return h.logger.Error("Failed to delete %s", err, p.Key)
	}
	h.logger.Success("Deleted %s", p.Key)
	return nil
}

// HandleStorageSweep removes orphaned files.
func (h *TaskHandler) HandleStorageSweep(ctx context.Context, t *asynq.Task) error {
	var p StorageSweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid %s payload: %w", TaskTypeStorageSweep, asynq.SkipRetry)
		}
	}

	result, err := h.sweeper.Sweep(ctx, p.LojaID)
	if err != nil {
		return h.logger.Error("Sweep failed", err)
	}
	if result.Failed > 0 {
		h.logger.Warn("Sweep left %d files behind", result.Failed)
	}
	return nil
}
