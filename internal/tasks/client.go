package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"gestaotemplate/internal/events"
	"gestaotemplate/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskClient enqueues background tasks
type TaskClient struct {
	client *asynq.Client
	logger *logger.Logger
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisOpt asynq.RedisConnOpt) *TaskClient {
	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		logger: logger.New("TASKS"),
	}
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}

// EnqueueFileDelete schedules the removal of a stored file with retries.
func (c *TaskClient) EnqueueFileDelete(ctx context.Context, key string) error {
	payload, err := json.Marshal(StorageDeletePayload{Key: key})
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeStorageDelete, payload),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMax),
		asynq.Timeout(TimeoutShort),
	)
	if err != nil {
		return c.logger.Error("Failed to enqueue delete of %s", err, key)
	}
	c.logger.Info("Enqueued %s for %s (%s)", TaskTypeStorageDelete, key, info.ID)
	return nil
}

// EnqueueSweep schedules an orphan sweep of one store, or every store when
// lojaID is empty.
func (c *TaskClient) EnqueueSweep(ctx context.Context, lojaID string) (string, error) {
	payload, err := json.Marshal(StorageSweepPayload{LojaID: lojaID})
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeStorageSweep, payload),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutLong),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue sweep: %w", err)
	}
	return info.ID, nil
}

// RetryFailedDeletes enqueues a storage:delete task for every
// storage.delete_failed event.
func (c *TaskClient) RetryFailedDeletes() {
	events.On(events.StorageDeleteFailed, func(data interface{}) {
		key, ok := data.(string)
		if !ok || key == "" {
			return
		}
		_ = c.EnqueueFileDelete(context.Background(), key)
	})
}
