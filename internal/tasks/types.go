package tasks

import (
	"time"

	"gestaotemplate/internal/config"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	// TaskTypeStorageDelete retries the removal of one stored file
	TaskTypeStorageDelete = "storage:delete"
	// TaskTypeStorageSweep removes files no row references anymore
	TaskTypeStorageSweep = "storage:sweep"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// StorageDeletePayload is the payload of TaskTypeStorageDelete
type StorageDeletePayload struct {
	Key string `json:"key"`
}

// StorageSweepPayload is the payload of TaskTypeStorageSweep. An empty
// LojaID sweeps every store.
type StorageSweepPayload struct {
	LojaID string `json:"loja_id,omitempty"`
}

// RedisOpt converts the Redis settings for asynq.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
