package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gestaotemplate/internal/models"
	"gestaotemplate/internal/services"
	"gestaotemplate/internal/testutil"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteTask(t *testing.T, key string) *asynq.Task {
	payload, err := json.Marshal(StorageDeletePayload{Key: key})
	require.NoError(t, err)
	return asynq.NewTask(TaskTypeStorageDelete, payload)
}

func TestHandleStorageDelete(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewStorage()
	handler := NewTaskHandler(storage, nil)

	key := "p/assets/gestaoTemplate/marcas/logo-abcdefghij.png"
	require.NoError(t, storage.Put(ctx, key, testutil.PNG(), "image/png"))

	require.NoError(t, handler.HandleStorageDelete(ctx, deleteTask(t, key)))
	assert.False(t, storage.Exists(key))

	// Already gone is success, so the task is not retried.
	assert.NoError(t, handler.HandleStorageDelete(ctx, deleteTask(t, key)))
}

func TestHandleStorageDeleteBadPayload(t *testing.T) {
	handler := NewTaskHandler(testutil.NewStorage(), nil)

	err := handler.HandleStorageDelete(context.Background(), asynq.NewTask(TaskTypeStorageDelete, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = handler.HandleStorageDelete(context.Background(), deleteTask(t, ""))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleStorageSweep(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	storage := testutil.NewStorage()
	loja := testutil.NewLoja(t, db, "Loja da Ana")

	orphan := services.EntityFolder(loja.Pasta, "marcas") + "old-abcdefghij.png"
	require.NoError(t, storage.Put(ctx, orphan, testutil.PNG(), "image/png"))

	sweeper := services.NewSweeper(db, storage, []services.SweepTarget{
		{Table: models.MarcaGt{}.TableName(), Folder: "marcas", Columns: []string{"logo_path"}},
	}, 0)
	handler := NewTaskHandler(storage, sweeper)

	payload, err := json.Marshal(StorageSweepPayload{LojaID: loja.ID})
	require.NoError(t, err)
	require.NoError(t, handler.HandleStorageSweep(ctx, asynq.NewTask(TaskTypeStorageSweep, payload)))
	assert.False(t, storage.Exists(orphan))

	err = handler.HandleStorageSweep(ctx, asynq.NewTask(TaskTypeStorageSweep, []byte("nope")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec("0 3 * * *"))
	assert.NoError(t, ValidateSpec("@daily"))
	assert.Error(t, ValidateSpec("every night"))
}

func TestMuxRoutesStorageTasks(t *testing.T) {
	storage := testutil.NewStorage()
	srv := NewServer(asynq.RedisClientOpt{Addr: "localhost:6379"}, 1, NewTaskHandler(storage, nil), nil)

	key := "p/assets/gestaoTemplate/marcas/logo-abcdefghij.png"
	require.NoError(t, storage.Put(context.Background(), key, testutil.PNG(), "image/png"))

	require.NoError(t, srv.Mux().ProcessTask(context.Background(), deleteTask(t, key)))
	assert.False(t, storage.Exists(key))
}
