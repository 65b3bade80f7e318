package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitRunsEveryHandler(t *testing.T) {
	bus := NewEventBus()
	got := make(chan interface{}, 2)

	bus.On(Record("anuncios", "created"), func(data interface{}) { got <- data })
	bus.On(Record("anuncios", "created"), func(data interface{}) { got <- data })
	bus.On(Record("anuncios", "deleted"), func(interface{}) { t.Error("wrong event") })

	bus.Emit("anuncios.created", "id-1")

	for i := 0; i < 2; i++ {
		select {
		case v := <-got:
			assert.Equal(t, "id-1", v)
		case <-time.After(time.Second):
			require.FailNow(t, "handler not called")
		}
	}
}

func TestEmitRecoversFromPanics(t *testing.T) {
	bus := NewEventBus()
	done := make(chan struct{})

	bus.On(StorageDeleteFailed, func(interface{}) { panic("boom") })
	bus.On(StorageDeleteFailed, func(interface{}) { close(done) })

	bus.Emit(StorageDeleteFailed, "key")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler not called")
	}
}

func TestOnRecords(t *testing.T) {
	bus := NewEventBus()
	got := make(chan string, 3)

	bus.OnRecords([]string{"anuncios"}, func(event, id string) { got <- event + " " + id })

	bus.Emit(Record("anuncios", "created"), &row{ID: "a1"})
	bus.Emit(Record("anuncios", "deleted"), "a1")
	bus.Emit(Record("banners", "created"), &row{ID: "b1"})

	var seen []string
	for i := 0; i < 2; i++ {
		select {
		case v := <-got:
			seen = append(seen, v)
		case <-time.After(time.Second):
			require.FailNow(t, "handler not called")
		}
	}
	assert.ElementsMatch(t, []string{"anuncios.created a1", "anuncios.deleted a1"}, seen)

	select {
	case v := <-got:
		t.Fatalf("unexpected event %s", v)
	case <-time.After(50 * time.Millisecond):
	}
}

type row struct {
	ID string
}

func (r *row) GetID() string { return r.ID }
