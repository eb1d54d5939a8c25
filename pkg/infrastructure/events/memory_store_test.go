package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (h *recordingHandler) CanHandle(string) bool { return true }

func (h *recordingHandler) Handle(e Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendEvent(CalculatorStream, NewEvent(CalculatorResetEvent, CalculatorStream, CalculatorReset{Currency: "USD"})))
	}
	require.NoError(t, store.AppendEvent("other", NewEvent(CalculatorResetEvent, "other", CalculatorReset{})))

	stream, err := store.ReadEvents(CalculatorStream, 2)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 2, stream[0].Version())
	assert.Equal(t, 3, stream[1].Version())
	assert.NotEmpty(t, stream[0].ID())

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, 4, store.Position())

	empty, err := store.ReadEvents("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemoryEventStore_Retention(t *testing.T) {
	store := NewInMemoryEventStoreWithRetention(nil, 2)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendEvent(CalculatorStream, NewEvent(CalculatorResetEvent, CalculatorStream, CalculatorReset{})))
	}

	all, _ := store.ReadAllEvents(0)
	require.Len(t, all, 2)
	assert.Equal(t, 4, all[0].Version())
	assert.Equal(t, 5, all[1].Version())

	fromFour, _ := store.ReadAllEvents(4)
	require.Len(t, fromFour, 1)
	assert.Equal(t, 5, fromFour[0].Version())

	stream, _ := store.ReadEvents(CalculatorStream, 1)
	assert.Len(t, stream, 2)
	assert.Equal(t, 5, store.Position())
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewInMemoryEventStore(zap.New(core))

	handler := &recordingHandler{err: errors.New("boom")}
	require.NoError(t, store.Subscribe([]string{CalculatorResetEvent}, handler))

	require.NoError(t, store.AppendEvent(CalculatorStream, NewEvent(CalculatorResetEvent, CalculatorStream, CalculatorReset{})))
	require.NoError(t, store.AppendEvent(CalculatorStream, NewEvent(CalculationCompletedEvent, CalculatorStream, CalculationCompleted{})))
	store.Wait()

	assert.Equal(t, 1, handler.count())
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent(CalculatorStream, NewEvent(CalculatorResetEvent, CalculatorStream, CalculatorReset{})))
	store.Wait()
	assert.Equal(t, 1, handler.count())
}

func TestLoggingHandler(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	handler := NewLoggingHandler(zap.New(core))

	assert.True(t, handler.CanHandle(CalculationCompletedEvent))
	assert.False(t, handler.CanHandle("order.planned"))

	event := NewEvent(CalculationCompletedEvent, CalculatorStream, CalculationCompleted{
		Currency: "EUR",
		Outputs:  entities.Outputs{SuccessfulOrders: 105, Recommendation: entities.Healthy},
	})
	require.NoError(t, handler.Handle(event))

	entries := logs.FilterMessage(CalculationCompletedEvent).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "EUR", entries[0].ContextMap()["currency"])
	assert.Equal(t, "HEALTHY", entries[0].ContextMap()["recommendation"])

	assert.Error(t, handler.Handle(NewEvent(CalculationCompletedEvent, CalculatorStream, "bad")))
}
