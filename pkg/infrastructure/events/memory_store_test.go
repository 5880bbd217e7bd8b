package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingHandler struct {
	mu      sync.Mutex
	handled []Event
	types   map[string]bool
}

func (h *capturingHandler) Handle(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return nil
}

func (h *capturingHandler) CanHandle(eventType string) bool {
	return h.types[eventType]
}

func TestInMemoryStoreAppendAndHistory(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Append("r1", RecommendationProposed, map[string]string{"product_id": "PARKA"}))
	require.NoError(t, store.Append("r1", RecommendationApproved, nil))
	require.NoError(t, store.Append("r2", RecommendationProposed, nil))

	trail, err := store.History("r1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, RecommendationProposed, trail[0].Type)
	assert.Equal(t, 1, trail[0].Version)
	assert.Equal(t, RecommendationApproved, trail[1].Type)
	assert.Equal(t, 2, trail[1].Version)
	assert.Equal(t, "PARKA", trail[0].Data["product_id"])

	// Versions are per stream.
	other, err := store.History("r2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, 1, other[0].Version)

	all, err := store.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInMemoryStoreUnknownStreamIsEmpty(t *testing.T) {
	store := NewInMemoryStore()
	trail, err := store.History("nope")
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestInMemoryStoreSubscribe(t *testing.T) {
	store := NewInMemoryStore()
	handler := &capturingHandler{types: map[string]bool{RecommendationExecuted: true}}
	require.NoError(t, store.Subscribe([]string{RecommendationExecuted}, handler))

	require.NoError(t, store.Append("r1", RecommendationApproved, nil))
	require.NoError(t, store.Append("r1", RecommendationExecuted, nil))

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Len(t, handler.handled, 1)
	assert.Equal(t, RecommendationExecuted, handler.handled[0].Type)
}

func TestInMemoryStoreConcurrentAppends(t *testing.T) {
	store := NewInMemoryStore()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, store.Append("r1", RecommendationProposed, nil))
		}()
	}
	wg.Wait()

	trail, err := store.History("r1")
	require.NoError(t, err)
	require.Len(t, trail, writers)

	seen := make(map[int]bool, writers)
	for _, e := range trail {
		seen[e.Version] = true
	}
	// Every version from 1..writers is assigned exactly once.
	assert.Len(t, seen, writers)
}
