package geocode_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/geocode"
	"github.com/DukeRupert/courtside/internal/geocode/mock"
)

// gatedProvider blocks each Details call until its id is released.
type gatedProvider struct {
	*mock.Provider
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedProvider(places ...geocode.Place) *gatedProvider {
	g := &gatedProvider{Provider: mock.New(places...), gates: make(map[string]chan struct{})}
	g.Provider.DetailsFunc = func(ctx context.Context, id string) (*geocode.Place, error) {
		<-g.gate(id)
		return lookup(places, id)
	}
	return g
}

func lookup(places []geocode.Place, id string) (*geocode.Place, error) {
	for _, p := range places {
		if p.ProviderID == id {
			found := p
			return &found, nil
		}
	}
	return nil, geocode.ErrNotFound
}

func (g *gatedProvider) gate(id string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[id]
	if !ok {
		ch = make(chan struct{})
		g.gates[id] = ch
	}
	return ch
}

func (g *gatedProvider) release(id string) { close(g.gate(id)) }

var places = []geocode.Place{
	{ProviderID: "A", Name: "Clube A", City: "Lisboa"},
	{ProviderID: "B", Name: "Clube B", City: "Porto"},
}

func TestSession_StaleDetailsDiscarded(t *testing.T) {
	provider := newGatedProvider(places...)

	var mu sync.Mutex
	var discarded []string
	s := geocode.NewSession(provider, geocode.SessionOptions{
		OnDiscard: func(concern string) {
			mu.Lock()
			discarded = append(discarded, concern)
			mu.Unlock()
		},
	})
	ctx := context.Background()

	s.Resolve(ctx, "A")
	s.Resolve(ctx, "B")

	provider.release("B")
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.Place != nil && snap.Place.ProviderID == "B"
	}, time.Second, 5*time.Millisecond)

	provider.release("A")
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "B", snap.ActiveProviderID)
	require.NotNil(t, snap.Place)
	assert.Equal(t, "Porto", snap.Place.City)
	assert.Equal(t, []string{geocode.ConcernDetails}, discarded)
}

func TestSession_ClearDiscardsInFlight(t *testing.T) {
	provider := newGatedProvider(places...)
	s := geocode.NewSession(provider, geocode.SessionOptions{})

	s.Resolve(context.Background(), "A")
	s.Clear()
	provider.release("A")
	s.Wait()

	snap := s.Snapshot()
	assert.Empty(t, snap.ActiveProviderID)
	assert.Nil(t, snap.Place)
}

func TestSession_SearchIsDebounced(t *testing.T) {
	provider := mock.New(places...)
	changes := make(chan geocode.Snapshot, 4)
	s := geocode.NewSession(provider, geocode.SessionOptions{
		Debounce: 20 * time.Millisecond,
		OnChange: func(snap geocode.Snapshot) { changes <- snap },
	})
	ctx := context.Background()

	for _, q := range []string{"clu", "club", "clube", "clube b"} {
		s.Search(ctx, q)
	}
	s.Wait()

	autocomplete, _ := provider.Calls()
	assert.Equal(t, []string{"clube b"}, autocomplete)

	snap := <-changes
	require.Len(t, snap.Suggestions, 1)
	assert.Equal(t, "B", snap.Suggestions[0].ProviderID)
}

func TestSession_ShortQueryClearsSuggestions(t *testing.T) {
	provider := mock.New(places...)
	s := geocode.NewSession(provider, geocode.SessionOptions{Debounce: time.Millisecond})
	ctx := context.Background()

	s.Search(ctx, "clube")
	s.Wait()
	require.Len(t, s.Snapshot().Suggestions, 2)

	s.Search(ctx, "cl")
	s.Wait()
	assert.Empty(t, s.Snapshot().Suggestions)
}
