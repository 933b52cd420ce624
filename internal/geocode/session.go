package geocode

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/DukeRupert/courtside/internal/generation"
	"github.com/DukeRupert/courtside/internal/metrics"
)

// DefaultDebounce is the delay between the last keystroke and the search.
const DefaultDebounce = 300 * time.Millisecond

// Concern names reported to OnDiscard.
const (
	ConcernSearch  = "search"
	ConcernDetails = "details"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Debounce time.Duration
	Logger   *slog.Logger

	// OnChange is called after a result has been applied.
	OnChange func(Snapshot)

	// OnDiscard is called when a stale response is dropped.
	OnDiscard func(concern string)
}

// Snapshot is the observable state of a Session.
type Snapshot struct {
	Query            string
	Suggestions      []Suggestion
	ActiveProviderID string
	Place            *Place
	Err              error
}

// Session drives a location picker: debounced autocomplete plus details
// lookups. Only the response of the latest request of each concern is
// applied; a details response is also dropped once the active provider id
// has moved on.
type Session struct {
	provider Provider
	opts     SessionOptions

	searches generation.Tracker
	details  generation.Tracker
	debounce *generation.Debouncer
	wg       sync.WaitGroup

	mu    sync.Mutex
	state Snapshot
}

// NewSession creates a Session over provider.
func NewSession(provider Provider, opts SessionOptions) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		provider: provider,
		opts:     opts,
		debounce: generation.NewDebouncer(opts.Debounce),
	}
}

// Search schedules an autocomplete request for query. Queries shorter than
// MinQueryLength clear the suggestions instead.
func (s *Session) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.state.Query = query
	s.mu.Unlock()

	if len([]rune(query)) < MinQueryLength {
		if s.debounce.Stop() {
			s.wg.Done()
		}
		s.searches.Invalidate()
		s.mu.Lock()
		s.state.Suggestions = nil
		s.mu.Unlock()
		return
	}

	s.wg.Add(1)
	if s.debounce.Call(func() {
		defer s.wg.Done()
		s.runSearch(ctx, query)
	}) {
		// The replaced call will never run.
		s.wg.Done()
	}
}

func (s *Session) runSearch(ctx context.Context, query string) {
	tok := s.searches.Next()
	suggestions, err := s.provider.Autocomplete(ctx, query)

	applied := s.searches.Apply(tok, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.state.Err = err
			return
		}
		s.state.Suggestions = suggestions
		s.state.Err = nil
	})
	s.finish(applied, ConcernSearch, err)
}

// Resolve makes providerID the active selection and fetches its details in
// the background.
func (s *Session) Resolve(ctx context.Context, providerID string) {
	s.mu.Lock()
	s.state.ActiveProviderID = providerID
	s.state.Place = nil
	s.mu.Unlock()

	tok := s.details.Next()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		place, err := s.provider.Details(ctx, providerID)

		applied := s.details.Apply(tok, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.state.ActiveProviderID != providerID {
				return
			}
			if err != nil {
				s.state.Err = err
				return
			}
			s.state.Place = place
			s.state.Err = nil
		})
		s.finish(applied, ConcernDetails, err)
	}()
}

// Clear forgets the active selection. In-flight details become stale.
func (s *Session) Clear() {
	s.details.Invalidate()
	s.mu.Lock()
	s.state.ActiveProviderID = ""
	s.state.Place = nil
	s.mu.Unlock()
}

func (s *Session) finish(applied bool, concern string, err error) {
	if !applied {
		s.opts.Logger.Debug("Discarded stale geocoder response", "concern", concern)
		metrics.StaleLocationResponses.WithLabelValues(concern).Inc()
		if s.opts.OnDiscard != nil {
			s.opts.OnDiscard(concern)
		}
		return
	}
	if err != nil {
		s.opts.Logger.Warn("Geocoder request failed", "concern", concern, "error", err)
	}
	if s.opts.OnChange != nil {
		s.opts.OnChange(s.Snapshot())
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Suggestions = append([]Suggestion(nil), s.state.Suggestions...)
	if s.state.Place != nil {
		p := *s.state.Place
		out.Place = &p
	}
	return out
}

// Wait blocks until every scheduled request has completed.
func (s *Session) Wait() {
	s.wg.Wait()
}
