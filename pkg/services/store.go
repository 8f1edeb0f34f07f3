package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/shinsaya/kakeibo-cli/pkg/http"
	"github.com/shinsaya/kakeibo-cli/pkg/models"
	"github.com/shinsaya/kakeibo-cli/pkg/month"
	"github.com/shinsaya/kakeibo-cli/pkg/state"
)

// EventStore owns the event collection for the active (month, scope)
// view and its derived totals. The collection is replaced wholesale on
// every fetch; it is never patched in place, so after any completed
// operation it reflects what the server returned last.
type EventStore struct {
	client http.LedgerClientInterface
	users  *state.UserState

	mu     sync.RWMutex
	month  string
	scope  models.UserScope
	events []models.Event
	totals models.Totals
}

// NewEventStore creates a store pointed at the current wall-clock month
// and subscribes it to scope changes. The subscription delivers the
// current scope immediately, which triggers the initial fetch; every
// later scope switch refetches the active month.
func NewEventStore(client http.LedgerClientInterface, users *state.UserState) *EventStore {
	s := &EventStore{
		client: client,
		users:  users,
		month:  month.Current(),
	}

	users.Subscribe(func(scope models.UserScope) {
		s.mu.Lock()
		s.scope = scope
		s.mu.Unlock()

		if err := s.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Str("scope", string(scope)).Msg("Error fetching events after scope change")
		}
	})

	return s
}

// Refresh refetches the active (month, scope) pair. On failure the
// previous collection and totals are left untouched.
func (s *EventStore) Refresh(ctx context.Context) error {
	s.mu.RLock()
	monthToken := s.month
	scope := s.scope
	s.mu.RUnlock()

	events, err := s.fetch(ctx, monthToken, scope)
	if err != nil {
		return err
	}

	// descending by date; stable, so equal dates keep fetch order
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})

	totals := computeTotals(events)

	s.mu.Lock()
	s.events = events
	s.totals = totals
	s.mu.Unlock()
	return nil
}

func (s *EventStore) fetch(ctx context.Context, monthToken string, scope models.UserScope) ([]models.Event, error) {
	if scope.Concrete() {
		return s.client.ListEvents(ctx, string(scope), monthToken)
	}

	// both scope: one fetch per user, concurrently. Either leg failing
	// fails the whole operation; no partial merge is ever kept.
	users := models.ConcreteUsers()
	results := make([][]models.Event, len(users))

	g, gctx := errgroup.WithContext(ctx)
	for i, user := range users {
		i, user := i, user // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			events, err := s.client.ListEvents(gctx, string(user), monthToken)
			if err != nil {
				return err
			}
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.Event
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// SetMonth switches the view to the given YYYYMM token and refetches.
// A month switch never reuses another month's data.
func (s *EventStore) SetMonth(ctx context.Context, token string) error {
	if _, err := month.Parse(token); err != nil {
		return fmt.Errorf("invalid month %q: %w", token, err)
	}

	s.mu.Lock()
	s.month = token
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// NextMonth moves the view one month forward
func (s *EventStore) NextMonth(ctx context.Context) error {
	next, err := month.Next(s.Month())
	if err != nil {
		return err
	}
	return s.SetMonth(ctx, next)
}

// PrevMonth moves the view one month back
func (s *EventStore) PrevMonth(ctx context.Context) error {
	prev, err := month.Previous(s.Month())
	if err != nil {
		return err
	}
	return s.SetMonth(ctx, prev)
}

// Events returns the collection for the active scope. With a concrete
// user selected only that user's records are returned; fetches are
// already scoped, but the collection may briefly hold entries from a
// previous scope until the next fetch lands.
func (s *EventStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scope == models.ScopeBoth {
		return append([]models.Event(nil), s.events...)
	}

	return lo.Filter(s.events, func(ev models.Event, _ int) bool {
		return ev.UserName == string(s.scope)
	})
}

// Totals returns the aggregates for the current collection
func (s *EventStore) Totals() models.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Month returns the active YYYYMM token
func (s *EventStore) Month() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.month
}

// Scope returns the active user scope
func (s *EventStore) Scope() models.UserScope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

func computeTotals(events []models.Event) models.Totals {
	var totals models.Totals
	for _, ev := range events {
		if ev.IsIncome {
			totals.Income += ev.Amount
		} else {
			totals.Expense += ev.Amount
		}
	}
	totals.Balance = totals.Income - totals.Expense
	return totals
}
