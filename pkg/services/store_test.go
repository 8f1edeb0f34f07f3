package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinsaya/kakeibo-cli/pkg/http"
	"github.com/shinsaya/kakeibo-cli/pkg/models"
	"github.com/shinsaya/kakeibo-cli/pkg/state"
)

func intPtr(v int) *int {
	return &v
}

func newTestStore(t *testing.T) (*EventStore, *http.MockLedgerClient, *state.UserState) {
	t.Helper()
	client := http.NewMockLedgerClient()
	users := state.NewUserState()
	store := NewEventStore(client, users)
	// drop the calls made by the initial subscription fetch
	client.ListCalls = nil
	return store, client, users
}

func TestMergedBothScopeFetch(t *testing.T) {
	store, client, _ := newTestStore(t)

	client.EventsByUser["shin"] = []models.Event{
		{EventID: "s1", Date: "20260205", Amount: 3000, IsIncome: false, IsCredit: intPtr(0), UserName: "shin"},
	}
	client.EventsByUser["saya"] = []models.Event{
		{EventID: "y1", Date: "20260210", Amount: 5000, IsIncome: true, UserName: "saya"},
	}

	assert.NoError(t, store.SetMonth(context.Background(), "202602"))

	events := store.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, "saya", events[0].UserName)
	assert.Equal(t, "20260210", events[0].Date)
	assert.Equal(t, "shin", events[1].UserName)

	totals := store.Totals()
	assert.Equal(t, int64(5000), totals.Income)
	assert.Equal(t, int64(3000), totals.Expense)
	assert.Equal(t, int64(2000), totals.Balance)

	// one fetch per concrete user
	assert.Len(t, client.ListCalls, 2)
	for _, call := range client.ListCalls {
		assert.Equal(t, "202602", call.Month)
	}
}

func TestSortDescendingWithStableTies(t *testing.T) {
	store, client, _ := newTestStore(t)

	client.EventsByUser["shin"] = []models.Event{
		{EventID: "a", Date: "20260201", Amount: 100, UserName: "shin"},
		{EventID: "b", Date: "20260215", Amount: 100, UserName: "shin"},
		{EventID: "c", Date: "20260215", Amount: 100, UserName: "shin"},
	}

	assert.NoError(t, store.SetMonth(context.Background(), "202602"))

	events := store.Events()
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i-1].Date, events[i].Date)
	}

	// equal dates keep fetch order
	assert.Equal(t, "b", events[0].EventID)
	assert.Equal(t, "c", events[1].EventID)
	assert.Equal(t, "a", events[2].EventID)
}

func TestPartialFailureKeepsPreviousCollection(t *testing.T) {
	store, client, _ := newTestStore(t)

	client.EventsByUser["shin"] = []models.Event{
		{EventID: "s1", Date: "20260205", Amount: 3000, UserName: "shin"},
	}
	client.EventsByUser["saya"] = []models.Event{
		{EventID: "y1", Date: "20260210", Amount: 5000, IsIncome: true, UserName: "saya"},
	}
	assert.NoError(t, store.SetMonth(context.Background(), "202602"))
	before := store.Events()
	beforeTotals := store.Totals()

	// one leg failing fails the whole fetch
	client.ListEventsErrByUser["saya"] = errors.New("server unavailable")
	err := store.Refresh(context.Background())
	assert.Error(t, err)

	assert.Equal(t, before, store.Events())
	assert.Equal(t, beforeTotals, store.Totals())
}

func TestEmptyMonth(t *testing.T) {
	store, _, _ := newTestStore(t)

	assert.NoError(t, store.SetMonth(context.Background(), "202603"))
	assert.Empty(t, store.Events())
	assert.Equal(t, models.Totals{}, store.Totals())
}

func TestMonthNavigationAlwaysFetches(t *testing.T) {
	store, client, _ := newTestStore(t)

	assert.NoError(t, store.SetMonth(context.Background(), "202602"))
	assert.NoError(t, store.NextMonth(context.Background()))
	assert.Equal(t, "202603", store.Month())
	assert.NoError(t, store.PrevMonth(context.Background()))
	assert.Equal(t, "202602", store.Month())

	// both scope issues two requests per navigation, never a cache hit
	assert.Len(t, client.ListCalls, 6)
	assert.Equal(t, "202603", client.ListCalls[2].Month)
	assert.Equal(t, "202602", client.ListCalls[4].Month)
}

func TestSetMonthRejectsMalformedToken(t *testing.T) {
	store, client, _ := newTestStore(t)

	assert.Error(t, store.SetMonth(context.Background(), "2026-02"))
	assert.Empty(t, client.ListCalls)
}

func TestScopeChangeTriggersFetch(t *testing.T) {
	store, client, users := newTestStore(t)

	client.EventsByUser["shin"] = []models.Event{
		{EventID: "s1", Date: "20260205", Amount: 3000, UserName: "shin"},
	}
	client.EventsByUser["saya"] = []models.Event{
		{EventID: "y1", Date: "20260210", Amount: 5000, IsIncome: true, UserName: "saya"},
	}
	assert.NoError(t, store.SetMonth(context.Background(), "202602"))
	client.ListCalls = nil

	users.Set(models.ScopeShin)

	assert.Equal(t, models.ScopeShin, store.Scope())
	assert.Len(t, client.ListCalls, 1)
	assert.Equal(t, "shin", client.ListCalls[0].UserName)

	events := store.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, "shin", events[0].UserName)
}

func TestConcreteScopeFiltersStaleEntries(t *testing.T) {
	store, client, users := newTestStore(t)

	client.EventsByUser["shin"] = []models.Event{
		{EventID: "s1", Date: "20260205", Amount: 3000, UserName: "shin"},
	}
	client.EventsByUser["saya"] = []models.Event{
		{EventID: "y1", Date: "20260210", Amount: 5000, IsIncome: true, UserName: "saya"},
	}
	assert.NoError(t, store.SetMonth(context.Background(), "202602"))

	// make the scope-change refetch fail: the collection still holds
	// both users' records, but the view must only show shin's
	client.ListEventsErr = errors.New("server unavailable")
	users.Set(models.ScopeShin)

	events := store.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, "shin", events[0].UserName)
}
