package http

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
)

// MockLedgerClient is a mock implementation of the LedgerClient for testing
type MockLedgerClient struct {
	// Mock data storage, keyed by user name
	EventsByUser map[string][]models.Event

	// Error values to return
	ListEventsErr  error
	CreateEventErr error
	UpdateEventErr error
	MoveEventErr   error
	DeleteEventErr error

	// Per-user list errors, so one leg of a both-scope fetch can fail
	ListEventsErrByUser map[string]error

	// Recorded mutation calls
	CreateCalls []models.Event
	UpdateCalls []MockUpdateCall
	MoveCalls   []MockMoveCall
	DeleteCalls []string
	ListCalls   []MockListCall
}

type MockUpdateCall struct {
	EventID string
	Event   models.Event
}

type MockMoveCall struct {
	EventID string
	OldDate string
	NewDate string
	Event   models.Event
}

type MockListCall struct {
	UserName string
	Month    string
}

// NewMockLedgerClient creates a new mock Ledger API client
func NewMockLedgerClient() *MockLedgerClient {
	return &MockLedgerClient{
		EventsByUser:        make(map[string][]models.Event),
		ListEventsErrByUser: make(map[string]error),
	}
}

// ListEvents returns the mock events for the given user
func (m *MockLedgerClient) ListEvents(ctx context.Context, userName, monthToken string) ([]models.Event, error) {
	m.ListCalls = append(m.ListCalls, MockListCall{UserName: userName, Month: monthToken})
	if m.ListEventsErr != nil {
		return nil, m.ListEventsErr
	}
	if err, ok := m.ListEventsErrByUser[userName]; ok && err != nil {
		return nil, err
	}
	return m.EventsByUser[userName], nil
}

// CreateEvent stores the event under its user with a generated id
func (m *MockLedgerClient) CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	m.CreateCalls = append(m.CreateCalls, ev)
	if m.CreateEventErr != nil {
		return nil, m.CreateEventErr
	}

	ev.EventID = uuid.NewString()
	m.EventsByUser[ev.UserName] = append(m.EventsByUser[ev.UserName], ev)
	return &ev, nil
}

// UpdateEvent replaces the stored event with the same id
func (m *MockLedgerClient) UpdateEvent(ctx context.Context, eventID string, ev models.Event) (*models.Event, error) {
	m.UpdateCalls = append(m.UpdateCalls, MockUpdateCall{EventID: eventID, Event: ev})
	if m.UpdateEventErr != nil {
		return nil, m.UpdateEventErr
	}

	for user, events := range m.EventsByUser {
		for i := range events {
			if events[i].EventID == eventID {
				ev.EventID = eventID
				m.EventsByUser[user][i] = ev
				return &ev, nil
			}
		}
	}
	return nil, fmt.Errorf("no event found with id: %s", eventID)
}

// MoveEvent records the relocation and applies it to the stored event
func (m *MockLedgerClient) MoveEvent(ctx context.Context, eventID, oldDate, newDate string, ev models.Event) (*models.Event, error) {
	m.MoveCalls = append(m.MoveCalls, MockMoveCall{EventID: eventID, OldDate: oldDate, NewDate: newDate, Event: ev})
	if m.MoveEventErr != nil {
		return nil, m.MoveEventErr
	}

	for user, events := range m.EventsByUser {
		for i := range events {
			if events[i].EventID == eventID {
				ev.EventID = eventID
				ev.Date = newDate
				m.EventsByUser[user][i] = ev
				return &ev, nil
			}
		}
	}
	return nil, fmt.Errorf("no event found with id: %s", eventID)
}

// DeleteEvent removes the stored event with the given id
func (m *MockLedgerClient) DeleteEvent(ctx context.Context, eventID string) error {
	m.DeleteCalls = append(m.DeleteCalls, eventID)
	if m.DeleteEventErr != nil {
		return m.DeleteEventErr
	}

	for user, events := range m.EventsByUser {
		for i := range events {
			if events[i].EventID == eventID {
				m.EventsByUser[user] = append(events[:i], events[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("no event found with id: %s", eventID)
}
