package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shinsaya/kakeibo-cli/pkg/http"
	"github.com/shinsaya/kakeibo-cli/pkg/models"
	"github.com/shinsaya/kakeibo-cli/pkg/state"
)

var (
	// ErrSubmitInFlight is returned when a submit or delete is attempted
	// while another one has not resolved yet. No request is sent.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrNoUserSelected is returned when creating an event while the
	// combined view is active. Events belong to one user, so the caller
	// has to pick one first. No request is sent.
	ErrNoUserSelected = errors.New("select a user before adding events")
)

// Confirmer asks the user a yes/no question before destructive actions
type Confirmer interface {
	Confirm(prompt string) bool
}

// FormPayload is the validated form input for a create or edit. The
// form layer guarantees shape and validity; the editor trusts it.
type FormPayload struct {
	Date        string // yyyy-MM-dd
	IsIncome    bool
	PaymentType models.PaymentType
	Title       string
	Amount      int64
}

// EventEditor routes edits to the right Ledger API mutation and keeps
// at most one submission in flight. An edit session is opened with
// BeginEdit and ends on successful submit, delete, or Cancel. After any
// successful mutation the store is refetched; the collection is never
// patched locally.
type EventEditor struct {
	client    http.LedgerClientInterface
	store     *EventStore
	users     *state.UserState
	confirmer Confirmer

	mu         sync.Mutex
	submitting bool
	editing    *models.Event
}

// NewEventEditor creates an editor over the given store and client
func NewEventEditor(client http.LedgerClientInterface, store *EventStore, users *state.UserState, confirmer Confirmer) *EventEditor {
	return &EventEditor{
		client:    client,
		store:     store,
		users:     users,
		confirmer: confirmer,
	}
}

// BeginEdit opens an edit session for the given event
func (e *EventEditor) BeginEdit(ev models.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = &ev
}

// Cancel closes the open edit session, if any
func (e *EventEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = nil
}

// Editing returns a copy of the event being edited, or nil when the
// next submit would create a new one.
func (e *EventEditor) Editing() *models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == nil {
		return nil
	}
	ev := *e.editing
	return &ev
}

// Submitting reports whether a submission is currently in flight
func (e *EventEditor) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// Submit sends the form as a create when no edit session is open, or as
// an update of the session's event otherwise. Editing the date moves
// the record through the dedicated relocation operation; the server
// treats the date as part of the record's identity, so an in-place
// update must not change it. On failure the session stays open so the
// user can retry or cancel.
func (e *EventEditor) Submit(ctx context.Context, form FormPayload) error {
	if !e.acquire() {
		return ErrSubmitInFlight
	}
	defer e.release()

	e.mu.Lock()
	editing := e.editing
	e.mu.Unlock()

	var err error
	if editing == nil {
		err = e.create(ctx, form)
	} else {
		err = e.update(ctx, *editing, form)
	}

	if err != nil {
		if !errors.Is(err, ErrNoUserSelected) {
			log.Error().Err(err).Msg("Error submitting event")
		}
		return err
	}

	e.mu.Lock()
	e.editing = nil
	e.mu.Unlock()
	return e.store.Refresh(ctx)
}

// Delete removes the event after the user confirms. A declined
// confirmation is a no-op with no side effects.
func (e *EventEditor) Delete(ctx context.Context, ev models.Event) error {
	if !e.acquire() {
		return ErrSubmitInFlight
	}
	defer e.release()

	prompt := fmt.Sprintf("Delete %q (%s, %s)?",
		ev.Title, models.ToFormDate(ev.Date), models.FormatAmount(ev.Amount))
	if !e.confirmer.Confirm(prompt) {
		return nil
	}

	if err := e.client.DeleteEvent(ctx, ev.EventID); err != nil {
		log.Error().Err(err).Str("eventId", ev.EventID).Msg("Error deleting event")
		return err
	}

	e.mu.Lock()
	e.editing = nil
	e.mu.Unlock()
	return e.store.Refresh(ctx)
}

func (e *EventEditor) create(ctx context.Context, form FormPayload) error {
	scope := e.users.Current()
	if !scope.Concrete() {
		return ErrNoUserSelected
	}

	_, err := e.client.CreateEvent(ctx, models.Event{
		Date:     models.ToAPIDate(form.Date),
		Amount:   form.Amount,
		IsIncome: form.IsIncome,
		IsCredit: models.CreditFlag(form.IsIncome, form.PaymentType),
		Title:    form.Title,
		UserName: string(scope),
	})
	return err
}

func (e *EventEditor) update(ctx context.Context, editing models.Event, form FormPayload) error {
	newDate := models.ToAPIDate(form.Date)

	patch := editing
	patch.Date = newDate
	patch.Amount = form.Amount
	patch.IsIncome = form.IsIncome
	patch.IsCredit = models.CreditFlag(form.IsIncome, form.PaymentType)
	patch.Title = form.Title

	if newDate == editing.Date {
		_, err := e.client.UpdateEvent(ctx, editing.EventID, patch)
		return err
	}

	_, err := e.client.MoveEvent(ctx, editing.EventID, editing.Date, newDate, patch)
	return err
}

func (e *EventEditor) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return false
	}
	e.submitting = true
	return true
}

func (e *EventEditor) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitting = false
}
