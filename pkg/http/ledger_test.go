package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
)

func TestListEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "shin", r.URL.Query().Get("userName"))
		assert.Equal(t, "202602", r.URL.Query().Get("month"))

		json.NewEncoder(w).Encode([]models.Event{
			{EventID: "e1", Date: "20260205", Amount: 3000, UserName: "shin"},
		})
	}))
	defer server.Close()

	client := NewLedgerClient(server.URL)
	events, err := client.ListEvents(context.Background(), "shin", "202602")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].EventID)
	assert.Equal(t, int64(3000), events[0].Amount)
}

func TestCreateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var ev models.Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "20260115", ev.Date)
		assert.NotNil(t, ev.IsCredit)
		assert.Equal(t, 1, *ev.IsCredit)

		ev.EventID = "created-1"
		json.NewEncoder(w).Encode(ev)
	}))
	defer server.Close()

	flag := 1
	client := NewLedgerClient(server.URL)
	created, err := client.CreateEvent(context.Background(), models.Event{
		Date:     "20260115",
		Amount:   1200,
		IsCredit: &flag,
		Title:    "groceries",
		UserName: "saya",
	})
	assert.NoError(t, err)
	assert.Equal(t, "created-1", created.EventID)
}

func TestMoveEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events/e7/move", r.URL.Path)

		var body moveEventRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "20260115", body.OldDate)
		assert.Equal(t, "20260120", body.NewDate)

		moved := body.Event
		moved.EventID = "e7"
		moved.Date = body.NewDate
		json.NewEncoder(w).Encode(moved)
	}))
	defer server.Close()

	client := NewLedgerClient(server.URL)
	moved, err := client.MoveEvent(context.Background(), "e7", "20260115", "20260120", models.Event{
		Amount:   500,
		UserName: "shin",
	})
	assert.NoError(t, err)
	assert.Equal(t, "20260120", moved.Date)
}

func TestDeleteEvent(t *testing.T) {
	deleted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/events/e9", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewLedgerClient(server.URL)
	assert.NoError(t, client.DeleteEvent(context.Background(), "e9"))
	assert.True(t, deleted)
}

func TestServerErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewLedgerClient(server.URL)
	_, err := client.ListEvents(context.Background(), "shin", "202602")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
