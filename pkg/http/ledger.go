package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
	"github.com/shinsaya/kakeibo-cli/pkg/utils"
)

// LedgerClient talks to the household Ledger API over REST
type LedgerClient struct {
	baseURL string
	client  *http.Client
}

// NewLedgerClient creates a client for the Ledger API at baseURL
func NewLedgerClient(baseURL string) *LedgerClient {
	client := &http.Client{}
	if os.Getenv("LEDGER_DEBUG") != "" {
		client.Transport = utils.DebugRoundTripper()
	}
	return &LedgerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// ListEvents fetches the events for one user in one YYYYMM month
func (c *LedgerClient) ListEvents(ctx context.Context, userName, monthToken string) ([]models.Event, error) {
	params := url.Values{}
	params.Set("userName", userName)
	params.Set("month", monthToken)

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet, c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := c.do(req, &events); err != nil {
		return nil, fmt.Errorf("failed to list events for %s/%s: %w", userName, monthToken, err)
	}
	return events, nil
}

// CreateEvent registers a new event. The server assigns the eventId.
func (c *LedgerClient) CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, c.baseURL+"/events", ev)
	if err != nil {
		return nil, err
	}

	var created models.Event
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &created, nil
}

// UpdateEvent updates an event in place. The date must be unchanged;
// a date edit has to go through MoveEvent instead.
func (c *LedgerClient) UpdateEvent(ctx context.Context, eventID string, ev models.Event) (*models.Event, error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, c.baseURL+"/events/"+url.PathEscape(eventID), ev)
	if err != nil {
		return nil, err
	}

	var updated models.Event
	if err := c.do(req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	return &updated, nil
}

type moveEventRequest struct {
	OldDate string       `json:"oldDate"`
	NewDate string       `json:"newDate"`
	Event   models.Event `json:"event"`
}

// MoveEvent relocates an event to a new date, carrying the rest of the
// edited fields along. The server keys records by date, so a date edit
// is a relocation rather than a field update.
func (c *LedgerClient) MoveEvent(ctx context.Context, eventID, oldDate, newDate string, ev models.Event) (*models.Event, error) {
	body := moveEventRequest{
		OldDate: oldDate,
		NewDate: newDate,
		Event:   ev,
	}

	req, err := c.jsonRequest(ctx, http.MethodPost, c.baseURL+"/events/"+url.PathEscape(eventID)+"/move", body)
	if err != nil {
		return nil, err
	}

	var moved models.Event
	if err := c.do(req, &moved); err != nil {
		return nil, fmt.Errorf("failed to move event %s from %s to %s: %w", eventID, oldDate, newDate, err)
	}
	return &moved, nil
}

// DeleteEvent removes an event
func (c *LedgerClient) DeleteEvent(ctx context.Context, eventID string) error {
	req, err := http.NewRequestWithContext(ctx,
		http.MethodDelete, c.baseURL+"/events/"+url.PathEscape(eventID), nil)
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

func (c *LedgerClient) jsonRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *LedgerClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
