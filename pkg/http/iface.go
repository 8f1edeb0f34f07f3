package http

import (
	"context"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
)

// LedgerClientInterface defines the interface for Ledger API operations
type LedgerClientInterface interface {
	ListEvents(ctx context.Context, userName, monthToken string) ([]models.Event, error)
	CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, eventID string, ev models.Event) (*models.Event, error)
	MoveEvent(ctx context.Context, eventID, oldDate, newDate string, ev models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Ensure LedgerClient implements LedgerClientInterface
var _ LedgerClientInterface = (*LedgerClient)(nil)

// Ensure MockLedgerClient implements LedgerClientInterface
var _ LedgerClientInterface = (*MockLedgerClient)(nil)
