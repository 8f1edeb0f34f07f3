package models

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// UserScope identifies whose events a view is showing. The two concrete
// users own records; ScopeBoth is a combined view and is never stored on
// an event.
type UserScope string

const (
	ScopeShin UserScope = "shin"
	ScopeSaya UserScope = "saya"
	ScopeBoth UserScope = "both"
)

// ConcreteUsers returns the two real household users.
func ConcreteUsers() []UserScope {
	return []UserScope{ScopeShin, ScopeSaya}
}

// Valid reports whether s is one of the known scopes
func (s UserScope) Valid() bool {
	return s == ScopeShin || s == ScopeSaya || s == ScopeBoth
}

// Concrete reports whether s names a single real user
func (s UserScope) Concrete() bool {
	return s == ScopeShin || s == ScopeSaya
}

// Event represents a single ledger entry as stored by the Ledger API
type Event struct {
	// EventID is assigned by the server on creation and never changes
	EventID string `json:"eventId,omitempty"`
	// Date is an 8-digit YYYYMMDD string
	Date     string `json:"date"`
	Amount   int64  `json:"amount"`
	IsIncome bool   `json:"isIncome"`
	// IsCredit is only meaningful on expenses: 0 cash, 1 credit.
	// It is nil on income records and may be absent on legacy
	// cash expenses.
	IsCredit *int   `json:"isCredit,omitempty"`
	TagID    string `json:"tagId,omitempty"`
	Title    string `json:"title,omitempty"`
	UserName string `json:"userName"`
}

// Totals holds the derived aggregates for one (month, scope) view
type Totals struct {
	Income  int64
	Expense int64
	Balance int64
}

// FormatAmount renders a ledger amount as yen for display
func FormatAmount(amount int64) string {
	return money.New(amount, money.JPY).Display()
}

// PrintFormatted prints the event in a formatted way
func (e *Event) PrintFormatted() {
	fmt.Printf("Event Details:\n")
	if e.EventID != "" {
		fmt.Printf("	Event ID: %s\n", e.EventID)
	}
	fmt.Printf("	Date: %s\n", e.Date)
	fmt.Printf("	Amount: %s\n", FormatAmount(e.Amount))
	if e.IsIncome {
		fmt.Printf("	Kind: income\n")
	} else {
		fmt.Printf("	Kind: expense (%s)\n", PaymentTypeOf(e.IsIncome, e.IsCredit))
	}
	if e.Title != "" {
		fmt.Printf("	Title: %s\n", e.Title)
	}
	if e.TagID != "" {
		fmt.Printf("	Tag: %s\n", e.TagID)
	}
	if e.UserName != "" {
		fmt.Printf("	User: %s\n", e.UserName)
	}
}
