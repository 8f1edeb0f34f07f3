package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
	"github.com/shinsaya/kakeibo-cli/pkg/services"
	"github.com/shinsaya/kakeibo-cli/pkg/utils"
)

func (r *replState) listEvents() {
	events := r.store.Events()
	totals := r.store.Totals()

	scope := r.store.Scope()
	scopeLabel := utils.Capitalize(string(scope))
	if scope == models.ScopeBoth {
		scopeLabel = "Both"
	}

	fmt.Printf("\n%s — %s\n\n", r.store.Month(), scopeLabel)

	if len(events) == 0 {
		fmt.Println("No events this month")
	} else {
		fmt.Printf("%-12s %-8s %-8s %-8s %12s  %-25s %s\n", "Date", "User", "Kind", "Paid", "Amount", "Title", "Event ID")
		fmt.Println(strings.Repeat("-", 110))
		for _, ev := range events {
			kind := "expense"
			if ev.IsIncome {
				kind = "income"
			}
			paid := string(models.PaymentTypeOf(ev.IsIncome, ev.IsCredit))
			if paid == "" {
				paid = "-"
			}
			fmt.Printf("%-12s %-8s %-8s %-8s %12s  %-25s %s\n",
				models.ToFormDate(ev.Date),
				utils.Capitalize(ev.UserName),
				kind,
				paid,
				models.FormatAmount(ev.Amount),
				utils.Truncate(ev.Title, 25),
				ev.EventID)
		}
	}

	fmt.Println()
	fmt.Printf("Income:  %12s\n", models.FormatAmount(totals.Income))
	fmt.Printf("Expense: %12s\n", models.FormatAmount(totals.Expense))
	fmt.Printf("Balance: %12s\n", models.FormatAmount(totals.Balance))
	fmt.Println()
}

func (r *replState) shiftMonth(shift func(context.Context) error) {
	if err := shift(context.Background()); err != nil {
		log.Error().Err(err).Msg("Error fetching events")
		return
	}
	r.listEvents()
}

func (r *replState) gotoMonth(input string) {
	parts := strings.Fields(input)
	if len(parts) < 2 {
		fmt.Println("Usage: month <YYYYMM>")
		fmt.Println("Example: month 202602")
		return
	}

	if err := r.store.SetMonth(context.Background(), parts[1]); err != nil {
		log.Error().Err(err).Msg("Error fetching events")
		return
	}
	r.listEvents()
}

func (r *replState) changeUser(input string) {
	parts := strings.Fields(input)
	if len(parts) < 2 {
		fmt.Println("Usage: user <shin|saya|both>")
		return
	}

	scope := models.UserScope(strings.ToLower(parts[1]))
	if !scope.Valid() {
		fmt.Println("Unknown user. Supported values are: shin, saya, both")
		return
	}

	// the store refetches through its scope subscription
	r.users.Set(scope)
	r.listEvents()
}

func (r *replState) addEvent(input string) {
	form, err := parseForm(strings.Fields(input)[1:])
	if err != nil {
		fmt.Println(err)
		fmt.Println("Usage: add <date> <amount> <title> [income|cash|credit]")
		fmt.Println("Example: add 2026-01-15 1200 groceries credit")
		return
	}

	// a failed edit leaves its session open for retry; add always creates
	r.editor.Cancel()
	r.submit(form)
}

func (r *replState) cancelEdit() {
	if r.editor.Editing() == nil {
		fmt.Println("No edit in progress")
		return
	}
	r.editor.Cancel()
	fmt.Println("Edit cancelled")
}

func (r *replState) editEvent(input string) {
	parts := strings.Fields(input)
	if len(parts) < 2 {
		fmt.Println("Usage: edit <eventId> <date> <amount> <title> [income|cash|credit]")
		return
	}

	eventID := parts[1]
	target, found := lo.Find(r.store.Events(), func(ev models.Event) bool {
		return ev.EventID == eventID
	})
	if !found {
		fmt.Printf("No event with id %s in the current view\n", eventID)
		return
	}

	form, err := parseForm(parts[2:])
	if err != nil {
		fmt.Println(err)
		fmt.Println("Usage: edit <eventId> <date> <amount> <title> [income|cash|credit]")
		return
	}

	r.editor.BeginEdit(target)
	r.submit(form)
}

func (r *replState) submit(form services.FormPayload) {
	err := r.editor.Submit(context.Background(), form)
	switch {
	case errors.Is(err, services.ErrNoUserSelected):
		fmt.Println("Events belong to one user. Switch with 'user shin' or 'user saya' first.")
	case errors.Is(err, services.ErrSubmitInFlight):
		fmt.Println("Still submitting the previous change, try again in a moment.")
	case err != nil:
		fmt.Println("Submit failed; the edit is still open. Retry or cancel.")
	default:
		r.listEvents()
	}
}

func (r *replState) removeEvent(input string) {
	parts := strings.Fields(input)
	if len(parts) < 2 {
		fmt.Println("Usage: remove <eventId>")
		return
	}

	eventID := parts[1]
	target, found := lo.Find(r.store.Events(), func(ev models.Event) bool {
		return ev.EventID == eventID
	})
	if !found {
		fmt.Printf("No event with id %s in the current view\n", eventID)
		return
	}

	if err := r.editor.Delete(context.Background(), target); err != nil {
		fmt.Println("Delete failed, the event is unchanged.")
		return
	}
	r.listEvents()
}

// parseForm turns "<date> <amount> <title words...> [income|cash|credit]"
// into a form payload. The trailing kind token defaults to cash.
func parseForm(args []string) (services.FormPayload, error) {
	if len(args) < 3 {
		return services.FormPayload{}, fmt.Errorf("expected at least a date, an amount and a title")
	}

	date := args[0]
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return services.FormPayload{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", date)
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount < 1 {
		return services.FormPayload{}, fmt.Errorf("invalid amount %q, expected a positive integer", args[1])
	}

	form := services.FormPayload{
		Date:        date,
		Amount:      amount,
		PaymentType: models.PaymentCash,
	}

	titleWords := args[2:]
	switch strings.ToLower(args[len(args)-1]) {
	case "income":
		form.IsIncome = true
		titleWords = args[2 : len(args)-1]
	case "credit":
		form.PaymentType = models.PaymentCredit
		titleWords = args[2 : len(args)-1]
	case "cash":
		titleWords = args[2 : len(args)-1]
	}

	if len(titleWords) == 0 {
		return services.FormPayload{}, fmt.Errorf("missing title")
	}
	form.Title = strings.Join(titleWords, " ")
	return form, nil
}
