package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shinsaya/kakeibo-cli/pkg/config"
	"github.com/shinsaya/kakeibo-cli/pkg/http"
	"github.com/shinsaya/kakeibo-cli/pkg/services"
	"github.com/shinsaya/kakeibo-cli/pkg/state"
)

var rootCmd *cobra.Command

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env complements config.yaml; both are optional at startup
	_ = godotenv.Load()

	if err := config.InitGlobalConfig("config.yaml"); err != nil {
		// Only print a warning if the file doesn't exist, as GetConfig will create it later
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("Failed to load configuration")
			log.Warn().Msg("A default configuration will be used")
		}
	}

	rootCmd = &cobra.Command{
		Use:   "kakeibo",
		Short: "A CLI client for the shared household ledger",
		Long:  `A CLI client that browses and edits the shared household ledger, one month at a time.`,
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Long:  `Start an interactive REPL for browsing and editing ledger events.`,
		Run: func(cmd *cobra.Command, args []string) {
			runREPL(initReplState())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long:  `Show the current configuration loaded from config.yaml.`,
		Run: func(cmd *cobra.Command, args []string) {
			showConfig()
		},
	}

	rootCmd.AddCommand(replCmd, configCmd)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

type replState struct {
	users  *state.UserState
	store  *services.EventStore
	editor *services.EventEditor
	input  *bufio.Scanner
}

// stdinConfirmer asks a yes/no question on the REPL's own input stream
type stdinConfirmer struct {
	input *bufio.Scanner
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !c.input.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.input.Text()))
	return answer == "y" || answer == "yes"
}

func initReplState() *replState {
	baseURL, err := config.GetLedgerBaseURL()
	if err != nil {
		log.Error().Err(err).Msg("Error getting ledger base URL from config")
		log.Error().Msg("Please set ledgerBaseUrl in config.yaml or LEDGER_BASE_URL in the environment")
		os.Exit(1)
	}

	input := bufio.NewScanner(os.Stdin)
	client := http.NewLedgerClient(baseURL)
	users := state.NewUserState()
	store := services.NewEventStore(client, users)
	editor := services.NewEventEditor(client, store, users, &stdinConfirmer{input: input})

	return &replState{
		users:  users,
		store:  store,
		editor: editor,
		input:  input,
	}
}

func runREPL(state *replState) {
	fmt.Println("Welcome to the kakeibo REPL!")
	fmt.Println("Type 'exit' or 'quit' to exit, 'help' for commands.")
	fmt.Println()

	state.listEvents()

	for {
		fmt.Print("> ")

		if !state.input.Scan() {
			break
		}

		line := state.input.Text()
		trimmedLine := strings.TrimSpace(line)

		if trimmedLine == "" {
			continue
		}

		if trimmedLine == "exit" || trimmedLine == "quit" {
			break
		}

		if trimmedLine == "help" {
			printHelp()
			continue
		}

		if trimmedLine == "config" {
			showConfig()
			continue
		}

		if trimmedLine == "list" || trimmedLine == "l" {
			state.listEvents()
			continue
		}

		if trimmedLine == "next" || trimmedLine == "n" {
			state.shiftMonth(state.store.NextMonth)
			continue
		}

		if trimmedLine == "prev" || trimmedLine == "p" {
			state.shiftMonth(state.store.PrevMonth)
			continue
		}

		if strings.HasPrefix(trimmedLine, "month") {
			state.gotoMonth(trimmedLine)
			continue
		}

		if strings.HasPrefix(trimmedLine, "user") {
			state.changeUser(trimmedLine)
			continue
		}

		if strings.HasPrefix(trimmedLine, "add") {
			state.addEvent(trimmedLine)
			continue
		}

		if strings.HasPrefix(trimmedLine, "edit") {
			state.editEvent(trimmedLine)
			continue
		}

		if trimmedLine == "cancel" {
			state.cancelEdit()
			continue
		}

		if strings.HasPrefix(trimmedLine, "remove") || strings.HasPrefix(trimmedLine, "delete") {
			state.removeEvent(trimmedLine)
			continue
		}

		fmt.Println("Unknown command. Type 'help' for the command list.")
	}

	if err := state.input.Err(); err != nil {
		log.Error().Err(err).Msg("Error reading input")
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  list                                          - Show the current month's events and totals")
	fmt.Println("  next / prev                                   - Move one month forward / back")
	fmt.Println("  month <YYYYMM>                                - Jump to a month")
	fmt.Println("  user <shin|saya|both>                         - Switch the user view")
	fmt.Println("  add <date> <amount> <title> [income|cash|credit]")
	fmt.Println("                                                - Add an event (date as yyyy-MM-dd)")
	fmt.Println("  edit <eventId> <date> <amount> <title> [income|cash|credit]")
	fmt.Println("                                                - Edit an event")
	fmt.Println("  cancel                                        - Abandon a failed edit")
	fmt.Println("  remove <eventId>                              - Delete an event (asks first)")
	fmt.Println("  config                                        - Show the current configuration")
	fmt.Println("  exit / quit                                   - Leave the REPL")
}

func showConfig() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Error().Err(err).Msg("Error loading configuration")
		return
	}

	fmt.Println("Current configuration:")
	if cfg.LedgerBaseURL == "" {
		fmt.Println("  ledgerBaseUrl: (not set)")
	} else {
		fmt.Printf("  ledgerBaseUrl: %s\n", cfg.LedgerBaseURL)
	}
	if fromEnv := os.Getenv("LEDGER_BASE_URL"); fromEnv != "" {
		fmt.Printf("  LEDGER_BASE_URL (env override): %s\n", fromEnv)
	}
}
