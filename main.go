package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cardlab/internal/cli"
	"cardlab/internal/config"
	"cardlab/internal/history"
	"cardlab/internal/logging"
	"cardlab/internal/render"
	"cardlab/internal/ui"
)

// Version information - injected at build time for releases
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	var showHelp = flag.Bool("help", false, "Show help message")
	var showVersion = flag.Bool("version", false, "Show version information")
	flag.Parse()

	logging.Info("cardlab %s started, args: %v", version, os.Args)

	if *showVersion {
		fmt.Printf("cardlab version %s\n", version)
		if commit != "unknown" {
			fmt.Printf("commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("built: %s\n", date)
		}
		return
	}

	cfg, err := config.NewManager().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Anything beyond flags is a CLI command
	cliArgs := splitCLIArgs(os.Args[1:])

	if *showHelp {
		cli.PrintUsage()
		return
	}

	if len(cliArgs) > 0 {
		c := cli.NewCLI(cfg)
		if err := c.ParseAndExecute(append([]string{os.Args[0]}, cliArgs...)); err != nil {
			logging.Error("CLI command failed: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runWizard(cfg)
}

// splitCLIArgs finds the CLI command among the arguments. Leading program
// flags are skipped; from the first non-flag argument onward everything is
// passed through untouched so subcommand flags reach their FlagSet.
func splitCLIArgs(args []string) []string {
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return args[i:]
		}
	}
	return nil
}

// runWizard launches the interactive card wizard.
func runWizard(cfg *config.Config) {
	// Without a key the wizard still opens; the color step blocks
	// generation with a configuration error instead.
	var backend ui.Backend
	if cfg.Validate() == nil {
		client, err := render.NewClient(render.Options{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			logging.Error("failed to build render client: %v", err)
		} else {
			backend = client
		}
	} else {
		logging.Warn("no API key configured; generation will be blocked")
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		// History is a convenience; the wizard works without it.
		logging.Warn("history store unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	model := ui.NewModel(cfg, backend, store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("TUI crashed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
