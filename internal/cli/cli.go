// Package cli implements cardlab's non-interactive commands: everything
// for looking at cards that already exist. Making new ones is the TUI's job.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"cardlab/internal/card"
	"cardlab/internal/config"
	"cardlab/internal/history"
	"cardlab/internal/logging"
	"cardlab/internal/output"
	"cardlab/internal/render"
)

// CLI handles command-line operations
type CLI struct {
	cfg *config.Config
}

// NewCLI creates a new CLI instance
func NewCLI(cfg *config.Config) *CLI {
	return &CLI{cfg: cfg}
}

// ParseAndExecute parses command line arguments and executes the
// appropriate command
func (c *CLI) ParseAndExecute(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("no command provided")
	}

	command := args[1]
	logging.Info("CLI command: %s, args: %v", command, args[2:])

	switch command {
	case "view":
		return c.viewCommand(args[2:])
	case "history":
		return c.historyCommand(args[2:])
	case "download":
		return c.downloadCommand(args[2:])
	case "help":
		PrintUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s (try 'cardlab help')", command)
	}
}

// PrintUsage prints the command overview.
func PrintUsage() {
	output.Header("cardlab - turn a photo and a color into a shareable card")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cardlab                                 launch the card wizard")
	fmt.Println("  cardlab view <extended-id>              show a generated card")
	fmt.Println("  cardlab history [-n N]                  list cards generated on this machine")
	fmt.Println("  cardlab download <extended-id> [flags]  download a card asset")
	fmt.Println("  cardlab help                            show this help")
	fmt.Println()
	fmt.Println("Download flags:")
	fmt.Println("  -face front|back          which side to download (default front)")
	fmt.Println("  -orientation auto|h|v     which variant to download (default auto)")
}

func (c *CLI) client() (*render.Client, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return render.NewClient(render.Options{
		APIKey:  c.cfg.APIKey,
		BaseURL: c.cfg.BaseURL,
		Timeout: c.cfg.Timeout,
	})
}

// viewCommand fetches a card by its extended id and prints it.
func (c *CLI) viewCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cardlab view <extended-id>")
	}
	extendedID := args[0]

	client, err := c.client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	rec, err := client.Retrieve(ctx, extendedID)
	if err != nil {
		var apiErr *render.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("couldn't fetch card %q: %s", extendedID, apiErr.UserMessage())
		}
		return err
	}

	output.Header(rec.DisplayName)
	output.KeyValue("Share ID", rec.ExtendedID)
	output.KeyValue("Color", rec.ColorValue)
	output.KeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	printAssetLine("Front (horizontal)", rec.FrontHorizontalURL)
	printAssetLine("Front (vertical)", rec.FrontVerticalURL)
	printAssetLine("Back (horizontal)", rec.BackHorizontalURL)
	printAssetLine("Back (vertical)", rec.BackVerticalURL)
	if rec.HasNote && rec.NoteText != "" {
		output.KeyValue("Note", rec.NoteText)
	}
	return nil
}

func printAssetLine(label, url string) {
	if url == "" {
		output.KeyValue(label, "not rendered")
		return
	}
	output.KeyValue(label, url)
}

// historyCommand lists cards generated locally, newest first.
func (c *CLI) historyCommand(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("n", 20, "number of cards to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := history.Open(c.cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := store.List(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		output.Info("No cards yet. Run 'cardlab' to make one.")
		return nil
	}

	output.Header(fmt.Sprintf("Cards (%d)", len(entries)))
	for _, entry := range entries {
		detail := fmt.Sprintf("%s · %s · %s · %s",
			entry.ExtendedID, entry.ColorValue, entry.Status,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"))
		output.Item(entry.DisplayName, detail)
	}
	return nil
}

// downloadCommand fetches a card's asset and writes it to the download
// directory under the derived filename.
func (c *CLI) downloadCommand(args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	faceFlag := fs.String("face", "front", "which side to download: front or back")
	orientFlag := fs.String("orientation", "auto", "which variant: auto, h or v")

	// The extended id comes first, flags after.
	if len(args) < 1 {
		return fmt.Errorf("usage: cardlab download <extended-id> [-face front|back] [-orientation auto|h|v]")
	}
	extendedID := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	face := card.FaceFront
	switch *faceFlag {
	case "front":
	case "back":
		face = card.FaceBack
	default:
		return fmt.Errorf("invalid -face %q: must be front or back", *faceFlag)
	}

	client, err := c.client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	rec, err := client.Retrieve(ctx, extendedID)
	if err != nil {
		return err
	}

	assets := card.AssetSet{
		FrontHorizontal: rec.FrontHorizontalURL,
		FrontVertical:   rec.FrontVerticalURL,
		BackHorizontal:  rec.BackHorizontalURL,
		BackVertical:    rec.BackVerticalURL,
	}

	var orientation card.Orientation
	switch *orientFlag {
	case "auto":
		orientation = card.ResolveOrientation(card.DeviceDesktop, face, assets)
	case "h":
		orientation = card.Horizontal
	case "v":
		orientation = card.Vertical
	default:
		return fmt.Errorf("invalid -orientation %q: must be auto, h or v", *orientFlag)
	}
	if orientation == card.OrientationNone {
		return fmt.Errorf("card %q has no %s assets to download", extendedID, face)
	}

	assetURL := assets.URL(face, orientation)
	if assetURL == "" {
		return fmt.Errorf("card %q has no %s %s asset", extendedID, face, orientation)
	}

	color, err := card.ParseColor(rec.ColorValue)
	if err != nil {
		return fmt.Errorf("card %q carries an invalid color %q: %w", extendedID, rec.ColorValue, err)
	}

	dest := filepath.Join(c.cfg.DownloadDir, card.DownloadFilename(orientation, color, time.Now()))
	if err := client.DownloadAsset(ctx, assetURL, dest); err != nil {
		return err
	}

	output.Success("Saved " + dest)
	return nil
}
