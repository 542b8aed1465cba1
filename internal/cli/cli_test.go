package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cardlab/internal/card"
	"cardlab/internal/config"
	"cardlab/internal/history"
	"cardlab/internal/render"
)

func testCLI(t *testing.T, baseURL string) *CLI {
	t.Helper()
	return NewCLI(&config.Config{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		DownloadDir: t.TempDir(),
		HistoryPath: filepath.Join(t.TempDir(), "history.db"),
	})
}

func TestUnknownCommand(t *testing.T) {
	c := testCLI(t, "https://backend.test")
	err := c.ParseAndExecute([]string{"cardlab", "frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v", err)
	}
	if err := c.ParseAndExecute([]string{"cardlab"}); err == nil {
		t.Error("missing command must be an error")
	}
}

func TestDispatchForwardsSubcommandFlags(t *testing.T) {
	c := testCLI(t, "https://backend.test")
	// The flag must reach the subcommand's FlagSet through dispatch.
	err := c.ParseAndExecute([]string{"cardlab", "download", "000000042 FE F", "-face", "sideways"})
	if err == nil || !strings.Contains(err.Error(), "invalid -face") {
		t.Errorf("err = %v", err)
	}
}

func TestDownloadValidatesFaceBeforeNetwork(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := testCLI(t, srv.URL)
	err := c.downloadCommand([]string{"000000042 FE F", "-face", "sideways"})
	if err == nil || !strings.Contains(err.Error(), "invalid -face") {
		t.Errorf("err = %v", err)
	}
	if called {
		t.Error("an invalid flag must fail before any request is made")
	}
}

func TestDownloadFetchesResolvedAsset(t *testing.T) {
	payload := []byte("png bytes")
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/retrieve/"):
			json.NewEncoder(w).Encode(render.Record{
				RemoteID:           42,
				ExtendedID:         "000000042 FE F",
				ColorValue:         "#1700FE",
				DisplayName:        "Test Card",
				FrontHorizontalURL: srv.URL + "/assets/front-h.png",
			})
		case r.URL.Path == "/assets/front-h.png":
			w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := testCLI(t, srv.URL)
	if err := c.downloadCommand([]string{"000000042 FE F"}); err != nil {
		t.Fatalf("download: %v", err)
	}

	files, err := os.ReadDir(c.cfg.DownloadDir)
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one downloaded file, got %v (%v)", files, err)
	}
	name := files[0].Name()
	if !strings.HasPrefix(name, "horizontal-1700FE-") || !strings.HasSuffix(name, ".png") {
		t.Errorf("derived filename = %q", name)
	}
	data, _ := os.ReadFile(filepath.Join(c.cfg.DownloadDir, name))
	if string(data) != string(payload) {
		t.Error("downloaded bytes do not match")
	}
}

func TestDownloadRejectsMissingVariant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(render.Record{
			RemoteID:           42,
			ExtendedID:         "000000042 FE F",
			ColorValue:         "#1700FE",
			FrontHorizontalURL: "https://assets.test/h.png",
		})
	}))
	defer srv.Close()

	c := testCLI(t, srv.URL)
	// Only the horizontal front exists; asking for vertical must fail
	// without attempting a download.
	err := c.downloadCommand([]string{"000000042 FE F", "-orientation", "v"})
	if err == nil || !strings.Contains(err.Error(), "no front vertical asset") {
		t.Errorf("err = %v", err)
	}
}

func TestCommandsRequireAPIKey(t *testing.T) {
	c := NewCLI(&config.Config{BaseURL: "https://backend.test", Timeout: time.Second})
	if err := c.viewCommand([]string{"000000042 FE F"}); err == nil {
		t.Error("view without an API key must fail")
	}
	if err := c.downloadCommand([]string{"000000042 FE F"}); err == nil {
		t.Error("download without an API key must fail")
	}
}

func TestHistoryCommandReadsLocalStore(t *testing.T) {
	c := testCLI(t, "https://backend.test")

	// history must work without credentials: it never touches the network.
	c.cfg.APIKey = ""

	store, err := history.Open(c.cfg.HistoryPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	rec := card.NewGenerationRecord("#1700FE", "Stored Card")
	if err := rec.Adopt(42, "000000042 FE F"); err != nil {
		t.Fatal(err)
	}
	rec.Status = card.StatusFinalized
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.Close()

	if err := c.historyCommand([]string{"-n", "5"}); err != nil {
		t.Fatalf("history: %v", err)
	}
}
