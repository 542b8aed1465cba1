package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"cardlab/internal/card"
	"cardlab/internal/imaging"
	"cardlab/internal/logging"
	"cardlab/internal/render"
)

// loadSource reads the picked photo into memory and decodes it. The wizard
// advances to the crop step only once this completes.
func (m Model) loadSource(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return sourceLoadedMsg{path: path, err: err}
		}
		img, format, err := imaging.Decode(data)
		if err != nil {
			return sourceLoadedMsg{path: path, err: err}
		}
		return sourceLoadedMsg{path: path, img: img, format: format}
	}
}

// applyCrop produces the cropped PNG for the selected region.
func (m Model) applyCrop() tea.Cmd {
	src := m.crop.source
	region := m.crop.regions[m.crop.regionIndex]
	return func() tea.Msg {
		data, err := imaging.Crop(src, region)
		return cropDoneMsg{data: data, err: err}
	}
}

// runInitiate dispatches phase one of the saga. The result message carries
// the record's token so stale attempts are discarded on arrival.
func (m Model) runInitiate(saga *card.Saga) tea.Cmd {
	token := saga.Record().LocalID
	timeout := m.cfg.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := saga.Initiate(ctx)
		return initiateDoneMsg{token: token, result: result, err: err}
	}
}

// runFinalize dispatches phase two with the cropped image bytes.
func (m Model) runFinalize(saga *card.Saga, image []byte) tea.Cmd {
	token := saga.Record().LocalID
	timeout := m.cfg.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := saga.Finalize(ctx, image)
		return finalizeDoneMsg{token: token, result: result, err: err}
	}
}

// runAnnotate dispatches the optional third phase.
func (m Model) runAnnotate(saga *card.Saga, note string, withNote bool) tea.Cmd {
	token := saga.Record().LocalID
	timeout := m.cfg.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := saga.Annotate(ctx, note, withNote)
		return annotateDoneMsg{token: token, result: result, err: err}
	}
}

// saveHistory persists a snapshot of the record to the local store. The
// snapshot is taken on the UI loop before dispatch, so the command never
// reads live state.
func (m Model) saveHistory(snapshot card.GenerationRecord) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return historySavedMsg{err: store.Save(ctx, &snapshot)}
	}
}

// downloadAsset fetches the displayed asset into the download directory
// under its derived filename.
func (m Model) downloadAsset(token uuid.UUID, assetURL, filename string) tea.Cmd {
	backend := m.backend
	timeout := m.cfg.Timeout
	dest := filepath.Join(m.cfg.DownloadDir, filename)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := backend.DownloadAsset(ctx, assetURL, dest)
		return downloadDoneMsg{token: token, path: dest, err: err}
	}
}

// progressTick schedules the next simulated-progress tick for an attempt.
func progressTick(token uuid.UUID) tea.Cmd {
	return tea.Tick(progressTickInterval, func(time.Time) tea.Msg {
		return progressTickMsg{token: token}
	})
}

// narrationTick schedules the next narration tick for an attempt.
func narrationTick(token uuid.UUID) tea.Cmd {
	return tea.Tick(narrationTickInterval, func(time.Time) tea.Msg {
		return narrationTickMsg{token: token}
	})
}

// userMessage turns a phase failure into the text shown to the user.
// Backend detail is preferred; everything technical goes to the log.
func userMessage(err error) string {
	var apiErr *render.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsTimeout() {
			return "The card workshop took too long to answer. " + apiErr.UserMessage()
		}
		return apiErr.UserMessage()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The card workshop took too long to answer."
	}
	logging.Debug("no backend detail for error: %v", err)
	return "Something went wrong talking to the card workshop."
}

// saveHistoryIfPossible snapshots the current record for persistence.
func (m Model) saveHistoryIfPossible() tea.Cmd {
	if m.gen == nil || m.store == nil {
		return nil
	}
	return m.saveHistory(*m.gen.saga.Record())
}
