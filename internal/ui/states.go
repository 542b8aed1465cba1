package ui

import (
	"context"
	"image"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"cardlab/internal/card"
	"cardlab/internal/config"
	"cardlab/internal/history"
	"cardlab/internal/imaging"
	"cardlab/internal/logging"
)

// Backend is the rendering backend as the wizard sees it: the three saga
// phases plus asset download. internal/render.Client satisfies it.
type Backend interface {
	card.Renderer
	DownloadAsset(ctx context.Context, assetURL, destPath string) error
}

// Terminals narrower than this behave like a portrait display, so the
// vertical card variant is preferred.
const mobileWidthThreshold = 96

// Model holds the entire wizard state.
type Model struct {
	cfg     *config.Config
	backend Backend
	store   *history.Store

	keys   KeyMap
	width  int
	height int

	step     Step
	furthest Step

	upload *UploadState
	crop   *CropState
	color  *ColorState
	gen    *GenerateState
}

// NewModel creates a new wizard model with the given dependencies. backend
// may be nil when no API key is configured; the color step then blocks
// generation with a configuration error instead of attempting the network.
func NewModel(cfg *config.Config, backend Backend, store *history.Store) Model {
	return Model{
		cfg:      cfg,
		backend:  backend,
		store:    store,
		keys:     DefaultKeyMap(),
		step:     StepUpload,
		furthest: StepUpload,
		upload:   newUploadState(),
	}
}

// Init initializes the model when the program starts.
func (m Model) Init() tea.Cmd {
	return m.upload.picker.Init()
}

func newUploadState() *UploadState {
	picker := filepicker.New()
	picker.AllowedTypes = []string{".jpg", ".jpeg", ".png", ".gif"}
	picker.Height = 12
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}
	return &UploadState{picker: picker}
}

// enterCrop moves to the crop step after the source photo has been read.
// A new source invalidates everything derived from the old one, so all
// downstream state is reset unconditionally.
func (m Model) enterCrop(path string, img image.Image, format string) Model {
	m.crop = &CropState{
		sourcePath: path,
		source:     img,
		format:     format,
		regions:    imaging.Regions(),
	}
	m.color = nil
	m.gen = nil
	m.step = StepCrop
	m.furthest = StepCrop
	return m
}

// enterColor moves to the color step once a crop has been produced.
func (m Model) enterColor(cropped []byte) Model {
	m.crop.cropped = cropped
	m.crop.cropping = false
	if m.color == nil {
		m.color = newColorState()
	}
	m.step = StepColor
	if m.furthest < StepColor {
		m.furthest = StepColor
	}
	return m
}

func newColorState() *ColorState {
	name := textinput.New()
	name.Placeholder = "Untitled Card"
	name.CharLimit = 60
	name.Width = 32

	custom := textinput.New()
	custom.Placeholder = "#1700FE"
	custom.CharLimit = 7
	custom.Width = 10

	return &ColorState{
		palette:     card.Palette(),
		nameInput:   name,
		customInput: custom,
	}
}

// startGeneration opens a fresh saga and kicks off the initiate phase plus
// the two UI-only timers. Called both on first entry and on retry; a retry
// always restarts the whole saga with a replacement record.
func (m Model) startGeneration() (Model, tea.Cmd) {
	name := m.color.nameInput.Value()
	if name == "" {
		name = "Untitled Card"
	}

	saga := card.NewSaga(m.backend, m.color.chosenColor, name)
	token := saga.Record().LocalID

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 44

	note := textinput.New()
	note.Placeholder = "A short note for the back of the card"
	note.CharLimit = card.NoteMaxRunes
	note.Width = 44

	m.gen = &GenerateState{
		saga:        saga,
		phase:       PhaseInitiating,
		progress:    NewProgressState(),
		bar:         bar,
		narration:   NewNarrationState(),
		script:      card.NarrationScript(),
		spinner:     sp,
		noteInput:   note,
		face:        card.FaceFront,
		orientation: card.DefaultOrientation(m.deviceClass()),
	}
	m.step = StepGenerate

	logging.Info("generation started: color=%s local_id=%s", m.color.chosenColor, token)

	return m, tea.Batch(
		m.runInitiate(saga),
		progressTick(token),
		narrationTick(token),
		m.gen.spinner.Tick,
	)
}

// settleGeneration is the single finalization step for the UI timers:
// progress is forced to exactly 100 and both schedules stop, whatever the
// real outcome was.
func (m Model) settleGeneration() Model {
	if m.gen == nil {
		return m
	}
	m.gen.progress = m.gen.progress.Settle()
	m.gen.narration = m.gen.narration.Stop()
	return m
}

// reset returns the session to the upload step, dropping the record, the
// crop, the color choice and both timers.
func (m Model) reset() (Model, tea.Cmd) {
	logging.Info("wizard reset")
	m = m.settleGeneration()
	m.gen = nil
	m.color = nil
	m.crop = nil
	m.upload = newUploadState()
	m.step = StepUpload
	m.furthest = StepUpload
	return m, m.upload.picker.Init()
}

// invalidateGeneration drops a completed or in-flight attempt because its
// inputs changed (new color, new crop). Stale results are discarded by the
// token check once the record is gone.
func (m Model) invalidateGeneration() Model {
	if m.gen == nil {
		return m
	}
	logging.Info("generation invalidated: local_id=%s", m.gen.saga.Record().LocalID)
	m = m.settleGeneration()
	m.gen = nil
	if m.furthest > StepColor {
		m.furthest = StepColor
	}
	return m
}

// navigateBack moves one step backward. Only already-completed steps are
// reachable, which a linear flow gives us for free.
func (m Model) navigateBack() Model {
	switch m.step {
	case StepCrop:
		m.step = StepUpload
	case StepColor:
		m.step = StepCrop
	case StepGenerate:
		m.step = StepColor
	}
	return m
}

// deviceClass derives the device class from the terminal shape.
func (m Model) deviceClass() card.DeviceClass {
	if m.width > 0 && m.width < mobileWidthThreshold {
		return card.DeviceMobile
	}
	return card.DeviceDesktop
}

// matchesAttempt reports whether a message token belongs to the current
// attempt. Results from superseded attempts fail this check and are
// dropped on arrival.
func (m Model) matchesAttempt(token uuid.UUID) bool {
	return m.gen != nil && m.gen.saga.Record().LocalID == token
}
