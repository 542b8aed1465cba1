package ui

import (
	"image"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"cardlab/internal/card"
	"cardlab/internal/imaging"
)

// Step is one station of the wizard. The flow is linear; backward
// navigation is allowed only to steps already completed.
type Step int

const (
	StepUpload Step = iota
	StepCrop
	StepColor
	StepGenerate
)

// String returns the display name of the step.
func (s Step) String() string {
	switch s {
	case StepUpload:
		return "Upload"
	case StepCrop:
		return "Crop"
	case StepColor:
		return "Color"
	case StepGenerate:
		return "Generate"
	default:
		return "Unknown"
	}
}

// GenPhase tracks where the generation step currently is. The saga's
// record status covers the protocol; this covers what the screen shows.
type GenPhase int

const (
	PhaseInitiating GenPhase = iota
	PhaseFinalizing
	PhaseFailed
	PhaseNote
	PhaseAnnotating
	PhaseComplete
)

// UploadState holds the file picker for the source photo.
type UploadState struct {
	picker     filepicker.Model
	loading    bool
	pickedPath string
	errMsg     string
}

// CropState holds the decoded source and the chosen crop region.
type CropState struct {
	sourcePath  string
	source      image.Image
	format      string
	regions     []imaging.Region
	regionIndex int
	cropping    bool
	cropped     []byte // PNG bytes of the applied crop, nil until produced
	errMsg      string
}

// ColorState holds the palette selection and the card's display name.
// chosen stays false while the default highlight merely rests on a swatch:
// generating requires an intentional pick.
type ColorState struct {
	palette     []card.PaletteEntry
	cursor      int
	chosen      bool
	chosenColor card.ColorValue
	nameInput   textinput.Model
	customInput textinput.Model
	naming      bool
	customizing bool
	errMsg      string
}

// GenerateState holds everything for one generation attempt: the saga, the
// simulated progress, the narration, and the annotate/result sub-screens.
type GenerateState struct {
	saga      *card.Saga
	phase     GenPhase
	progress  ProgressState
	bar       progress.Model
	narration NarrationState
	script    []string
	spinner   spinner.Model

	errMsg string // finalize failure, shown with the retry action

	noteInput   textinput.Model
	noteErr     string
	annotateErr string

	// The note submitted with the in-flight annotate call, committed to
	// the record only once the backend confirms it.
	pendingNote     string
	pendingWithNote bool

	face              card.Face
	orientation       card.Orientation
	manualOrientation bool
	downloadNotice    string
	downloading       bool
}

// KeyMap defines the key bindings for the wizard.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Generate key.Binding
	Retry    key.Binding
	Clear    key.Binding
	Custom   key.Binding
	Name     key.Binding
	Flip     key.Binding
	Orient   key.Binding
	Download key.Binding
	NewCard  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear crop"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom color"),
		),
		Name: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "card title"),
		),
		Flip: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flip card"),
		),
		Orient: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "orientation"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		NewCard: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new card"),
		),
	}
}
