package ui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cardlab/internal/card"
	"cardlab/internal/config"
	"cardlab/internal/logging"
)

// handleUploadKeys handles keyboard input on the upload step. Most keys
// belong to the file picker.
func (m Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.upload == nil {
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		logging.Info("user quit from upload step")
		return m, tea.Quit
	}
	if m.upload.loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.upload.picker, cmd = m.upload.picker.Update(msg)

	if didSelect, path := m.upload.picker.DidSelectFile(msg); didSelect {
		logging.Info("source photo picked: %s", path)
		m.upload.loading = true
		m.upload.pickedPath = path
		m.upload.errMsg = ""
		return m, tea.Batch(cmd, m.loadSource(path))
	}
	if didSelect, path := m.upload.picker.DidSelectDisabledFile(msg); didSelect {
		m.upload.errMsg = path + " is not a supported image"
	}
	return m, cmd
}

// handleCropKeys handles keyboard input on the crop step.
func (m Model) handleCropKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.crop == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logging.Info("user quit from crop step")
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.navigateBack(), nil
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if m.crop.regionIndex > 0 {
			m.crop.regionIndex--
		}
		return m, nil
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		if m.crop.regionIndex < len(m.crop.regions)-1 {
			m.crop.regionIndex++
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		// Clearing the crop makes the color step unreachable again until a
		// new crop is produced.
		m.crop.cropped = nil
		if m.furthest > StepCrop {
			m.furthest = StepCrop
		}
		m.color = nil
		m = m.invalidateGeneration()
		m.step = StepCrop
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.crop.cropping {
			return m, nil
		}
		m.crop.cropping = true
		m.crop.errMsg = ""
		// A fresh crop invalidates any prior attempt's assets.
		m = m.invalidateGeneration()
		return m, m.applyCrop()
	}
	return m, nil
}

// handleColorKeys handles keyboard input on the color step.
func (m Model) handleColorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.color == nil {
		return m, nil
	}

	if m.color.naming {
		return m.handleNameInput(msg)
	}
	if m.color.customizing {
		return m.handleCustomColorInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logging.Info("user quit from color step")
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.navigateBack(), nil
	case key.Matches(msg, m.keys.Left):
		if m.color.cursor > 0 {
			m.color.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Right):
		if m.color.cursor < len(m.color.palette)-1 {
			m.color.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		entry := m.color.palette[m.color.cursor]
		m = m.chooseColor(entry.Value)
		logging.Info("color chosen: %s (%s)", entry.Name, entry.Value)
		return m, nil
	case key.Matches(msg, m.keys.Custom):
		m.color.customizing = true
		m.color.customInput.SetValue("")
		m.color.customInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Name):
		m.color.naming = true
		m.color.nameInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Generate):
		return m.confirmGenerate()
	}
	return m, nil
}

// chooseColor marks an intentional color pick. Choosing again after a
// completed generation invalidates the old record and forces the user back
// through the generate step.
func (m Model) chooseColor(value card.ColorValue) Model {
	m.color.chosenColor = value
	m.color.chosen = true
	m.color.errMsg = ""
	m = m.invalidateGeneration()
	return m
}

func (m Model) handleNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyEnter:
		m.color.naming = false
		m.color.nameInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.color.nameInput, cmd = m.color.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleCustomColorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.color.customizing = false
		m.color.customInput.Blur()
		return m, nil
	case tea.KeyEnter:
		value, err := card.ParseColor(m.color.customInput.Value())
		if err != nil {
			m.color.errMsg = "That's not a valid hex color (try #1700FE)."
			return m, nil
		}
		m.color.customizing = false
		m.color.customInput.Blur()
		m = m.chooseColor(value)
		logging.Info("custom color chosen: %s", value)
		return m, nil
	}
	var cmd tea.Cmd
	m.color.customInput, cmd = m.color.customInput.Update(msg)
	return m, cmd
}

// confirmGenerate enforces the color step's exit guards: a crop must
// exist, a color must have been actively picked (the resting default does
// not count), and the API key must be configured before any network call.
func (m Model) confirmGenerate() (tea.Model, tea.Cmd) {
	// An intact finished attempt means neither crop nor color changed
	// since it was made (changing either drops it). Return to its result
	// instead of opening a duplicate saga for the same input.
	if m.gen != nil && (m.gen.phase == PhaseNote || m.gen.phase == PhaseComplete) {
		m.step = StepGenerate
		return m, nil
	}
	if m.crop == nil || len(m.crop.cropped) == 0 {
		m.color.errMsg = "Crop your photo before generating."
		return m, nil
	}
	if !m.color.chosen {
		m.color.errMsg = "Pick a color first. Resting on the default doesn't count."
		return m, nil
	}
	if err := m.cfg.Validate(); err != nil || m.backend == nil {
		logging.Error("generation blocked by configuration: %v", err)
		m.color.errMsg = "Generation is not configured: set " + config.EnvAPIKey + " and restart."
		return m, nil
	}
	m.color.errMsg = ""
	return m.startGeneration()
}

// handleGenerateKeys handles keyboard input on the generate step,
// dispatched by phase.
func (m Model) handleGenerateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gen == nil {
		return m, nil
	}

	switch m.gen.phase {
	case PhaseInitiating, PhaseFinalizing, PhaseAnnotating:
		// Work in flight. Reset abandons the attempt; the late response is
		// discarded by the token check.
		switch {
		case key.Matches(msg, m.keys.Quit):
			logging.Info("user quit mid-generation")
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewCard):
			return m.reset()
		}
		return m, nil

	case PhaseFailed:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Retry):
			// Retry restarts the entire saga from initiate with a
			// replacement record, never a resume from finalize.
			logging.Info("retrying generation after finalize failure")
			return m.startGeneration()
		case key.Matches(msg, m.keys.Back):
			m.step = StepColor
			return m, nil
		case key.Matches(msg, m.keys.NewCard):
			return m.reset()
		}
		return m, nil

	case PhaseNote:
		return m.handleNoteKeys(msg)

	case PhaseComplete:
		return m.handleResultKeys(msg)
	}
	return m, nil
}

// handleNoteKeys runs the annotation form: enter submits (an empty note
// requests the default back design), esc skips the phase entirely.
func (m Model) handleNoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		logging.Info("annotate skipped")
		m.gen.noteInput.Blur()
		m.gen.phase = PhaseComplete
		m.gen.annotateErr = ""
		return m, nil
	case tea.KeyEnter:
		note := m.gen.noteInput.Value()
		if err := card.ValidateNote(note); err != nil {
			m.gen.noteErr = "That note is too long: " + strconv.Itoa(card.NoteMaxRunes) + " characters at most."
			return m, nil
		}
		m.gen.noteErr = ""
		m.gen.annotateErr = ""
		m.gen.noteInput.Blur()
		m.gen.pendingNote = note
		m.gen.pendingWithNote = note != ""
		m.gen.phase = PhaseAnnotating
		return m, tea.Batch(
			m.runAnnotate(m.gen.saga, m.gen.pendingNote, m.gen.pendingWithNote),
			m.gen.spinner.Tick,
		)
	}
	var cmd tea.Cmd
	m.gen.noteInput, cmd = m.gen.noteInput.Update(msg)
	return m, cmd
}

// handleResultKeys runs the finished-card view: flip, reorient, download,
// start over.
func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec := m.gen.saga.Record()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.step = StepColor
		return m, nil
	case key.Matches(msg, m.keys.Flip):
		if m.gen.face == card.FaceFront {
			m.gen.face = card.FaceBack
		} else {
			m.gen.face = card.FaceFront
		}
		if !m.gen.manualOrientation {
			m.gen.orientation = card.ResolveOrientation(m.deviceClass(), m.gen.face, rec.Assets)
		}
		m.gen.downloadNotice = ""
		return m, nil
	case key.Matches(msg, m.keys.Orient):
		// Manual override is honored only while the other variant exists.
		other := card.Horizontal
		if m.gen.orientation == card.Horizontal {
			other = card.Vertical
		}
		if rec.Assets.URL(m.gen.face, other) != "" {
			m.gen.orientation = other
			m.gen.manualOrientation = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if m.gen.downloading {
			return m, nil
		}
		assetURL := rec.Assets.URL(m.gen.face, m.gen.orientation)
		if assetURL == "" {
			m.gen.downloadNotice = "Nothing to download for this side yet."
			return m, nil
		}
		filename := card.DownloadFilename(m.gen.orientation, card.ColorValue(rec.ColorValue), time.Now())
		m.gen.downloading = true
		m.gen.downloadNotice = "Downloading..."
		return m, m.downloadAsset(rec.LocalID, assetURL, filename)
	case key.Matches(msg, m.keys.NewCard):
		return m.reset()
	}
	return m, nil
}
