package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cardlab/internal/card"
	"cardlab/internal/logging"
)

// Update handles all incoming messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The terminal shape is the device class; re-derive the preferred
		// orientation unless the user has overridden it.
		if m.gen != nil && !m.gen.manualOrientation {
			m.gen.orientation = card.ResolveOrientation(m.deviceClass(), m.gen.face, m.gen.saga.Record().Assets)
		}
		return m, nil

	case sourceLoadedMsg:
		if m.upload == nil || !m.upload.loading {
			return m, nil
		}
		m.upload.loading = false
		if msg.err != nil {
			logging.Error("failed to load source photo %s: %v", msg.path, msg.err)
			m.upload.errMsg = "Couldn't read that photo. Pick another file."
			return m, nil
		}
		logging.Info("source photo loaded: %s (%s)", msg.path, msg.format)
		m = m.enterCrop(msg.path, msg.img, msg.format)
		return m, nil

	case cropDoneMsg:
		if m.crop == nil || !m.crop.cropping {
			return m, nil
		}
		m.crop.cropping = false
		if msg.err != nil {
			logging.Error("crop failed: %v", msg.err)
			m.crop.errMsg = "Couldn't crop the photo. Try a different region."
			return m, nil
		}
		m = m.enterColor(msg.data)
		return m, nil

	case initiateDoneMsg:
		if !m.matchesAttempt(msg.token) {
			logging.Debug("dropping stale initiate result: token=%s", msg.token)
			return m, nil
		}
		if msg.err != nil {
			// Initiate failure aborts the attempt outright: back to the
			// color step, full manual resubmission required.
			logging.Error("initiate failed: %v", msg.err)
			detail := userMessage(msg.err)
			m = m.settleGeneration()
			m.gen.saga.Fail()
			m.gen = nil
			m.step = StepColor
			m.color.errMsg = detail
			return m, nil
		}
		if err := m.gen.saga.CommitInitiate(msg.result); err != nil {
			logging.Error("commit initiate: %v", err)
			m = m.settleGeneration()
			m.gen.phase = PhaseFailed
			m.gen.errMsg = "Something went wrong starting your card."
			return m, nil
		}
		logging.Info("initiated: remote_id=%d extended_id=%q", msg.result.RemoteID, msg.result.ExtendedID)
		m.gen.phase = PhaseFinalizing
		return m, m.runFinalize(m.gen.saga, m.crop.cropped)

	case finalizeDoneMsg:
		if !m.matchesAttempt(msg.token) {
			logging.Debug("dropping stale finalize result: token=%s", msg.token)
			return m, nil
		}
		m = m.settleGeneration()
		if msg.err != nil {
			// Finalize failure keeps the wizard here with a retry action.
			// Retry restarts the whole saga from initiate.
			logging.Error("finalize failed: %v", msg.err)
			m.gen.saga.Fail()
			m.gen.phase = PhaseFailed
			m.gen.errMsg = userMessage(msg.err)
			return m, nil
		}
		if err := m.gen.saga.CommitFinalize(msg.result); err != nil {
			logging.Error("commit finalize: %v", err)
			m.gen.phase = PhaseFailed
			m.gen.errMsg = "Something went wrong finishing your card."
			return m, nil
		}
		logging.Info("finalized: remote_id=%d", m.gen.saga.Record().RemoteID)
		m.furthest = StepGenerate
		m.gen.phase = PhaseNote
		m.gen.manualOrientation = false
		m.gen.orientation = card.ResolveOrientation(m.deviceClass(), card.FaceFront, m.gen.saga.Record().Assets)
		m.gen.noteInput.Focus()
		return m, tea.Batch(m.saveHistoryIfPossible(), textinput.Blink)

	case annotateDoneMsg:
		if !m.matchesAttempt(msg.token) {
			logging.Debug("dropping stale annotate result: token=%s", msg.token)
			return m, nil
		}
		if msg.err != nil {
			// The finalized front assets survive; the user stays on the
			// note form with retry-or-skip.
			logging.Error("annotate failed: %v", msg.err)
			m.gen.phase = PhaseNote
			m.gen.annotateErr = userMessage(msg.err)
			m.gen.noteInput.Focus()
			return m, nil
		}
		if err := m.gen.saga.CommitAnnotate(msg.result, m.gen.pendingNote, m.gen.pendingWithNote); err != nil {
			logging.Error("commit annotate: %v", err)
			m.gen.phase = PhaseNote
			m.gen.annotateErr = "Something went wrong printing the back."
			return m, nil
		}
		logging.Info("annotated: remote_id=%d has_note=%t", m.gen.saga.Record().RemoteID, msg.result.HasNote)
		m.gen.phase = PhaseComplete
		m.gen.face = card.FaceBack
		if !m.gen.manualOrientation {
			m.gen.orientation = card.ResolveOrientation(m.deviceClass(), m.gen.face, m.gen.saga.Record().Assets)
		}
		return m, m.saveHistoryIfPossible()

	case progressTickMsg:
		if !m.matchesAttempt(msg.token) || !m.gen.progress.Running {
			return m, nil
		}
		m.gen.progress = m.gen.progress.Advance()
		if m.gen.progress.Running && !m.gen.progress.Exhausted() {
			return m, progressTick(msg.token)
		}
		return m, nil

	case narrationTickMsg:
		if !m.matchesAttempt(msg.token) || !m.gen.narration.Running {
			return m, nil
		}
		m.gen.narration = m.gen.narration.Advance(m.gen.script)
		if m.gen.narration.Running {
			return m, narrationTick(msg.token)
		}
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			// History is a convenience; a failed save never disturbs the wizard.
			logging.Warn("history save failed: %v", msg.err)
		}
		return m, nil

	case downloadDoneMsg:
		if !m.matchesAttempt(msg.token) {
			return m, nil
		}
		m.gen.downloading = false
		if msg.err != nil {
			logging.Error("download failed: %v", msg.err)
			m.gen.downloadNotice = "Download failed: " + userMessage(msg.err)
			return m, nil
		}
		m.gen.downloadNotice = "Saved to " + msg.path
		return m, nil

	case spinner.TickMsg:
		if m.gen != nil {
			switch m.gen.phase {
			case PhaseInitiating, PhaseFinalizing, PhaseAnnotating:
				var cmd tea.Cmd
				m.gen.spinner, cmd = m.gen.spinner.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.step {
		case StepUpload:
			return m.handleUploadKeys(keyMsg)
		case StepCrop:
			return m.handleCropKeys(keyMsg)
		case StepColor:
			return m.handleColorKeys(keyMsg)
		case StepGenerate:
			return m.handleGenerateKeys(keyMsg)
		}
	}

	// Non-key messages the file picker needs (directory reads and such).
	if m.step == StepUpload && m.upload != nil {
		var cmd tea.Cmd
		m.upload.picker, cmd = m.upload.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current step
func (m Model) View() string {
	switch m.step {
	case StepUpload:
		return m.uploadView()
	case StepCrop:
		return m.cropView()
	case StepColor:
		return m.colorView()
	case StepGenerate:
		return m.generateView()
	default:
		return m.uploadView()
	}
}
