package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cardlab/internal/card"
)

// stepTrail renders the wizard's breadcrumb header.
func (m Model) stepTrail() string {
	steps := []Step{StepUpload, StepCrop, StepColor, StepGenerate}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := s.String()
		switch {
		case s == m.step:
			parts = append(parts, StepActiveStyle.Render("● "+label))
		case s <= m.furthest:
			parts = append(parts, StepDoneStyle.Render("✓ "+label))
		default:
			parts = append(parts, StepPendingStyle.Render("○ "+label))
		}
	}
	trail := strings.Join(parts, StepPendingStyle.Render("  ›  "))
	return TitleStyle.Render("cardlab") + "   " + trail
}

func (m Model) frame(body string, help string) string {
	sections := []string{m.stepTrail(), "", body}
	if help != "" {
		sections = append(sections, "", HelpStyle.Render(help))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// uploadView renders the source photo picker
func (m Model) uploadView() string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Pick the photo for the front of your card."))
	b.WriteString("\n\n")
	if m.upload.loading {
		b.WriteString("Reading " + m.upload.pickedPath + "...")
	} else {
		b.WriteString(m.upload.picker.View())
	}
	if m.upload.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.upload.errMsg))
	}
	return m.frame(b.String(), "↑/↓ navigate · enter select · q quit")
}

// cropView renders the crop region chooser
func (m Model) cropView() string {
	var b strings.Builder
	bounds := m.crop.source.Bounds()
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(
		"%s · %dx%d %s · choose the square to keep",
		m.crop.sourcePath, bounds.Dx(), bounds.Dy(), m.crop.format,
	)))
	b.WriteString("\n\n")

	var regions []string
	for i, r := range m.crop.regions {
		label := " " + r.String() + " "
		if i == m.crop.regionIndex {
			regions = append(regions, SwatchCursorStyle.Render("▸"+label))
		} else {
			regions = append(regions, StepPendingStyle.Render(" "+label))
		}
	}
	b.WriteString(strings.Join(regions, " "))
	b.WriteString("\n\n")

	switch {
	case m.crop.cropping:
		b.WriteString("Cropping...")
	case m.crop.cropped != nil:
		b.WriteString(NoticeStyle.Render(fmt.Sprintf("✓ Crop applied (%d bytes ready to upload)", len(m.crop.cropped))))
	default:
		b.WriteString(StepPendingStyle.Render("No crop applied yet."))
	}
	if m.crop.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.crop.errMsg))
	}
	return m.frame(b.String(), "←/→ region · enter crop · x clear · esc back · q quit")
}

// colorView renders the palette and the card title input
func (m Model) colorView() string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Choose the card's color. This is the one choice that has to be yours."))
	b.WriteString("\n\n")

	var swatches []string
	for i, entry := range m.color.palette {
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(entry.Value.String())).
			Render("      ")
		name := entry.Name
		if m.color.chosen && m.color.chosenColor == entry.Value {
			name = "✓ " + name
		}
		label := StepPendingStyle.Render(name)
		if i == m.color.cursor {
			label = SwatchCursorStyle.Render(name)
		}
		swatches = append(swatches, lipgloss.JoinVertical(lipgloss.Center, block, label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(swatches, "  ")...))
	b.WriteString("\n\n")

	if m.color.chosen {
		b.WriteString(NoticeStyle.Render("Color: "+m.color.chosenColor.String()) + "\n")
	} else {
		b.WriteString(StepPendingStyle.Render("No color chosen yet.") + "\n")
	}

	title := m.color.nameInput.Value()
	if title == "" {
		title = m.color.nameInput.Placeholder
	}
	if m.color.naming {
		b.WriteString("Title: " + m.color.nameInput.View() + "\n")
	} else {
		b.WriteString("Title: " + title + "\n")
	}
	if m.color.customizing {
		b.WriteString("Custom hex: " + m.color.customInput.View() + "\n")
	}
	if m.color.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.color.errMsg))
	}
	return m.frame(b.String(), "←/→ swatch · enter choose · c custom hex · t title · g generate · esc back · q quit")
}

// generateView renders the generation step in all its phases
func (m Model) generateView() string {
	switch m.gen.phase {
	case PhaseInitiating, PhaseFinalizing:
		return m.generatingView()
	case PhaseFailed:
		return m.failedView()
	case PhaseNote:
		return m.noteView()
	case PhaseAnnotating:
		return m.annotatingView()
	default:
		return m.resultView()
	}
}

func (m Model) generatingView() string {
	var b strings.Builder
	b.WriteString(m.gen.spinner.View() + " Pressing your card...")
	b.WriteString("\n\n")
	b.WriteString(m.gen.bar.ViewAs(m.gen.progress.Percent / 100))
	b.WriteString(fmt.Sprintf("  %3.0f%%", m.gen.progress.Percent))
	b.WriteString("\n\n")
	b.WriteString(NarrationStyle.Render(m.gen.narration.Revealed(m.gen.script)))
	return m.frame(b.String(), "n start over · q quit")
}

func (m Model) failedView() string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("✗ The card couldn't be rendered."))
	b.WriteString("\n\n")
	b.WriteString(m.gen.errMsg)
	return m.frame(b.String(), "r retry · esc back to color · n start over · q quit")
}

func (m Model) noteView() string {
	var b strings.Builder
	b.WriteString(NoticeStyle.Render("✓ Front rendered."))
	b.WriteString("\n\n")
	b.WriteString("Add a note for the back, or leave it to us:\n")
	b.WriteString(m.gen.noteInput.View())
	b.WriteString(fmt.Sprintf("\n%s", SubtitleStyle.Render(
		fmt.Sprintf("%d/%d", len([]rune(m.gen.noteInput.Value())), card.NoteMaxRunes))))
	if m.gen.noteErr != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.gen.noteErr))
	}
	if m.gen.annotateErr != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.gen.annotateErr) + "\n" +
			HelpStyle.Render("enter to retry, esc to skip"))
	}
	return m.frame(b.String(), "enter print back · esc skip · empty note = default design")
}

func (m Model) annotatingView() string {
	body := m.gen.spinner.View() + " Printing the back of your card..."
	return m.frame(body, "q quit")
}

func (m Model) resultView() string {
	rec := m.gen.saga.Record()
	var b strings.Builder

	b.WriteString(m.cardPreview(rec))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s · %s side · %s\n",
		rec.DisplayName, m.gen.face, m.gen.orientation))
	b.WriteString(SubtitleStyle.Render("Share ID: "+rec.ExtendedID) + "\n")
	if !rec.Assets.HasBack() {
		b.WriteString(SubtitleStyle.Render("The back hasn't been printed for this card.") + "\n")
	}
	if m.gen.downloadNotice != "" {
		b.WriteString(NoticeStyle.Render(m.gen.downloadNotice) + "\n")
	}
	return m.frame(b.String(), "f flip · o orientation · d download · esc back · n new card · q quit")
}

// cardPreview draws a stand-in for the rendered asset: the terminal can't
// show the real image, so it shows the card's shape, color and contents.
func (m Model) cardPreview(rec *card.GenerationRecord) string {
	assetURL := rec.Assets.URL(m.gen.face, m.gen.orientation)
	if m.gen.orientation == card.OrientationNone || assetURL == "" {
		return PanelStyle.Render("This side isn't available yet.")
	}

	w, h := 40, 8
	if m.gen.orientation == card.Vertical {
		w, h = 22, 12
	}

	var content string
	if m.gen.face == card.FaceFront {
		content = rec.DisplayName
	} else if rec.HasNote && rec.NoteText != "" {
		content = rec.NoteText
	} else {
		content = "♠ cardlab"
	}

	face := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(rec.ColorValue)).
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, face, SubtitleStyle.Render(assetURL))
}

// interleave joins rendered blocks with a separator for JoinHorizontal.
func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
