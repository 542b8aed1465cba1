// Package output provides styled terminal output for the non-TUI commands
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Symbols for message prefixes
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolInfo    = "○"
	SymbolHint    = "↳"
	SymbolCard    = "▣"
)

var (
	colorSuccess = lipgloss.Color("#22c55e")
	colorError   = lipgloss.Color("#ef4444")
	colorCyan    = lipgloss.Color("#06b6d4")
	colorDim     = lipgloss.Color("#6b7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	infoStyle    = lipgloss.NewStyle().Foreground(colorDim)
	hintStyle    = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// Success prints a success message with a green checkmark
func Success(message string) {
	fmt.Println(successStyle.Render(SymbolSuccess) + " " + message)
}

// Error prints an error message with a red cross
func Error(message string) {
	fmt.Println(errorStyle.Render(SymbolError) + " " + message)
}

// Info prints a neutral informational message
func Info(message string) {
	fmt.Println(infoStyle.Render(SymbolInfo) + " " + message)
}

// Hint prints a dimmed follow-up hint
func Hint(message string) {
	fmt.Println("  " + hintStyle.Render(SymbolHint+" "+message))
}

// Header prints a section header
func Header(title string) {
	fmt.Println(headerStyle.Render(title))
}

// KeyValue prints an aligned "key: value" detail line
func KeyValue(key, value string) {
	fmt.Printf("  %s %s\n", dimStyle.Render(key+":"), value)
}

// Item prints a list row with a leading symbol and bold label
func Item(label, detail string) {
	fmt.Println("  " + boldStyle.Render(SymbolCard+" "+label) + " " + dimStyle.Render(detail))
}
