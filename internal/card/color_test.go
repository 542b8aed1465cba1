package card

import (
	"strings"
	"testing"
	"time"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ColorValue
		wantErr bool
	}{
		{"with hash", "#1700FE", "#1700FE", false},
		{"without hash", "1700fe", "#1700FE", false},
		{"lowercase normalized", "#e2492f", "#E2492F", false},
		{"surrounding whitespace", "  #2F9E44 ", "#2F9E44", false},
		{"too short", "#1700F", "", true},
		{"too long", "#1700FEA", "", true},
		{"not hex", "#GGGGGG", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexDigits(t *testing.T) {
	if got := ColorValue("#1700FE").HexDigits(); got != "1700FE" {
		t.Errorf("HexDigits = %q", got)
	}
}

func TestPaletteLeadsWithMidnight(t *testing.T) {
	palette := Palette()
	if len(palette) == 0 {
		t.Fatal("palette is empty")
	}
	if palette[0].Name != "Midnight" || palette[0].Value != "#1700FE" {
		t.Errorf("first preset = %+v", palette[0])
	}
	for _, entry := range palette {
		if _, err := ParseColor(string(entry.Value)); err != nil {
			t.Errorf("preset %s carries an invalid value %q", entry.Name, entry.Value)
		}
	}
}

func TestValidateNote(t *testing.T) {
	if err := ValidateNote(strings.Repeat("a", NoteMaxRunes)); err != nil {
		t.Errorf("a note at the limit must pass: %v", err)
	}
	if err := ValidateNote(strings.Repeat("a", NoteMaxRunes+1)); err == nil {
		t.Error("a note over the limit must fail")
	}
	// The limit counts runes, not bytes.
	if err := ValidateNote(strings.Repeat("ü", NoteMaxRunes)); err != nil {
		t.Errorf("multibyte note at the rune limit must pass: %v", err)
	}
}

func TestDownloadFilename(t *testing.T) {
	at := time.Unix(1756400000, 0)
	got := DownloadFilename(Vertical, "#1700FE", at)
	if got != "vertical-1700FE-1756400000.png" {
		t.Errorf("DownloadFilename = %q", got)
	}
}
