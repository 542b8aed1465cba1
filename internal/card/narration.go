package card

import (
	"fmt"
	"time"
)

// NarrationScript is the fixed set of lines revealed while a card renders.
// Pure theater: the lines have no relationship to real backend progress.
func NarrationScript() []string {
	return []string{
		"Warming up the print workshop...",
		"Mixing your color into the ink...",
		"Laying your photo onto the press...",
		"Trimming the edges by hand...",
		"Letting the first layer dry...",
		"Polishing the finish...",
	}
}

// NoteMaxRunes bounds the personal note on the card back. Enforced
// client-side before any annotate call is made.
const NoteMaxRunes = 140

// ValidateNote checks the note length bound.
func ValidateNote(note string) error {
	if n := len([]rune(note)); n > NoteMaxRunes {
		return fmt.Errorf("card: note is %d characters, the limit is %d", n, NoteMaxRunes)
	}
	return nil
}

// DownloadFilename derives the local filename for a downloaded asset:
// orientation, color hex without the hash, and a timestamp.
func DownloadFilename(o Orientation, color ColorValue, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d.png", o, color.HexDigits(), now.Unix())
}
