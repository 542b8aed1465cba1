package ui

import (
	"image"

	"github.com/google/uuid"

	"cardlab/internal/render"
)

// Message types for Tea commands. Every message tied to a generation
// attempt carries the record's local id; Update discards messages whose
// token no longer matches the current record, so a late response from a
// superseded attempt can never touch the wrong state.

type sourceLoadedMsg struct {
	path   string
	img    image.Image
	format string
	err    error
}

type cropDoneMsg struct {
	data []byte
	err  error
}

type initiateDoneMsg struct {
	token  uuid.UUID
	result render.InitiateResult
	err    error
}

type finalizeDoneMsg struct {
	token  uuid.UUID
	result render.FinalizeResult
	err    error
}

type annotateDoneMsg struct {
	token  uuid.UUID
	result render.AnnotateResult
	err    error
}

type progressTickMsg struct {
	token uuid.UUID
}

type narrationTickMsg struct {
	token uuid.UUID
}

type historySavedMsg struct {
	err error
}

type downloadDoneMsg struct {
	token uuid.UUID
	path  string
	err   error
}
