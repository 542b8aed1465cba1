// Package card holds the domain model for generated cards: the record of
// one generation attempt, the saga that drives the rendering backend
// through its phases, and the orientation resolution for display.
package card

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status tracks how far a generation attempt has progressed.
type Status int

const (
	StatusPending Status = iota
	StatusInitiated
	StatusFinalized
	StatusAnnotated
	StatusFailed
)

// String returns the persisted name for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInitiated:
		return "initiated"
	case StatusFinalized:
		return "finalized"
	case StatusAnnotated:
		return "annotated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseStatus maps a persisted status name back to its value.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "pending":
		return StatusPending, nil
	case "initiated":
		return StatusInitiated, nil
	case "finalized":
		return StatusFinalized, nil
	case "annotated":
		return StatusAnnotated, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusPending, errors.New("card: unknown status " + name)
	}
}

// AssetSet holds the up-to-four rendered asset URLs for a card.
type AssetSet struct {
	FrontHorizontal string
	FrontVertical   string
	BackHorizontal  string
	BackVertical    string
}

// URL returns the asset for a face/orientation slot, empty when absent.
func (a AssetSet) URL(face Face, o Orientation) string {
	switch {
	case face == FaceFront && o == Horizontal:
		return a.FrontHorizontal
	case face == FaceFront && o == Vertical:
		return a.FrontVertical
	case face == FaceBack && o == Horizontal:
		return a.BackHorizontal
	case face == FaceBack && o == Vertical:
		return a.BackVertical
	default:
		return ""
	}
}

// HasBack reports whether any back-side asset exists.
func (a AssetSet) HasBack() bool {
	return a.BackHorizontal != "" || a.BackVertical != ""
}

// ErrAlreadyAdopted is returned when identifiers are assigned twice.
var ErrAlreadyAdopted = errors.New("card: record already holds backend identifiers")

// GenerationRecord is one attempted artifact. Records are replaced, never
// mutated, when an attempt is retried, so a half-applied prior attempt can
// never leak into a fresh one.
type GenerationRecord struct {
	LocalID     uuid.UUID
	RemoteID    int64
	ExtendedID  string
	Status      Status
	ColorValue  string
	DisplayName string
	Assets      AssetSet
	NoteText    string
	HasNote     bool
	CreatedAt   time.Time
}

// NewGenerationRecord creates a pending record with a fresh correlation token.
func NewGenerationRecord(colorValue, displayName string) *GenerationRecord {
	return &GenerationRecord{
		LocalID:     uuid.New(),
		Status:      StatusPending,
		ColorValue:  colorValue,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
}

// Adopt assigns the backend identifiers. They are set together, exactly
// once, for the lifetime of the record.
func (r *GenerationRecord) Adopt(remoteID int64, extendedID string) error {
	if r.RemoteID != 0 || r.ExtendedID != "" {
		return ErrAlreadyAdopted
	}
	if remoteID == 0 || extendedID == "" {
		return errors.New("card: backend identifiers are incomplete")
	}
	r.RemoteID = remoteID
	r.ExtendedID = extendedID
	return nil
}
