package card

import (
	"context"
	"errors"
	"fmt"

	"cardlab/internal/render"
)

// Renderer is the slice of the backend client the saga needs. The concrete
// implementation lives in internal/render; tests substitute a fake.
type Renderer interface {
	Initiate(ctx context.Context, colorValue string) (render.InitiateResult, error)
	Finalize(ctx context.Context, remoteID int64, image []byte, displayName string) (render.FinalizeResult, error)
	Annotate(ctx context.Context, remoteID int64, note *string) (render.AnnotateResult, error)
}

// Saga drives one generation attempt through the backend's three phases:
// initiate, finalize, annotate. Phases are strictly ordered; each network
// call is paired with a Commit method so callers running calls off the UI
// loop apply results back on it. A retry never reuses a saga; the caller
// constructs a fresh one, replacing the record wholesale.
type Saga struct {
	renderer Renderer
	rec      *GenerationRecord
}

// NewSaga opens a new attempt for the given color with a pending record.
func NewSaga(renderer Renderer, color ColorValue, displayName string) *Saga {
	return &Saga{
		renderer: renderer,
		rec:      NewGenerationRecord(color.String(), displayName),
	}
}

// Record exposes the attempt's record. The saga retains ownership; callers
// must not mutate it outside the Commit methods.
func (s *Saga) Record() *GenerationRecord {
	return s.rec
}

// Initiate runs phase one. It does not mutate the record; pass the result
// to CommitInitiate once back on the owning loop.
func (s *Saga) Initiate(ctx context.Context) (render.InitiateResult, error) {
	if s.rec.Status != StatusPending {
		return render.InitiateResult{}, fmt.Errorf("card: initiate from status %s", s.rec.Status)
	}
	return s.renderer.Initiate(ctx, s.rec.ColorValue)
}

// CommitInitiate adopts the backend identifiers produced by Initiate.
func (s *Saga) CommitInitiate(result render.InitiateResult) error {
	if s.rec.Status != StatusPending {
		return fmt.Errorf("card: commit initiate from status %s", s.rec.Status)
	}
	if err := s.rec.Adopt(result.RemoteID, result.ExtendedID); err != nil {
		return err
	}
	s.rec.Status = StatusInitiated
	return nil
}

// Finalize runs phase two, uploading the cropped image. It is never
// dispatched without a committed Initiate for this same record.
func (s *Saga) Finalize(ctx context.Context, image []byte) (render.FinalizeResult, error) {
	if s.rec.Status != StatusInitiated {
		return render.FinalizeResult{}, fmt.Errorf("card: finalize from status %s", s.rec.Status)
	}
	if s.rec.RemoteID == 0 {
		return render.FinalizeResult{}, errors.New("card: finalize without a remote id")
	}
	if len(image) == 0 {
		return render.FinalizeResult{}, errors.New("card: finalize without an image")
	}
	return s.renderer.Finalize(ctx, s.rec.RemoteID, image, s.rec.DisplayName)
}

// CommitFinalize records the front asset URLs.
func (s *Saga) CommitFinalize(result render.FinalizeResult) error {
	if s.rec.Status != StatusInitiated {
		return fmt.Errorf("card: commit finalize from status %s", s.rec.Status)
	}
	s.rec.Assets.FrontHorizontal = result.FrontHorizontalURL
	s.rec.Assets.FrontVertical = result.FrontVerticalURL
	s.rec.Status = StatusFinalized
	return nil
}

// Annotate runs the optional third phase. withNote=false requests the
// default back design; the note text is ignored in that case.
func (s *Saga) Annotate(ctx context.Context, note string, withNote bool) (render.AnnotateResult, error) {
	if s.rec.Status != StatusFinalized {
		return render.AnnotateResult{}, fmt.Errorf("card: annotate from status %s", s.rec.Status)
	}
	var notePtr *string
	if withNote {
		notePtr = &note
	}
	return s.renderer.Annotate(ctx, s.rec.RemoteID, notePtr)
}

// CommitAnnotate records the back asset URLs and note state.
func (s *Saga) CommitAnnotate(result render.AnnotateResult, note string, withNote bool) error {
	if s.rec.Status != StatusFinalized {
		return fmt.Errorf("card: commit annotate from status %s", s.rec.Status)
	}
	s.rec.Assets.BackHorizontal = result.BackHorizontalURL
	s.rec.Assets.BackVertical = result.BackVerticalURL
	s.rec.HasNote = result.HasNote
	if withNote {
		s.rec.NoteText = note
	}
	s.rec.Status = StatusAnnotated
	return nil
}

// Fail marks the attempt failed. Initiate and finalize failures end the
// attempt; annotate failures do not (the finalized front assets survive),
// so callers only invoke Fail for the first two phases.
func (s *Saga) Fail() {
	s.rec.Status = StatusFailed
}
