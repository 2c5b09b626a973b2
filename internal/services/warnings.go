package services

import "fmt"

// InsufficientCandidatesWarning reports that the store returned fewer
// candidates than requested. Results are still returned; the caller
// decides whether to surface the shortfall.
type InsufficientCandidatesWarning struct {
	Requested int
	Got       int
}

func (w *InsufficientCandidatesWarning) Error() string {
	return fmt.Sprintf("requested %d candidates, store returned %d", w.Requested, w.Got)
}

// GenerationFailure reports that answer generation failed or was
// cancelled. Retrieval results are unaffected.
type GenerationFailure struct {
	Err error
}

func (w *GenerationFailure) Error() string {
	return fmt.Sprintf("answer generation failed: %v", w.Err)
}

func (w *GenerationFailure) Unwrap() error { return w.Err }
