package viewer

import (
	"strings"

	"studynotes/internal/model"
)

// State of a viewer session.
type State int

const (
	// StateLocked is the initial state: only the restriction notice and the "View Notes" action.
	StateLocked State = iota
	// StateRevealed renders the content inside the constrained surface.
	StateRevealed
)

const watermarkSuffix = " - View Only"

// Session is the state of one restricted viewer page. It is never persisted and carries
// no identity beyond the page it renders.
//
// The caller decides entitlement before creating a Session; Session itself never checks it.
type Session struct {
	NoteID     string
	Title      string
	ContentURL string
	RevealURL  string
	Mode       Mode
	Extension  string
	Watermark  string
	Views      int64

	state    State
	detector Detector
}

// Links are the page's own endpoints.
type Links struct {
	// Content is the gated stream endpoint for the note's bytes.
	Content string
	// Reveal receives the "View Notes" action.
	Reveal string
}

// NewSession prepares a Locked session for note as seen by viewer.
// The note's storage reference is only used for classification and never leaves the session.
func NewSession(note model.Note, viewer model.Identity, brand string, links Links) *Session {
	return &Session{
		NoteID:     note.ID,
		Title:      note.Title,
		ContentURL: links.Content,
		RevealURL:  links.Reveal,
		Mode:       Classify(note.FileRef),
		Extension:  Extension(note.FileRef),
		Watermark:  WatermarkText(viewer.Email, brand),
		Views:      note.Views,
		state:      StateLocked,
	}
}

// WatermarkText identifies the viewer on the overlay, falling back to the brand.
func WatermarkText(email, brand string) string {
	if e := strings.TrimSpace(email); e != "" {
		return e + watermarkSuffix
	}
	return brand + watermarkSuffix
}

// Reveal moves the session to StateRevealed. It reports whether the call changed the state;
// there is no way back to StateLocked.
func (s *Session) Reveal() bool {
	if s.state == StateRevealed {
		return false
	}
	s.state = StateRevealed
	return true
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Revealed reports whether content is shown.
func (s *Session) Revealed() bool {
	return s.state == StateRevealed
}

// ObserveCapture feeds a page signal to the capture detector.
func (s *Session) ObserveCapture(sig Signal) bool {
	return s.detector.Observe(sig)
}

// CarryCapture re-latches the banner when the reveal form reports an attempt made while Locked.
// Only the value "1" counts; the value is never stored beyond this session.
func (s *Session) CarryCapture(field string) bool {
	if field != "1" {
		return false
	}
	return s.ObserveCapture(Signal{Carried: true})
}

// CaptureFlagged reports whether the warning banner is showing.
func (s *Session) CaptureFlagged() bool {
	return s.detector.Flagged()
}
