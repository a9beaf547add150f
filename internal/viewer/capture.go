package viewer

import "strings"

// CaptureField is the reveal form field the page script sets once it has flagged an attempt.
const CaptureField = "capture"

// Signal is one keyboard or pointer event observed on the viewer page.
type Signal struct {
	Key         string
	Ctrl        bool
	Meta        bool
	Shift       bool
	ContextMenu bool
	// Carried marks an attempt already flagged on the Locked page and posted with the reveal form.
	Carried bool
}

// KeyTrigger is a key combination correlated with a print or screenshot attempt.
// A modifier set to true is required; modifiers set to false are ignored.
type KeyTrigger struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	Shift bool   `json:"shift"`
}

// KeyTriggers is the fixed set of capture-correlated key combinations. The page script is
// generated from this table, so browser behavior and Detect never disagree.
var KeyTriggers = []KeyTrigger{
	{Key: "PrintScreen"},
	{Key: "p", Ctrl: true},
	{Key: "p", Meta: true},
	{Key: "p", Ctrl: true, Shift: true},
}

func (t KeyTrigger) matches(s Signal) bool {
	if !strings.EqualFold(t.Key, s.Key) {
		return false
	}
	return (!t.Ctrl || s.Ctrl) && (!t.Meta || s.Meta) && (!t.Shift || s.Shift)
}

// Detect reports whether s is a capture attempt: any context-menu invocation, a key trigger,
// or an attempt carried over from the Locked page.
func Detect(s Signal) bool {
	if s.ContextMenu || s.Carried {
		return true
	}
	for _, t := range KeyTriggers {
		if t.matches(s) {
			return true
		}
	}
	return false
}

// Detector latches the first capture attempt. Once flagged it stays flagged for its lifetime.
type Detector struct {
	flagged bool
}

// Observe records s and reports whether s itself was a capture attempt.
func (d *Detector) Observe(s Signal) bool {
	if !Detect(s) {
		return false
	}
	d.flagged = true
	return true
}

// Flagged reports whether any attempt has been observed.
func (d *Detector) Flagged() bool {
	return d.flagged
}
