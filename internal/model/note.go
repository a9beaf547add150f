package model

import "time"

// DefaultBranch is the only branch the library currently carries.
const DefaultBranch = "CSE"

// Note is a document published to the shared library.
// FileRef is the object storage key of the uploaded file; it is never rendered to viewers.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	Semester    int       `json:"semester"`
	Branch      string    `json:"branch"`
	FileRef     string    `json:"-"`
	UploaderID  string    `json:"uploader_id"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

// NoteFilter narrows a library listing. Zero values mean "no constraint".
type NoteFilter struct {
	Search   string
	Subject  string
	Semester int
	Branch   string
}
