package viewer

import (
	"embed"
	"html/template"
	"io"
)

// PaginatedChrome hides the embedded renderer's toolbar, navigation panel and scrollbar.
const PaginatedChrome = "#toolbar=0&navpanes=0&scrollbar=0"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type viewerPage struct {
	Title          string
	RevealURL      string
	Revealed       bool
	Paginated      bool
	Raster         bool
	FrameURL       string
	ContentURL     string
	Extension      string
	Watermark      string
	Views          int64
	CaptureFlagged bool
	CaptureField   string
	Triggers       []KeyTrigger
}

// Render writes the viewer page for s. A Locked session renders neither content nor watermark.
func Render(w io.Writer, s *Session) error {
	page := viewerPage{
		Title:          s.Title,
		RevealURL:      s.RevealURL,
		Revealed:       s.Revealed(),
		CaptureFlagged: s.CaptureFlagged(),
		CaptureField:   CaptureField,
		Triggers:       KeyTriggers,
	}
	if page.Revealed {
		page.Paginated = s.Mode == ModePaginated
		page.Raster = s.Mode == ModeRaster
		page.Extension = s.Extension
		page.Watermark = s.Watermark
		page.Views = s.Views
		switch s.Mode {
		case ModePaginated:
			page.FrameURL = s.ContentURL + PaginatedChrome
		case ModeRaster:
			page.ContentURL = s.ContentURL
		}
	}
	return templates.ExecuteTemplate(w, "viewer.html", page)
}

// Prompt is the not-entitled branch: the user is asked to buy access instead of seeing content.
type Prompt struct {
	Title       string
	Price       string
	PurchaseURL string
}

// RenderPrompt writes the purchase prompt page.
func RenderPrompt(w io.Writer, p Prompt) error {
	return templates.ExecuteTemplate(w, "prompt.html", p)
}
