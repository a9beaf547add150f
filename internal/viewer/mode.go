package viewer

import (
	"net/url"
	"path"
	"strings"
)

// Mode is how a note's file can be presented inside the restricted viewer.
type Mode int

const (
	// ModeUnsupported files are never rendered; the viewer asks the user to contact support.
	ModeUnsupported Mode = iota
	// ModePaginated files are embedded in a frame with the native chrome suppressed.
	ModePaginated
	// ModeRaster files are rendered as a non-interactive image.
	ModeRaster
)

var modeByExtension = map[string]Mode{
	"pdf":  ModePaginated,
	"jpg":  ModeRaster,
	"jpeg": ModeRaster,
	"png":  ModeRaster,
	"gif":  ModeRaster,
}

func (m Mode) String() string {
	switch m {
	case ModePaginated:
		return "paginated"
	case ModeRaster:
		return "raster"
	default:
		return "unsupported"
	}
}

// Supported reports whether content of this mode may be streamed to the viewer.
func (m Mode) Supported() bool {
	return m == ModePaginated || m == ModeRaster
}

// Extension returns the lower-cased file extension of ref without the dot.
// Query strings and fragments are ignored; a reference without an extension yields "".
func Extension(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// Classify selects the viewer mode for a file reference by its extension, case-insensitively.
func Classify(ref string) Mode {
	return modeByExtension[Extension(ref)]
}
