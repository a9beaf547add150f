package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ref  string
		want Mode
	}{
		{"notes/3f1c.pdf", ModePaginated},
		{"notes/3F1C.PDF", ModePaginated},
		{"https://cdn.example.com/public/0.42.Pdf?token=abc", ModePaginated},
		{"notes/a.jpg", ModeRaster},
		{"notes/a.JPEG", ModeRaster},
		{"notes/a.png", ModeRaster},
		{"notes/a.Gif#frag", ModeRaster},
		{"notes/a.docx", ModeUnsupported},
		{"notes/a.pdf.exe", ModeUnsupported},
		{"notes/readme", ModeUnsupported},
		{"", ModeUnsupported},
		{"https://cdn.example.com/file.pdf/download", ModeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ref))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a/b/C.PDF"))
	assert.Equal(t, "docx", Extension("x.docx?download=1"))
	assert.Equal(t, "", Extension("noext"))
}

func TestMode_Supported(t *testing.T) {
	assert.True(t, ModePaginated.Supported())
	assert.True(t, ModeRaster.Supported())
	assert.False(t, ModeUnsupported.Supported())
	assert.Equal(t, "unsupported", ModeUnsupported.String())
}
