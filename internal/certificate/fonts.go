package certificate

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet lazily builds font.Faces for the sizes the layout needs. Parsing
// the embedded Go fonts fails only in a broken toolchain, which maps to the
// unsupported-environment error: the renderer cannot be constructed.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

func newFontSet() (*fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fontSet{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (fs *fontSet) face(size float64, bold bool) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if f, ok := fs.faces[key]; ok {
		return f
	}

	ttf := fs.regular
	if bold {
		ttf = fs.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size})
	fs.faces[key] = f
	return f
}
