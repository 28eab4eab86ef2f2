package certificate

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// tinyPNG returns an encoded 2x2 solid-color PNG.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestLoadRawBytes(t *testing.T) {
	l := NewImageLoader()
	img, err := l.Load(context.Background(), "", tinyPNG(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestLoadDataURI(t *testing.T) {
	l := NewImageLoader()
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG(t))

	img, err := l.Load(context.Background(), uri, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestLoadErrors(t *testing.T) {
	l := NewImageLoader()
	ctx := context.Background()

	tests := []struct {
		name   string
		source string
		data   []byte
	}{
		{name: "empty source"},
		{name: "malformed data URI", source: "data:image/png"},
		{name: "garbage bytes", data: []byte("not an image")},
		{name: "missing file", source: "testdata/does-not-exist.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Load(ctx, tt.source, tt.data); err == nil {
				t.Error("Load() expected an error")
			}
		})
	}
}
