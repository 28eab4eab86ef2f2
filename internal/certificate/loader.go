package certificate

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxImageBytes bounds how much of a remote or inline image the loader will
// read before decoding.
const maxImageBytes = 20 << 20

var errEmptySource = errors.New("empty image source")

// ImageLoader resolves an image reference into a decoded image. Supported
// sources: raw bytes, data: URIs, http(s) URLs and local file paths. All
// loads respect the caller's context deadline.
type ImageLoader struct {
	client *http.Client
}

func NewImageLoader() *ImageLoader {
	return &ImageLoader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *ImageLoader) Load(ctx context.Context, source string, data []byte) (image.Image, error) {
	if len(data) > 0 {
		return decodeImage(data)
	}

	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return nil, errEmptySource
	case strings.HasPrefix(source, "data:"):
		return l.loadDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.loadURL(ctx, source)
	default:
		return l.loadFile(ctx, source)
	}
}

func (l *ImageLoader) loadDataURI(uri string) (image.Image, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}

	meta, payload := uri[5:comma], uri[comma+1:]
	var raw []byte
	var err error
	if strings.HasSuffix(meta, ";base64") {
		raw, err = base64.StdEncoding.DecodeString(payload)
	} else {
		raw = []byte(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return decodeImage(raw)
}

func (l *ImageLoader) loadURL(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return decodeImage(raw)
}

func (l *ImageLoader) loadFile(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return decodeImage(raw)
}

func decodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
