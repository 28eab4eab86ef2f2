// Command submit-report drives the running service the way the website
// does: it posts a pothole photo with coordinates and writes the returned
// certificate PNG next to itself.
//
// Usage:
//
//	go run submit_report.go [photo.png]
//
// Without an argument a synthetic photo is generated. The service address
// comes from SERVICE_URL, defaulting to http://localhost:8080.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	base := os.Getenv("SERVICE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	photo, err := loadOrGeneratePhoto()
	if err != nil {
		fmt.Fprintf(os.Stderr, "photo: %v\n", err)
		os.Exit(1)
	}

	// Scatter submissions around New Delhi.
	lat := 28.6139 + (rand.Float64()-0.5)*0.2
	lon := 77.2090 + (rand.Float64()-0.5)*0.2

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "pothole.png")
	if err != nil {
		fmt.Fprintf(os.Stderr, "form: %v\n", err)
		os.Exit(1)
	}
	if _, err := fw.Write(photo); err != nil {
		fmt.Fprintf(os.Stderr, "form: %v\n", err)
		os.Exit(1)
	}
	mw.WriteField("latitude", fmt.Sprintf("%.6f", lat))
	mw.WriteField("longitude", fmt.Sprintf("%.6f", lon))
	mw.WriteField("accuracy", "15")
	if err := mw.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "form: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest(http.MethodPost, base+"/api/v1/certificates", &body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		fmt.Fprintf(os.Stderr, "service returned %d: %s\n", resp.StatusCode, msg)
		os.Exit(1)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read response: %v\n", err)
		os.Exit(1)
	}

	name := filenameFromHeader(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = "certificate.png"
	}
	if err := os.WriteFile(name, blob, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write certificate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("certificate %s saved as %s (%d bytes, location %.6f, %.6f)\n",
		resp.Header.Get("X-Certificate-Id"), name, len(blob), lat, lon)
}

func loadOrGeneratePhoto() ([]byte, error) {
	if len(os.Args) > 1 {
		return os.ReadFile(os.Args[1])
	}

	// Grey asphalt with a dark blotch, good enough to exercise the photo
	// slot of the certificate.
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			g := uint8(110 + rand.Intn(30))
			img.Set(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	for y := 90; y < 150; y++ {
		for x := 120; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: 35, G: 30, B: 28, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func filenameFromHeader(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if strings.ContainsAny(name, "/\\") {
		return ""
	}
	return name
}
