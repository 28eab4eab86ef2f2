package report

import (
	"time"
)

// CaptureResult is the photo a citizen selected, held in memory for the
// lifetime of one request. Source may be a data: URI, a local file path or
// an http(s) URL; Data carries raw bytes when the photo arrived as an
// upload.
type CaptureResult struct {
	Source     string    `json:"source,omitempty"`
	Data       []byte    `json:"-"`
	CapturedAt time.Time `json:"captured_at"`
}

// GeoFix is a single geolocation reading. When the browser capability is
// denied or absent the service substitutes a fixed fallback fix and marks
// Fallback so callers can surface it.
type GeoFix struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	ObtainedAt time.Time `json:"obtained_at"`
	Fallback   bool      `json:"fallback,omitempty"`
}

// Valid reports whether the fix lies inside the coordinate domain.
func (g GeoFix) Valid() bool {
	return g.Latitude >= -90 && g.Latitude <= 90 &&
		g.Longitude >= -180 && g.Longitude <= 180
}

// CertificateRecord is the immutable input of one certificate render.
// One record corresponds to exactly one rendered certificate.
type CertificateRecord struct {
	Image         CaptureResult `json:"image"`
	Location      GeoFix        `json:"location"`
	ReportedDate  string        `json:"reported_date"`
	ReportedTime  string        `json:"reported_time"`
	CertificateID string        `json:"certificate_id"`
}

// SubmitPayload is the inbound report: the photo reference plus an optional
// raw location. Zero-value location fields trigger the fallback fix.
type SubmitPayload struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// ShareLinks are the outbound social compose intents for one certificate.
// They are fire-and-forget URLs; the service never learns whether a share
// completed.
type ShareLinks struct {
	Twitter  string `json:"twitter"`
	WhatsApp string `json:"whatsapp"`
	Facebook string `json:"facebook"`
}

// ShareResult is returned by the share endpoint: the intents, the download
// filename, and an optional public URL when object storage is configured.
type ShareResult struct {
	CertificateID  string     `json:"certificate_id"`
	Filename       string     `json:"filename"`
	ReportedDate   string     `json:"reported_date"`
	ReportedTime   string     `json:"reported_time"`
	Location       GeoFix     `json:"location"`
	LocationIsFall bool       `json:"location_is_fallback"`
	Links          ShareLinks `json:"links"`
	CertificateURL string     `json:"certificate_url,omitempty"`
}
