package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pothole-service/internal/domain/report"
)

// ErrEmptyCertificate is returned when blob creation produced no bytes even
// after the single retry. Callers must surface it; a silent miss would leave
// the citizen without a certificate.
var ErrEmptyCertificate = errors.New("certificate blob is empty")

// Uploader is the optional object-storage hook used to publish a rendered
// certificate under a public URL. A nil Uploader disables publishing.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Adapter turns rendered certificate blobs into downloads and social share
// intents. Downloading needs no network: it operates purely on the
// in-memory blob.
type Adapter struct {
	siteURL        string
	ministryHandle string
	uploader       Uploader
	log            zerolog.Logger
}

func NewAdapter(siteURL, ministryHandle string, uploader Uploader, log zerolog.Logger) *Adapter {
	return &Adapter{
		siteURL:        siteURL,
		ministryHandle: ministryHandle,
		uploader:       uploader,
		log:            log,
	}
}

// Filename derives the deterministic download name from the localized
// report date, replacing slashes with dashes:
// "04/09/2025" -> "pothole-certificate-04-09-2025.png".
func Filename(date string) string {
	return "pothole-certificate-" + strings.ReplaceAll(date, "/", "-") + ".png"
}

// MakeBlob runs the render once and retries a single time when the result
// is empty. A second empty result is a hard failure.
func (a *Adapter) MakeBlob(ctx context.Context, render func(context.Context) ([]byte, error)) ([]byte, error) {
	blob, err := render(ctx)
	if err == nil && len(blob) > 0 {
		return blob, nil
	}
	if err != nil {
		a.log.Warn().Err(err).Msg("certificate blob creation failed, retrying once")
	} else {
		a.log.Warn().Msg("certificate blob came back empty, retrying once")
	}

	blob, err = render(ctx)
	if err != nil {
		return nil, fmt.Errorf("create certificate blob: %w", err)
	}
	if len(blob) == 0 {
		return nil, ErrEmptyCertificate
	}
	return blob, nil
}

// ShareLinks builds the outbound compose intents for a certificate. The
// URLs are fire-and-forget; the service never learns whether the user
// completed a share.
func (a *Adapter) ShareLinks(rec report.CertificateRecord) report.ShareLinks {
	return report.ShareLinks{
		Twitter:  a.twitterIntentURL(rec),
		WhatsApp: a.whatsAppShareURL(),
		Facebook: a.facebookShareURL(),
	}
}

func (a *Adapter) twitterIntentURL(rec report.CertificateRecord) string {
	text := fmt.Sprintf(
		"🚨 Pothole Reported! 📍 Location: %.4f, %.4f 📅 %s ⏰ %s\n\n%s Please take necessary action to fix this pothole. Report potholes at Pothole Indi and make our roads safer!\n\n#PotholeIndi #RoadSafety #India",
		rec.Location.Latitude, rec.Location.Longitude,
		rec.ReportedDate, rec.ReportedTime,
		a.ministryHandle,
	)
	return "https://twitter.com/intent/tweet?text=" + encodeComponent(text)
}

func (a *Adapter) whatsAppShareURL() string {
	text := "I just reported a pothole using Pothole Indi! Let's make our roads safer. Visit: " + a.siteURL
	return "https://wa.me/?text=" + encodeComponent(text)
}

func (a *Adapter) facebookShareURL() string {
	return "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(a.siteURL)
}

// Publish uploads the blob to object storage and returns its public URL.
// Returns "" when no uploader is configured; upload errors degrade to ""
// as well since the share intents remain usable without a hosted copy.
func (a *Adapter) Publish(ctx context.Context, blob []byte) string {
	if a.uploader == nil {
		return ""
	}
	key := fmt.Sprintf("certificates/%s.png", uuid.New().String())
	publicURL, err := a.uploader.Upload(ctx, key, blob, "image/png")
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("certificate upload failed, share links remain local")
		return ""
	}
	a.log.Info().Str("key", key).Str("url", publicURL).Msg("certificate published")
	return publicURL
}

// encodeComponent mirrors encodeURIComponent: query escaping with literal
// %20 for spaces, which the compose intents expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
