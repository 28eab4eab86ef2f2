package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pothole-service/internal/certificate"
	"pothole-service/internal/config"
	"pothole-service/internal/domain/report"
	"pothole-service/internal/export"
)

var ErrInvalidInput = errors.New("invalid input")

// ReportService drives the certificate flow: resolve the location fix,
// build the immutable record, render, and hand the blob to the export
// adapter. It keeps no state between requests.
type ReportService struct {
	renderer *certificate.Renderer
	exporter *export.Adapter
	geo      config.GeoConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewReportService(renderer *certificate.Renderer, exporter *export.Adapter, geo config.GeoConfig, log zerolog.Logger) *ReportService {
	return &ReportService{
		renderer: renderer,
		exporter: exporter,
		geo:      geo,
		log:      log,
		now:      time.Now,
	}
}

// ResolveFix turns the raw submitted coordinates into a GeoFix. Denied or
// invalid coordinates substitute the fixed fallback fix; the substitution
// is logged and marked on the fix so callers can surface it, since the
// certificate would otherwise silently claim the fallback city.
func (s *ReportService) ResolveFix(payload report.SubmitPayload) report.GeoFix {
	now := s.now()

	if payload.Latitude != nil && payload.Longitude != nil {
		fix := report.GeoFix{
			Latitude:   *payload.Latitude,
			Longitude:  *payload.Longitude,
			ObtainedAt: now,
		}
		if payload.Accuracy != nil {
			fix.Accuracy = *payload.Accuracy
		}
		if fix.Valid() {
			return fix
		}
		s.log.Warn().
			Float64("latitude", fix.Latitude).
			Float64("longitude", fix.Longitude).
			Msg("submitted coordinates out of range, using fallback fix")
	} else {
		s.log.Warn().Msg("no coordinates submitted, using fallback fix")
	}

	return report.GeoFix{
		Latitude:   s.geo.FallbackLatitude,
		Longitude:  s.geo.FallbackLongitude,
		Accuracy:   s.geo.FallbackAccuracy,
		ObtainedAt: now,
		Fallback:   true,
	}
}

// NewRecord builds the immutable certificate record for one report. The
// certificate ID derives from the current time; collisions are accepted.
func (s *ReportService) NewRecord(capture report.CaptureResult, fix report.GeoFix) report.CertificateRecord {
	now := s.now()
	return report.CertificateRecord{
		Image:         capture,
		Location:      fix,
		ReportedDate:  now.Format("02/01/2006"),
		ReportedTime:  now.Format("03:04 pm"),
		CertificateID: fmt.Sprintf("PI-%d", now.UnixMilli()),
	}
}

// GenerateCertificate validates the capture, renders the certificate and
// returns the PNG blob with its record. Rendering is best-effort per image;
// the blob-creation retry lives in the export adapter.
func (s *ReportService) GenerateCertificate(ctx context.Context, capture report.CaptureResult, payload report.SubmitPayload) ([]byte, report.CertificateRecord, error) {
	if len(capture.Data) == 0 && capture.Source == "" {
		return nil, report.CertificateRecord{}, fmt.Errorf("%w: photo is required", ErrInvalidInput)
	}

	fix := s.ResolveFix(payload)
	rec := s.NewRecord(capture, fix)

	blob, err := s.exporter.MakeBlob(ctx, func(ctx context.Context) ([]byte, error) {
		return s.renderer.Render(ctx, rec)
	})
	if err != nil {
		s.log.Error().
			Err(err).
			Str("certificate_id", rec.CertificateID).
			Msg("failed to create certificate blob")
		return nil, rec, err
	}

	s.log.Info().
		Str("certificate_id", rec.CertificateID).
		Float64("latitude", fix.Latitude).
		Float64("longitude", fix.Longitude).
		Bool("location_fallback", fix.Fallback).
		Int("blob_bytes", len(blob)).
		Msg("certificate rendered")

	return blob, rec, nil
}

// ShareCertificate renders the certificate and assembles the share
// intents, publishing the blob to object storage when configured.
func (s *ReportService) ShareCertificate(ctx context.Context, capture report.CaptureResult, payload report.SubmitPayload) (report.ShareResult, error) {
	blob, rec, err := s.GenerateCertificate(ctx, capture, payload)
	if err != nil {
		return report.ShareResult{}, err
	}

	result := report.ShareResult{
		CertificateID:  rec.CertificateID,
		Filename:       export.Filename(rec.ReportedDate),
		ReportedDate:   rec.ReportedDate,
		ReportedTime:   rec.ReportedTime,
		Location:       rec.Location,
		LocationIsFall: rec.Location.Fallback,
		Links:          s.exporter.ShareLinks(rec),
		CertificateURL: s.exporter.Publish(ctx, blob),
	}
	return result, nil
}
