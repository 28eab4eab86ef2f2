package certificate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pothole-service/internal/config"
	"pothole-service/internal/domain/report"
)

// Fixed layout offsets of the certificate artwork. The canvas dimensions,
// colors and font sizes come from configuration; the composition itself is
// not configurable.
const (
	borderInset     = 10.0
	borderWidth     = 4.0
	bandHeight      = 30.0
	titleY          = 130.0
	subtitleY       = 170.0
	dividerY        = 200.0
	dividerInset    = 50.0
	reportedY       = 240.0
	locationY       = 270.0
	mapsLinkY       = 290.0
	taglineY        = 870.0
	attributionY    = 890.0
	footerGenY      = 940.0
	footerSiteY     = 960.0
	footerCertY     = 980.0
	photoLabelY     = 470.0
	photoSubLabelY  = 490.0
	logoLabelY      = 710.0
	brandLabelY     = 760.0
	photoLabelColor = "#666666"
	photoSubColor   = "#999999"
)

type region struct {
	x, y, w, h float64
}

var (
	photoRegion = region{150, 320, 500, 300}
	logoRegion  = region{50, 650, 100, 100}
	brandRegion = region{600, 650, 200, 200}
)

// Renderer composes pothole report certificates. It is safe for concurrent
// use; each render gets its own drawing context.
type Renderer struct {
	cfg     config.CertificateConfig
	siteURL string
	fonts   *fontSet
	loader  *ImageLoader
	log     zerolog.Logger
}

func NewRenderer(cfg config.CertificateConfig, siteURL string, log zerolog.Logger) (*Renderer, error) {
	fonts, err := newFontSet()
	if err != nil {
		return nil, fmt.Errorf("renderer unavailable: %w", err)
	}
	return &Renderer{
		cfg:     cfg,
		siteURL: siteURL,
		fonts:   fonts,
		loader:  NewImageLoader(),
		log:     log,
	}, nil
}

type loadedAssets struct {
	photo image.Image
	logo  image.Image
	brand image.Image
}

// loadAssets fans out the three image loads under one shared deadline. Each
// load is best-effort: a failed or timed-out image leaves its slot nil and
// the placeholder stays.
func (r *Renderer) loadAssets(ctx context.Context, rec report.CertificateRecord) loadedAssets {
	var assets loadedAssets

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ImageLoadTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		img, err := r.loader.Load(ctx, rec.Image.Source, rec.Image.Data)
		if err != nil {
			r.log.Warn().Err(err).Msg("pothole photo failed to load, using placeholder")
			return nil
		}
		assets.photo = img
		return nil
	})
	g.Go(func() error {
		img, err := r.loader.Load(ctx, r.cfg.LogoPath, nil)
		if err != nil {
			r.log.Warn().Err(err).Str("path", r.cfg.LogoPath).Msg("logo failed to load, using placeholder")
			return nil
		}
		assets.logo = img
		return nil
	})
	g.Go(func() error {
		img, err := r.loader.Load(ctx, r.cfg.BrandImagePath, nil)
		if err != nil {
			r.log.Warn().Err(err).Str("path", r.cfg.BrandImagePath).Msg("brand image failed to load, using placeholder")
			return nil
		}
		assets.brand = img
		return nil
	})

	_ = g.Wait()
	return assets
}

// Render produces the certificate PNG for one record. It always returns a
// complete certificate, falling back to placeholder fills for any image that
// failed to load; only a PNG encoding failure is fatal.
func (r *Renderer) Render(ctx context.Context, rec report.CertificateRecord) ([]byte, error) {
	assets := r.loadAssets(ctx, rec)

	w := float64(r.cfg.Width)
	h := float64(r.cfg.Height)
	cx := w / 2

	dc := gg.NewContext(r.cfg.Width, r.cfg.Height)

	// Background and border.
	dc.SetHexColor("#FFFFFF")
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	dc.SetHexColor("#000000")
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(borderInset, borderInset, w-2*borderInset, h-2*borderInset)
	dc.Stroke()

	// Tricolor bands.
	dc.SetHexColor(r.cfg.SaffronColor)
	dc.DrawRectangle(0, 0, w, bandHeight)
	dc.Fill()
	dc.SetHexColor(r.cfg.WhiteColor)
	dc.DrawRectangle(0, bandHeight, w, bandHeight)
	dc.Fill()
	dc.SetHexColor(r.cfg.GreenColor)
	dc.DrawRectangle(0, 2*bandHeight, w, bandHeight)
	dc.Fill()

	// Title block.
	dc.SetHexColor("#000000")
	dc.SetFontFace(r.fonts.face(r.cfg.TitleFontSize, true))
	dc.DrawStringAnchored("POTHOLE REPORT CERTIFICATE", cx, titleY, 0.5, 0)
	dc.SetFontFace(r.fonts.face(r.cfg.SubtitleFontSize, false))
	dc.DrawStringAnchored("Official Report - Pothole Indi Initiative", cx, subtitleY, 0.5, 0)

	dc.SetLineWidth(1)
	dc.DrawLine(dividerInset, dividerY, w-dividerInset, dividerY)
	dc.Stroke()

	// Report facts.
	dc.SetFontFace(r.fonts.face(r.cfg.BodyFontSize, false))
	dc.DrawStringAnchored(fmt.Sprintf("Reported on: %s at %s", rec.ReportedDate, rec.ReportedTime), cx, reportedY, 0.5, 0)
	dc.SetFontFace(r.fonts.face(16, false))
	dc.DrawStringAnchored(fmt.Sprintf("Location: %.6f, %.6f", rec.Location.Latitude, rec.Location.Longitude), cx, locationY, 0.5, 0)

	dc.SetHexColor(r.cfg.LinkColor)
	dc.SetFontFace(r.fonts.face(r.cfg.SmallFontSize, false))
	dc.DrawStringAnchored(mapsLink(rec.Location), cx, mapsLinkY, 0.5, 0)

	// Photo slot.
	if assets.photo != nil {
		r.drawInRegion(dc, assets.photo, photoRegion)
	} else {
		r.drawPlaceholder(dc, photoRegion)
		dc.SetHexColor(photoLabelColor)
		dc.SetFontFace(r.fonts.face(16, false))
		dc.DrawStringAnchored("Pothole Image", cx, photoLabelY, 0.5, 0)
		dc.SetHexColor(photoSubColor)
		dc.SetFontFace(r.fonts.face(r.cfg.SmallFontSize, false))
		dc.DrawStringAnchored("(Image from your report)", cx, photoSubLabelY, 0.5, 0)
	}

	// Branding slots.
	if assets.logo != nil {
		r.drawInRegion(dc, assets.logo, logoRegion)
	} else {
		r.drawPlaceholder(dc, logoRegion)
		dc.SetHexColor("#000000")
		dc.SetFontFace(r.fonts.face(r.cfg.LabelFontSize, false))
		dc.DrawStringAnchored("Official Logo", logoRegion.x+logoRegion.w/2, logoLabelY, 0.5, 0)
	}
	if assets.brand != nil {
		r.drawInRegion(dc, assets.brand, brandRegion)
	} else {
		r.drawPlaceholder(dc, brandRegion)
		dc.SetHexColor("#000000")
		dc.SetFontFace(r.fonts.face(r.cfg.LabelFontSize, false))
		dc.DrawStringAnchored("PM Modi", brandRegion.x+brandRegion.w/2, brandLabelY, 0.5, 0)
	}

	// Tagline and footer.
	dc.SetHexColor("#000000")
	dc.SetFontFace(r.fonts.face(16, true))
	dc.DrawStringAnchored(`"Building safer roads for a better India"`, cx, taglineY, 0.5, 0)
	dc.SetFontFace(r.fonts.face(r.cfg.SmallFontSize, false))
	dc.DrawStringAnchored("- Pothole Indi Initiative in collaboration with Government of India", cx, attributionY, 0.5, 0)
	dc.DrawStringAnchored("Generated by Pothole Indi - Making Indian roads safer", cx, footerGenY, 0.5, 0)
	dc.DrawStringAnchored("Report more at: "+r.siteURL, cx, footerSiteY, 0.5, 0)
	dc.DrawStringAnchored("Certificate ID: "+rec.CertificateID, cx, footerCertY, 0.5, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPlaceholder(dc *gg.Context, reg region) {
	dc.SetHexColor(r.cfg.PlaceholderColor)
	dc.DrawRectangle(reg.x, reg.y, reg.w, reg.h)
	dc.Fill()
}

// drawInRegion scales an image to exactly cover its target region, matching
// the canvas drawImage(img, x, y, w, h) call of the original artwork.
func (r *Renderer) drawInRegion(dc *gg.Context, img image.Image, reg region) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		r.drawPlaceholder(dc, reg)
		return
	}
	dc.Push()
	dc.Translate(reg.x, reg.y)
	dc.Scale(reg.w/float64(b.Dx()), reg.h/float64(b.Dy()))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

func mapsLink(fix report.GeoFix) string {
	return "https://maps.google.com/?q=" +
		strconv.FormatFloat(fix.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(fix.Longitude, 'f', -1, 64)
}
