package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pothole-service/internal/certificate"
	"pothole-service/internal/config"
	"pothole-service/internal/export"
	"pothole-service/internal/service"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		Certificate: config.CertificateConfig{
			Width:            200,
			Height:           250,
			SaffronColor:     "#ff9933",
			WhiteColor:       "#ffffff",
			GreenColor:       "#138808",
			LinkColor:        "#0066CC",
			PlaceholderColor: "#F0F0F0",
			TitleFontSize:    12,
			SubtitleFontSize: 8,
			BodyFontSize:     8,
			SmallFontSize:    6,
			LabelFontSize:    6,
			LogoPath:         "testdata/missing-logo.png",
			BrandImagePath:   "testdata/missing-brand.png",
			ImageLoadTimeout: time.Second,
		},
		Geo: config.GeoConfig{
			FallbackLatitude:  28.6139,
			FallbackLongitude: 77.2090,
			FallbackAccuracy:  100,
		},
		Share: config.ShareConfig{
			SiteURL:        "pothole-indi.vercel.app",
			MinistryHandle: "@MoRTHIndia",
		},
	}

	log := zerolog.Nop()
	renderer, err := certificate.NewRenderer(cfg.Certificate, cfg.Share.SiteURL, log)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	exporter := export.NewAdapter(cfg.Share.SiteURL, cfg.Share.MinistryHandle, nil, log)
	reports := service.NewReportService(renderer, exporter, cfg.Geo, log)

	return NewRouter(NewHandler(reports, cfg, log), cfg, log)
}

func photoForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var photo bytes.Buffer
	if err := png.Encode(&photo, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "pothole.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(photo.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("latitude", "12.9716"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.WriteField("longitude", "77.5946"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestDownloadCertificate(t *testing.T) {
	r := testRouter(t)
	body, contentType := photoForm(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "pothole-certificate-") || !strings.Contains(cd, ".png") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Header().Get("X-Certificate-Id"), "PI-") {
		t.Errorf("X-Certificate-Id = %q", w.Header().Get("X-Certificate-Id"))
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Errorf("response body is not a PNG: %v", err)
	}
}

func TestDownloadCertificateMissingPhoto(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestShareCertificate(t *testing.T) {
	r := testRouter(t)
	body, contentType := photoForm(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates/share", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			CertificateID      string `json:"certificate_id"`
			Filename           string `json:"filename"`
			LocationIsFallback bool   `json:"location_is_fallback"`
			Links              struct {
				Twitter  string `json:"twitter"`
				WhatsApp string `json:"whatsapp"`
				Facebook string `json:"facebook"`
			} `json:"links"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Data.CertificateID, "PI-") {
		t.Errorf("certificate_id = %q", resp.Data.CertificateID)
	}
	if resp.Data.LocationIsFallback {
		t.Error("valid coordinates must not be flagged as fallback")
	}
	if resp.Data.Links.Twitter == "" || resp.Data.Links.WhatsApp == "" || resp.Data.Links.Facebook == "" {
		t.Error("share links must all be populated")
	}
}

func TestGSTCatalog(t *testing.T) {
	r := testRouter(t)

	for _, tab := range []string{"", "goods", "services"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/gst/catalog?tab="+tab, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("tab %q: status = %d", tab, w.Code)
		}
		var resp struct {
			Data []struct {
				Name     string `json:"name"`
				Products []struct {
					Name string `json:"name"`
				} `json:"products"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("tab %q: decode response: %v", tab, err)
		}
		if len(resp.Data) == 0 {
			t.Errorf("tab %q: empty catalog", tab)
		}
	}
}

func TestGSTCalculateEndpoint(t *testing.T) {
	r := testRouter(t)

	payload := `{
		"product": "Small Cars",
		"parameters": {
			"Engine Capacity (cc)": "1200",
			"Length (mm)": "3990",
			"Fuel Type": "Petrol"
		},
		"amount": "500000"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gst/calculate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Rate     float64 `json:"gst_rate"`
		GSTAmt   string  `json:"gst_amount"`
		TotalAmt string  `json:"total_amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Rate != 18 {
		t.Errorf("gst_rate = %v, want 18", resp.Rate)
	}
	if resp.GSTAmt != "90000.00" {
		t.Errorf("gst_amount = %q, want 90000.00", resp.GSTAmt)
	}
	if resp.TotalAmt != "590000.00" {
		t.Errorf("total_amount = %q, want 590000.00", resp.TotalAmt)
	}
}

func TestGSTCalculateErrors(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"unknown product", `{"product": "Flying Carpets", "amount": "100"}`},
		{"bad amount", `{"product": "UHT Milk", "amount": "ten"}`},
		{"missing fields", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/gst/calculate", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGSTCatalogExport(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gst/catalog/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("response is not a zip-based workbook")
	}
}

func TestContact(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			Emails []string `json:"emails"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Emails) != 2 {
		t.Errorf("emails = %v, want 2 addresses", resp.Data.Emails)
	}
}

func TestHealthEndpoints(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}
