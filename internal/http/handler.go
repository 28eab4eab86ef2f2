package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pothole-service/internal/config"
	"pothole-service/internal/domain/report"
	"pothole-service/internal/export"
	"pothole-service/internal/gst"
	"pothole-service/internal/service"
)

// maxPhotoBytes bounds the multipart photo upload.
const maxPhotoBytes = 10 << 20

// Contact addresses surfaced by the FAQ/contact pages for their
// copy-to-clipboard buttons.
var contactEmails = []string{
	"allwingsai@gmail.com",
	"umairh1819@gmail.com",
}

type Handler struct {
	reports *service.ReportService
	config  *config.Config
	log     zerolog.Logger
}

func NewHandler(reports *service.ReportService, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		reports: reports,
		config:  cfg,
		log:     log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/certificates", h.downloadCertificate)
		api.POST("/certificates/share", h.shareCertificate)
		api.GET("/gst/catalog", h.gstCatalog)
		api.GET("/gst/catalog/export", h.gstCatalogExport)
		api.POST("/gst/calculate", h.gstCalculate)
		api.GET("/contact", h.contact)
	}
}

// certificateRequest is the JSON shape of a report submission. Multipart
// submissions carry the same location fields as form values plus a "photo"
// file part.
type certificateRequest struct {
	Image     string   `json:"image"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

func (h *Handler) downloadCertificate(c *gin.Context) {
	capture, payload, err := h.bindCapture(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	blob, rec, err := h.reports.GenerateCertificate(c.Request.Context(), capture, payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := export.Filename(rec.ReportedDate)
	h.log.Info().
		Str("certificate_id", rec.CertificateID).
		Str("filename", filename).
		Msg("serving certificate download")

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("X-Certificate-Id", rec.CertificateID)
	c.Data(http.StatusOK, "image/png", blob)
}

func (h *Handler) shareCertificate(c *gin.Context) {
	capture, payload, err := h.bindCapture(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.reports.ShareCertificate(c.Request.Context(), capture, payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

// bindCapture accepts either a multipart form with a "photo" file part or a
// JSON body referencing the image by data URI or URL.
func (h *Handler) bindCapture(c *gin.Context) (report.CaptureResult, report.SubmitPayload, error) {
	capture := report.CaptureResult{CapturedAt: time.Now()}
	var payload report.SubmitPayload

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fh, err := c.FormFile("photo")
		if err != nil {
			return capture, payload, errors.New("photo file is required")
		}
		if fh.Size > maxPhotoBytes {
			return capture, payload, errors.New("photo exceeds the upload limit")
		}
		file, err := fh.Open()
		if err != nil {
			return capture, payload, errors.New("photo could not be read")
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
		if err != nil {
			return capture, payload, errors.New("photo could not be read")
		}
		capture.Data = data
		payload.Latitude = parseFormFloat(c, "latitude")
		payload.Longitude = parseFormFloat(c, "longitude")
		payload.Accuracy = parseFormFloat(c, "accuracy")
		return capture, payload, nil
	}

	var req certificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return capture, payload, err
	}
	capture.Source = req.Image
	payload.Latitude = req.Latitude
	payload.Longitude = req.Longitude
	payload.Accuracy = req.Accuracy
	return capture, payload, nil
}

func (h *Handler) gstCatalog(c *gin.Context) {
	tab := strings.ToLower(strings.TrimSpace(c.Query("tab")))
	c.JSON(http.StatusOK, successResponse(gst.Catalog(tab)))
}

func (h *Handler) gstCatalogExport(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="gst-rates.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := gst.WriteWorkbook(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("failed to export GST catalog")
		c.Status(http.StatusInternalServerError)
	}
}

type gstCalculateRequest struct {
	Product    string            `json:"product" binding:"required"`
	Parameters map[string]string `json:"parameters"`
	Amount     string            `json:"amount" binding:"required"`
}

func (h *Handler) gstCalculate(c *gin.Context) {
	var req gstCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := gst.CalculateByName(req.Product, req.Parameters, req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("product", result.ProductName).
		Str("rate", result.RatePercent.String()).
		Str("amount", result.Principal.StringFixed(2)).
		Msg("GST calculated")

	c.JSON(http.StatusOK, gin.H{
		"product_name":    result.ProductName,
		"gst_rate":        result.RatePercent.InexactFloat64(),
		"original_amount": result.Principal.StringFixed(2),
		"gst_amount":      result.TaxAmount.StringFixed(2),
		"total_amount":    result.TotalAmount.StringFixed(2),
	})
}

func (h *Handler) contact(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{
		"emails": contactEmails,
	}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, gst.ErrUnknownProduct),
		errors.Is(err, gst.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, export.ErrEmptyCertificate):
		c.JSON(http.StatusInternalServerError, errorResponse("certificate could not be created, please try again"))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseFormFloat(c *gin.Context, field string) *float64 {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
