package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

// CertificateConfig carries the certificate layout knobs. Dimensions, band
// colors and font sizes default to the original artwork; tests override them
// with smaller fixtures.
type CertificateConfig struct {
	Width  int
	Height int

	SaffronColor     string
	WhiteColor       string
	GreenColor       string
	LinkColor        string
	PlaceholderColor string

	TitleFontSize    float64
	SubtitleFontSize float64
	BodyFontSize     float64
	SmallFontSize    float64
	LabelFontSize    float64

	LogoPath       string
	BrandImagePath string

	ImageLoadTimeout time.Duration
}

type GeoConfig struct {
	FallbackLatitude  float64
	FallbackLongitude float64
	FallbackAccuracy  float64
}

type ShareConfig struct {
	SiteURL        string
	MinistryHandle string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Certificate CertificateConfig
	Geo         GeoConfig
	Share       ShareConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Certificate: CertificateConfig{
			Width:            v.GetInt("CERT_WIDTH"),
			Height:           v.GetInt("CERT_HEIGHT"),
			SaffronColor:     v.GetString("CERT_SAFFRON_COLOR"),
			WhiteColor:       v.GetString("CERT_WHITE_COLOR"),
			GreenColor:       v.GetString("CERT_GREEN_COLOR"),
			LinkColor:        v.GetString("CERT_LINK_COLOR"),
			PlaceholderColor: v.GetString("CERT_PLACEHOLDER_COLOR"),
			TitleFontSize:    v.GetFloat64("CERT_TITLE_FONT_SIZE"),
			SubtitleFontSize: v.GetFloat64("CERT_SUBTITLE_FONT_SIZE"),
			BodyFontSize:     v.GetFloat64("CERT_BODY_FONT_SIZE"),
			SmallFontSize:    v.GetFloat64("CERT_SMALL_FONT_SIZE"),
			LabelFontSize:    v.GetFloat64("CERT_LABEL_FONT_SIZE"),
			LogoPath:         v.GetString("CERT_LOGO_PATH"),
			BrandImagePath:   v.GetString("CERT_BRAND_IMAGE_PATH"),
			ImageLoadTimeout: v.GetDuration("CERT_IMAGE_LOAD_TIMEOUT"),
		},
		Geo: GeoConfig{
			FallbackLatitude:  v.GetFloat64("FALLBACK_LATITUDE"),
			FallbackLongitude: v.GetFloat64("FALLBACK_LONGITUDE"),
			FallbackAccuracy:  v.GetFloat64("FALLBACK_ACCURACY"),
		},
		Share: ShareConfig{
			SiteURL:        v.GetString("SHARE_SITE_URL"),
			MinistryHandle: v.GetString("SHARE_MINISTRY_HANDLE"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	c := &cfg.Certificate
	if c.Width == 0 {
		c.Width = 800
	}
	if c.Height == 0 {
		c.Height = 1000
	}
	if c.SaffronColor == "" {
		c.SaffronColor = "#ff9933"
	}
	if c.WhiteColor == "" {
		c.WhiteColor = "#ffffff"
	}
	if c.GreenColor == "" {
		c.GreenColor = "#138808"
	}
	if c.LinkColor == "" {
		c.LinkColor = "#0066CC"
	}
	if c.PlaceholderColor == "" {
		c.PlaceholderColor = "#F0F0F0"
	}
	if c.TitleFontSize == 0 {
		c.TitleFontSize = 36
	}
	if c.SubtitleFontSize == 0 {
		c.SubtitleFontSize = 20
	}
	if c.BodyFontSize == 0 {
		c.BodyFontSize = 18
	}
	if c.SmallFontSize == 0 {
		c.SmallFontSize = 14
	}
	if c.LabelFontSize == 0 {
		c.LabelFontSize = 12
	}
	if c.LogoPath == "" {
		c.LogoPath = "assets/logo.png"
	}
	if c.BrandImagePath == "" {
		c.BrandImagePath = "assets/modi.png"
	}
	if c.ImageLoadTimeout == 0 {
		c.ImageLoadTimeout = 5 * time.Second
	}

	g := &cfg.Geo
	if g.FallbackLatitude == 0 && g.FallbackLongitude == 0 {
		// New Delhi, matching the front-end fallback fix.
		g.FallbackLatitude = 28.6139
		g.FallbackLongitude = 77.2090
	}
	if g.FallbackAccuracy == 0 {
		g.FallbackAccuracy = 100
	}

	s := &cfg.Share
	if s.SiteURL == "" {
		s.SiteURL = "pothole-indi.vercel.app"
	}
	if s.MinistryHandle == "" {
		s.MinistryHandle = "@MoRTHIndia"
	}
}

func validate(cfg *Config) error {
	if cfg.Certificate.Width <= 0 || cfg.Certificate.Height <= 0 {
		return fmt.Errorf("certificate dimensions must be positive")
	}
	if cfg.Certificate.ImageLoadTimeout <= 0 {
		return fmt.Errorf("CERT_IMAGE_LOAD_TIMEOUT must be positive")
	}
	return nil
}
