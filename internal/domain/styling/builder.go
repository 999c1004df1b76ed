package styling

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
	"github.com/yanqian/weatherstyle/pkg/util"
)

// Validation messages returned to API callers.
const (
	MsgImageRequired   = "image file or URL is required"
	MsgWeatherRequired = "weather or weatherSummary is required"
)

// Defaults for discrete multipart weather fields.
const (
	defaultFieldHumidity  = 65
	defaultFieldWind      = 3.5
	defaultFieldFeelsDiff = 2.0
	defaultFieldIcon      = "01d"
	defaultLanguage       = "ko"
	defaultUploadPrefix   = "user-photos"
)

// ObjectStorage persists uploaded images and hands out URLs for them.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	URL(ctx context.Context, key string) (string, error)
}

// WeatherLookup resolves coordinates to a weather snapshot.
type WeatherLookup interface {
	Snapshot(ctx context.Context, lat, lon float64) weather.Snapshot
}

// Builder normalizes raw photo analysis input into a Request.
type Builder struct {
	storage      ObjectStorage
	weather      WeatherLookup
	uploadPrefix string
	validate     *validator.Validate
	now          func() time.Time
	newID        func() string
}

// NewBuilder constructs a Builder. storage and lookup may be nil; requests
// that need them then fail with upload_failed or fall through to the missing
// weather error respectively.
func NewBuilder(storage ObjectStorage, lookup WeatherLookup, uploadPrefix string) *Builder {
	prefix := strings.Trim(strings.TrimSpace(uploadPrefix), "/")
	if prefix == "" {
		prefix = defaultUploadPrefix
	}
	return &Builder{
		storage:      storage,
		weather:      lookup,
		uploadPrefix: prefix,
		validate:     validator.New(),
		now:          util.NowUTC,
		newID:        newObjectID,
	}
}

// Build validates and normalizes in. Validation failures carry the
// invalid_input code and upload failures carry upload_failed.
func (b *Builder) Build(ctx context.Context, in RawInput) (Request, error) {
	imageURL := strings.TrimSpace(in.ImageURL)
	var (
		imageData []byte
		imageMIME = strings.TrimSpace(in.ImageMIME)
	)
	switch {
	case imageURL != "":
		if err := b.validate.Var(imageURL, "url"); err != nil {
			return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, "imageUrl must be a valid URL", err)
		}
	case len(in.ImageBytes) > 0:
		imageData = in.ImageBytes
	case strings.TrimSpace(in.ImageBase64) != "":
		data, mime, err := decodeBase64Image(in.ImageBase64)
		if err != nil {
			return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image data must be valid base64", err)
		}
		imageData = data
		if imageMIME == "" {
			imageMIME = mime
		}
	default:
		return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, MsgImageRequired, nil)
	}

	req := Request{
		StylePreset:       CanonicalPreset(strings.TrimSpace(in.StylePreset)),
		RecommendedItems:  cleanList(in.RecommendedItems),
		PreferredLanguage: strings.TrimSpace(in.PreferredLanguage),
		ColorPreferences:  cleanList(in.ColorPreferences),
		BodyNotes:         strings.TrimSpace(in.BodyNotes),
		Location:          strings.TrimSpace(in.Location),
	}
	if req.PreferredLanguage == "" {
		req.PreferredLanguage = defaultLanguage
	}

	if err := b.resolveWeather(ctx, in, &req); err != nil {
		return Request{}, err
	}
	if req.Location == "" && req.Weather != nil {
		req.Location = req.Weather.Location
	}

	if imageURL == "" {
		uploaded, err := b.upload(ctx, imageData, imageMIME)
		if err != nil {
			return Request{}, err
		}
		imageURL = uploaded
	}
	req.ImageURL = imageURL
	return req, nil
}

func (b *Builder) resolveWeather(ctx context.Context, in RawInput, req *Request) error {
	switch {
	case in.Weather != nil:
		w := *in.Weather
		req.Weather = &w
	case in.WeatherFields.Present():
		w, err := WeatherFromFields(*in.WeatherFields, b.now())
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "weatherTemp must be numeric", err)
		}
		req.Weather = &w
	case strings.TrimSpace(in.WeatherText) != "":
		summary := ParseWeatherSummary(in.WeatherText)
		req.Summary = &summary
	case in.Lat != nil && in.Lon != nil && b.weather != nil:
		if err := b.validate.Var(*in.Lat, "latitude"); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be a valid latitude", err)
		}
		if err := b.validate.Var(*in.Lon, "longitude"); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "lon must be a valid longitude", err)
		}
		snapshot := b.weather.Snapshot(ctx, *in.Lat, *in.Lon)
		w := snapshot.Current
		req.Weather = &w
	default:
		return apperrors.Wrap(apperrors.CodeInvalidInput, MsgWeatherRequired, nil)
	}
	return nil
}

func (b *Builder) upload(ctx context.Context, data []byte, mimeType string) (string, error) {
	if b.storage == nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to upload image", errors.New("object storage is not configured"))
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	key := path.Join(b.uploadPrefix, b.newID()+"."+extensionFor(mimeType))
	if _, err := b.storage.Put(ctx, key, data, mimeType); err != nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to upload image", err)
	}
	url, err := b.storage.URL(ctx, key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to resolve uploaded image URL", err)
	}
	return url, nil
}

// WeatherFromFields builds a weather snapshot from discrete form fields,
// filling humidity, wind, feels-like and icon with defaults when absent.
func WeatherFromFields(f WeatherFields, now time.Time) (weather.Weather, error) {
	temp, err := strconv.ParseFloat(strings.TrimSpace(f.Temp), 64)
	if err != nil {
		return weather.Weather{}, fmt.Errorf("parse temperature %q: %w", f.Temp, err)
	}
	w := weather.Weather{
		Temperature: temp,
		FeelsLike:   temp + defaultFieldFeelsDiff,
		Humidity:    defaultFieldHumidity,
		WindSpeed:   defaultFieldWind,
		Description: strings.TrimSpace(f.Description),
		Icon:        defaultFieldIcon,
		Main:        strings.TrimSpace(f.Main),
		Location:    strings.TrimSpace(f.Location),
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.FeelsLike), 64); err == nil {
		w.FeelsLike = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(f.Humidity)); err == nil {
		w.Humidity = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.WindSpeed), 64); err == nil {
		w.WindSpeed = v
	}
	if icon := strings.TrimSpace(f.Icon); icon != "" {
		w.Icon = icon
	}
	return w, nil
}

// decodeBase64Image accepts raw base64 or a data URL.
func decodeBase64Image(raw string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	mime := ""
	if strings.HasPrefix(raw, "data:") {
		header, payload, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, "", errors.New("malformed data URL")
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		raw = payload
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("image data is empty")
	}
	return data, mime, nil
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "image/heic":
		return "heic"
	default:
		return "jpg"
	}
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
