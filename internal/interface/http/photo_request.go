package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

// photoAnalysisJSON is the JSON variant of POST /photo-analysis.
type photoAnalysisJSON struct {
	ImageURL          string           `json:"imageUrl"`
	ImageBase64       string           `json:"imageBase64"`
	Weather           *weather.Weather `json:"weather"`
	WeatherSummary    string           `json:"weatherSummary"`
	Lat               *float64         `json:"lat"`
	Lon               *float64         `json:"lon"`
	Location          string           `json:"location"`
	StylePreset       string           `json:"stylePreset"`
	RecommendedItems  []string         `json:"recommendedItems"`
	PreferredLanguage string           `json:"preferredLanguage"`
	ColorPreferences  []string         `json:"colorPreferences"`
	BodyNotes         string           `json:"bodyNotes"`
}

func (h *Handler) parsePhotoRequest(c *gin.Context) (styling.RawInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.parsePhotoMultipart(c)
	}

	var body photoAnalysisJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		return styling.RawInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid photo analysis request", err)
	}
	return styling.RawInput{
		ImageURL:          strings.TrimSpace(body.ImageURL),
		ImageBase64:       strings.TrimSpace(body.ImageBase64),
		Weather:           body.Weather,
		WeatherText:       body.WeatherSummary,
		Lat:               body.Lat,
		Lon:               body.Lon,
		Location:          body.Location,
		StylePreset:       body.StylePreset,
		RecommendedItems:  body.RecommendedItems,
		PreferredLanguage: body.PreferredLanguage,
		ColorPreferences:  body.ColorPreferences,
		BodyNotes:         body.BodyNotes,
	}, nil
}

func (h *Handler) parsePhotoMultipart(c *gin.Context) (styling.RawInput, error) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return styling.RawInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid multipart form", err)
	}

	in := styling.RawInput{
		ImageURL:          strings.TrimSpace(c.PostForm("imageUrl")),
		StylePreset:       c.PostForm("stylePreset"),
		RecommendedItems:  splitList(c.PostForm("recommendedItems")),
		PreferredLanguage: c.PostForm("preferredLanguage"),
		ColorPreferences:  splitList(c.PostForm("colorPreferences")),
		BodyNotes:         c.PostForm("bodyNotes"),
		WeatherText:       c.PostForm("weatherSummary"),
		Location:          c.PostForm("weatherLocation"),
		WeatherFields: &styling.WeatherFields{
			Temp:        strings.TrimSpace(c.PostForm("weatherTemp")),
			FeelsLike:   strings.TrimSpace(c.PostForm("weatherFeelsLike")),
			Humidity:    strings.TrimSpace(c.PostForm("weatherHumidity")),
			WindSpeed:   strings.TrimSpace(c.PostForm("weatherWindSpeed")),
			Description: c.PostForm("weatherDescription"),
			Main:        c.PostForm("weatherMain"),
			Location:    c.PostForm("weatherLocation"),
			Icon:        c.PostForm("weatherIcon"),
		},
	}

	var err error
	if in.Lat, err = optionalFloat(c.PostForm("lat"), "lat"); err != nil {
		return in, err
	}
	if in.Lon, err = optionalFloat(c.PostForm("lon"), "lon"); err != nil {
		return in, err
	}

	file, header, err := c.Request.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return in, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid image file", err)
	default:
		defer file.Close()
		data, mimeType, err := readUpload(file, header)
		if err != nil {
			return in, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid image file", err)
		}
		in.ImageBytes = data
		in.ImageMIME = mimeType
	}
	return in, nil
}

func readUpload(file multipart.File, header *multipart.FileHeader) ([]byte, string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

func optionalFloat(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, field+" must be a number", err)
	}
	return &v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
