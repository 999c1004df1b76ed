package styling

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
	"github.com/yanqian/weatherstyle/pkg/metrics"
	"github.com/yanqian/weatherstyle/pkg/util"
)

// Service exposes photo based styling.
type Service interface {
	Analyze(ctx context.Context, in RawInput) (Response, error)
	QuickPreview(ctx context.Context, imageURL string) (PreviewResponse, error)
	QuickAnalysis(ctx context.Context, req QuickAnalysisRequest) (QuickAnalysisResponse, error)
}

type service struct {
	cfg     Config
	builder *Builder
	stylist Stylist
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires the styling domain.
func NewService(cfg Config, builder *Builder, stylist Stylist, logger *slog.Logger) Service {
	if cfg.Mode == "" {
		cfg.Mode = ModeStrict
	}
	return &service{
		cfg:     cfg,
		builder: builder,
		stylist: stylist,
		logger:  logger.With("component", "styling.service"),
		now:     util.NowUTC,
		newID:   newObjectID,
	}
}

// Analyze builds the request and runs the configured stylist. Validation and
// upload errors always surface. Stylist errors surface in strict mode and are
// replaced by the dummy result in best_effort mode.
func (s *service) Analyze(ctx context.Context, in RawInput) (Response, error) {
	req, err := s.builder.Build(ctx, in)
	if err != nil {
		if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			s.logger.Error("styling request build failed", "error", err)
		}
		return Response{}, err
	}

	meta := Metadata{
		OriginalImageURL:  req.ImageURL,
		Weather:           req.Weather,
		WeatherSummary:    req.Summary,
		Location:          req.Location,
		RecommendedItems:  req.RecommendedItems,
		StylePreset:       req.StylePreset,
		PreferredLanguage: req.PreferredLanguage,
		Backend:           s.stylist.Backend(),
	}

	started := s.now()
	outcome, err := s.stylist.Style(ctx, req)
	if err != nil {
		if s.cfg.Mode != ModeBestEffort {
			s.logger.Error("styling failed", "backend", s.stylist.Backend(), "error", err)
			return Response{}, err
		}
		s.logger.Warn("styling failed, serving fallback result", "backend", s.stylist.Backend(), "error", err)
		metrics.FallbacksServed.WithLabelValues("styling").Inc()
		outcome = Outcome{Result: dummyResult(s.stylist.Backend(), req)}
		meta.Fallback = true
	}

	meta.Model = outcome.Model
	meta.TokenUsage = outcome.Usage
	meta.Timestamp = s.now().Format(time.RFC3339)
	s.logger.Info("styling completed",
		"backend", s.stylist.Backend(),
		"preset", req.StylePreset,
		"fallback", meta.Fallback,
		"duration", s.now().Sub(started),
	)
	return Response{Success: true, Data: outcome.Result, Metadata: meta}, nil
}
