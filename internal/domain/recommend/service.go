package recommend

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

// Service exposes rule-based style and activity recommendations.
type Service interface {
	Styles(ctx context.Context, req Request) (StyleResponse, error)
	Activities(ctx context.Context, req Request) (ActivityResponse, error)
}

type service struct {
	logger *slog.Logger
}

// NewService wires the recommendation domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "recommend.service")}
}

func (s *service) Styles(_ context.Context, req Request) (StyleResponse, error) {
	if err := validate(req); err != nil {
		return StyleResponse{}, err
	}
	recs := RecommendStyles(*req.Weather, *req.Preferences)
	s.logger.Info("style recommendations built",
		"temperature", req.Weather.Temperature,
		"condition", req.Weather.Main,
		"count", len(recs),
	)
	return StyleResponse{Recommendations: recs}, nil
}

func (s *service) Activities(_ context.Context, req Request) (ActivityResponse, error) {
	if err := validate(req); err != nil {
		return ActivityResponse{}, err
	}
	recs := RecommendActivities(*req.Weather, *req.Preferences)
	s.logger.Info("activity recommendations built",
		"temperature", req.Weather.Temperature,
		"condition", req.Weather.Main,
		"count", len(recs),
	)
	return ActivityResponse{Recommendations: recs}, nil
}

func validate(req Request) error {
	if req.Weather == nil || req.Preferences == nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "weather and preferences are required", nil)
	}
	return nil
}
