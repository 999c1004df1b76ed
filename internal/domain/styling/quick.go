package styling

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

// BasicAnalysis is the fixed-shape preview returned without calling the AI.
type BasicAnalysis struct {
	ID              string   `json:"id,omitempty"`
	BodyType        string   `json:"bodyType"`
	SkinTone        string   `json:"skinTone"`
	EstimatedHeight int      `json:"estimatedHeight"`
	CurrentStyle    string   `json:"currentStyle"`
	DetectedColors  []string `json:"detectedColors"`
	ConfidenceScore float64  `json:"confidenceScore"`
	AnalysisType    string   `json:"analysisType,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
}

// PreviewMetadata accompanies a quick preview.
type PreviewMetadata struct {
	AnalysisType string `json:"analysisType"`
	Timestamp    string `json:"timestamp"`
}

// PreviewResponse is returned by GET /photo-analysis.
type PreviewResponse struct {
	Success  bool            `json:"success"`
	Data     BasicAnalysis   `json:"data"`
	Metadata PreviewMetadata `json:"metadata"`
}

// QuickAnalysisRequest is the body of POST /quick-analysis.
type QuickAnalysisRequest struct {
	ImageBase64  string `json:"imageBase64"`
	AnalysisType string `json:"analysisType"`
}

// QuickAnalysisMetadata accompanies a quick analysis.
type QuickAnalysisMetadata struct {
	ProcessingTime string `json:"processingTime"`
	AIModel        string `json:"aiModel"`
	Version        string `json:"version"`
}

// QuickAnalysisResponse is returned by POST /quick-analysis.
type QuickAnalysisResponse struct {
	Success  bool                  `json:"success"`
	Data     BasicAnalysis         `json:"data"`
	Metadata QuickAnalysisMetadata `json:"metadata"`
}

func (s *service) QuickPreview(_ context.Context, imageURL string) (PreviewResponse, error) {
	if strings.TrimSpace(imageURL) == "" {
		return PreviewResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Image URL is required", nil)
	}
	return PreviewResponse{
		Success: true,
		Data: BasicAnalysis{
			BodyType:        "average",
			SkinTone:        "medium",
			EstimatedHeight: 170,
			CurrentStyle:    "캐주얼",
			DetectedColors:  []string{"검은색", "흰색"},
			ConfidenceScore: 0.7,
		},
		Metadata: PreviewMetadata{
			AnalysisType: "basic",
			Timestamp:    s.now().Format(time.RFC3339),
		},
	}, nil
}

func (s *service) QuickAnalysis(_ context.Context, req QuickAnalysisRequest) (QuickAnalysisResponse, error) {
	if strings.TrimSpace(req.ImageBase64) == "" {
		return QuickAnalysisResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Image data is required", nil)
	}
	analysisType := strings.TrimSpace(req.AnalysisType)
	if analysisType == "" {
		analysisType = "basic"
	}
	return QuickAnalysisResponse{
		Success: true,
		Data: BasicAnalysis{
			ID:              "analysis_" + s.newID(),
			BodyType:        "average",
			SkinTone:        "medium",
			EstimatedHeight: 170,
			CurrentStyle:    "캐주얼",
			DetectedColors:  []string{"검은색", "흰색", "회색"},
			ConfidenceScore: 0.75,
			AnalysisType:    analysisType,
			Timestamp:       s.now().Format(time.RFC3339),
		},
		Metadata: QuickAnalysisMetadata{
			ProcessingTime: "0.1s",
			AIModel:        "basic_analysis_v1",
			Version:        "1.0.0",
		},
	}, nil
}
