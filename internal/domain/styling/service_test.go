package styling

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

func newTestService(mode string, chat ChatClient) Service {
	cfg := testConfig()
	cfg.Mode = mode
	builder := newTestBuilder(newFakeStorage(), nil)
	stylist := newTestVision(chat, staticPrompts{tpl: testTemplates})
	svc := NewService(cfg, builder, stylist, discardLogger()).(*service)
	svc.now = func() time.Time { return promptTime }
	svc.newID = func() string { return "11111111-2222-3333-4444-555555555555" }
	return svc
}

func validInput() RawInput {
	return RawInput{
		ImageURL:          "https://img.test/me.jpg",
		WeatherText:       "temperature : 18 C, main : Rain",
		StylePreset:       "outdoor",
		RecommendedItems:  []string{"바람막이"},
		PreferredLanguage: "en",
	}
}

func TestAnalyzeReturnsRichResult(t *testing.T) {
	svc := newTestService(ModeStrict, &stubChat{content: validOutfitJSON})

	resp, err := svc.Analyze(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.False(t, resp.Metadata.Fallback)
	require.Equal(t, "https://img.test/me.jpg", resp.Metadata.OriginalImageURL)
	require.Equal(t, PresetOutdoor, resp.Metadata.StylePreset)
	require.Equal(t, BackendVision, resp.Metadata.Backend)
	require.Equal(t, "2024-11-03T08:47:59Z", resp.Metadata.Timestamp)
	require.NotNil(t, resp.Metadata.WeatherSummary)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	data := decoded["data"].(map[string]any)
	require.Equal(t, "레인코트와 울 니트 조합", data["outfitSummary"])
}

func TestAnalyzeStrictModeSurfacesUpstreamErrors(t *testing.T) {
	svc := newTestService(ModeStrict, &stubChat{err: errBoom})
	_, err := svc.Analyze(context.Background(), validInput())
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamError))
}

func TestAnalyzeBestEffortServesDummyResult(t *testing.T) {
	svc := newTestService(ModeBestEffort, &stubChat{err: errBoom})
	resp, err := svc.Analyze(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.Metadata.Fallback)
	require.Equal(t, DummyOutfit(), *resp.Data.Outfit)
}

func TestAnalyzeBestEffortTreatsMissingCredentialsAsFailure(t *testing.T) {
	svc := newTestService(ModeBestEffort, nil)
	resp, err := svc.Analyze(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, resp.Metadata.Fallback)
}

func TestAnalyzeValidationErrorsSurfaceInEveryMode(t *testing.T) {
	for _, mode := range []string{ModeStrict, ModeBestEffort} {
		svc := newTestService(mode, &stubChat{content: validOutfitJSON})

		in := validInput()
		in.ImageURL = ""
		_, err := svc.Analyze(context.Background(), in)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), mode)
		require.Equal(t, MsgImageRequired, apperrors.MessageOf(err))

		in = validInput()
		in.WeatherText = ""
		_, err = svc.Analyze(context.Background(), in)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), mode)
		require.Equal(t, MsgWeatherRequired, apperrors.MessageOf(err))
	}
}

func TestDummyLookFollowsImageBackend(t *testing.T) {
	req := Request{StylePreset: PresetBusiness, Summary: &WeatherSummary{TempC: 5, Condition: "Snow"}}
	result := dummyResult(BackendImage, req)
	require.Nil(t, result.Outfit)
	require.Equal(t, DummyImageURL, result.Look.GeneratedImageURL)
	require.Equal(t, "business", result.Look.Style)
}

func TestResultMarshalsSelectedShape(t *testing.T) {
	raw, err := json.Marshal(Result{Look: &GeneratedLook{GeneratedImageURL: "u", Style: "casual"}})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"generatedImageUrl":"u"`)

	raw, err = json.Marshal(Result{})
	require.NoError(t, err)
	require.Equal(t, "null", string(raw))
}

func TestQuickPreview(t *testing.T) {
	svc := newTestService(ModeStrict, nil)

	_, err := svc.QuickPreview(context.Background(), "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	resp, err := svc.QuickPreview(context.Background(), "https://img.test/me.jpg")
	require.NoError(t, err)
	require.Equal(t, "average", resp.Data.BodyType)
	require.Equal(t, []string{"검은색", "흰색"}, resp.Data.DetectedColors)
	require.Equal(t, 0.7, resp.Data.ConfidenceScore)
	require.Equal(t, "basic", resp.Metadata.AnalysisType)
}

func TestQuickAnalysis(t *testing.T) {
	svc := newTestService(ModeStrict, nil)

	_, err := svc.QuickAnalysis(context.Background(), QuickAnalysisRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	resp, err := svc.QuickAnalysis(context.Background(), QuickAnalysisRequest{ImageBase64: "aGk="})
	require.NoError(t, err)
	require.Equal(t, "analysis_11111111-2222-3333-4444-555555555555", resp.Data.ID)
	require.Equal(t, "basic", resp.Data.AnalysisType)
	require.Equal(t, 0.75, resp.Data.ConfidenceScore)
	require.Equal(t, []string{"검은색", "흰색", "회색"}, resp.Data.DetectedColors)
	require.Equal(t, "basic_analysis_v1", resp.Metadata.AIModel)
}
