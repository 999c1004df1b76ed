package styling

import (
	"context"
	"encoding/base64"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/weatherstyle/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
	"github.com/yanqian/weatherstyle/pkg/metrics"
)

// ErrProviderNotConfigured marks a missing AI credential.
var ErrProviderNotConfigured = errors.New("AI provider is not configured")

// ChatClient is the subset of the chat completion API the vision backend uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ImageClient is the subset of the image generation API the image backend uses.
type ImageClient interface {
	CreateImage(ctx context.Context, req chatgpt.ImageRequest) (chatgpt.ImageResponse, error)
}

// TokenCounter estimates prompt size.
type TokenCounter interface {
	Count(text string) int
}

// Outcome is what a stylist produced for one request.
type Outcome struct {
	Result Result
	Model  string
	Usage  *metrics.TokenUsage
}

// Stylist turns a normalized request into a styling result.
type Stylist interface {
	Backend() string
	Style(ctx context.Context, req Request) (Outcome, error)
}

// VisionStylist sends the photo to a vision capable chat model and parses the
// rich outfit breakdown from its JSON answer.
type VisionStylist struct {
	cfg     Config
	client  ChatClient
	prompts PromptSource
	counter TokenCounter
	now     func() time.Time
}

// NewVisionStylist wires the vision backend. A nil client behaves as an
// unreachable provider.
func NewVisionStylist(cfg Config, client ChatClient, prompts PromptSource, counter TokenCounter) *VisionStylist {
	return &VisionStylist{cfg: cfg, client: client, prompts: prompts, counter: counter, now: time.Now}
}

// Backend reports the vision backend name.
func (v *VisionStylist) Backend() string { return BackendVision }

// Style renders both prompts with one timestamp, attaches the photo and parses
// the JSON outfit answer.
func (v *VisionStylist) Style(ctx context.Context, req Request) (Outcome, error) {
	if v.client == nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", ErrProviderNotConfigured)
	}
	tpl, err := v.prompts.Templates(ctx)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodePromptError, "failed to load prompt templates", err)
	}
	now := v.now()
	system, err := BuildPrompt(tpl.System, req, now, v.cfg.CountryCode)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodePromptError, "failed to build system prompt", err)
	}
	user, err := BuildPrompt(tpl.User, req, now, v.cfg.CountryCode)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodePromptError, "failed to build user prompt", err)
	}

	completion, err := v.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: v.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: system},
			{Role: "user", Parts: []chatgpt.ContentPart{
				chatgpt.TextPart(user),
				chatgpt.ImagePart(req.ImageURL),
			}},
		},
		Temperature:    v.cfg.Temperature,
		MaxTokens:      v.cfg.MaxTokens,
		ResponseFormat: &chatgpt.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", err)
	}
	if len(completion.Choices) == 0 {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", errors.New("no choices returned"))
	}

	outfit, err := parseOutfit(completion.Choices[0].Message.Content)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", err)
	}
	return Outcome{
		Result: Result{Outfit: &outfit},
		Model:  v.cfg.Model,
		Usage:  usageFor(v.counter, completion.Usage, system, user),
	}, nil
}

// parseOutfit decodes the model answer, tolerating a fenced code block.
func parseOutfit(content string) (Outfit, error) {
	body := stripCodeFence(content)
	if body == "" {
		return Outfit{}, errors.New("empty AI response")
	}
	var outfit Outfit
	if err := json.Unmarshal([]byte(body), &outfit); err != nil {
		return Outfit{}, errors.New("AI response is not valid styling JSON: " + err.Error())
	}
	if strings.TrimSpace(outfit.OutfitSummary) == "" && len(outfit.Items) == 0 {
		return Outfit{}, errors.New("AI response has neither outfitSummary nor items")
	}
	return outfit, nil
}

func stripCodeFence(content string) string {
	body := strings.TrimSpace(content)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		body = body[newline+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

// ImageStylist is the legacy backend: it asks an image model to render the
// styled look and returns the reduced result shape.
type ImageStylist struct {
	cfg     Config
	client  ImageClient
	prompts PromptSource
	storage ObjectStorage
	counter TokenCounter
	now     func() time.Time
	newID   func() string
}

// NewImageStylist wires the image backend. Generated images returned as
// base64 are stored through storage.
func NewImageStylist(cfg Config, client ImageClient, prompts PromptSource, storage ObjectStorage, counter TokenCounter) *ImageStylist {
	return &ImageStylist{
		cfg:     cfg,
		client:  client,
		prompts: prompts,
		storage: storage,
		counter: counter,
		now:     time.Now,
		newID:   newObjectID,
	}
}

// Backend reports the image backend name.
func (s *ImageStylist) Backend() string { return BackendImage }

// Style asks the image model for a rendered look and returns its URL.
func (s *ImageStylist) Style(ctx context.Context, req Request) (Outcome, error) {
	if s.client == nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", ErrProviderNotConfigured)
	}
	tpl, err := s.prompts.Templates(ctx)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodePromptError, "failed to load prompt templates", err)
	}
	prompt, err := BuildPrompt(tpl.Image, req, s.now(), s.cfg.CountryCode)
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodePromptError, "failed to build image prompt", err)
	}

	resp, err := s.client.CreateImage(ctx, chatgpt.ImageRequest{
		Model:  s.cfg.ImageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	})
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", err)
	}
	imageURL, err := s.imageReference(ctx, resp)
	if err != nil {
		return Outcome{}, err
	}

	cond := req.Conditions()
	look := GeneratedLook{
		GeneratedImageURL: imageURL,
		Style:             string(req.StylePreset),
		Summary:           lookSummary(req.StylePreset, cond),
		CareTips:          defaultCareTips(),
	}
	return Outcome{
		Result: Result{Look: &look},
		Model:  s.cfg.ImageModel,
		Usage:  usageFor(s.counter, resp.Usage, prompt),
	}, nil
}

func (s *ImageStylist) imageReference(ctx context.Context, resp chatgpt.ImageResponse) (string, error) {
	if len(resp.Data) == 0 {
		return "", apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", errors.New("no image returned"))
	}
	first := resp.Data[0]
	if url := strings.TrimSpace(first.URL); url != "" {
		return url, nil
	}
	if strings.TrimSpace(first.B64JSON) == "" {
		return "", apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", errors.New("image has neither url nor b64_json"))
	}
	data, err := base64.StdEncoding.DecodeString(first.B64JSON)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUpstreamError, "AI styling analysis failed", err)
	}
	if s.storage == nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to store generated image", errors.New("object storage is not configured"))
	}
	key := path.Join("generated", s.newID()+".png")
	if _, err := s.storage.Put(ctx, key, data, "image/png"); err != nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to store generated image", err)
	}
	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "failed to store generated image", err)
	}
	return url, nil
}

// usageFor prefers provider-reported usage and falls back to a local
// estimate of the prompt size.
func usageFor(counter TokenCounter, reported *chatgpt.Usage, prompts ...string) *metrics.TokenUsage {
	if reported != nil && reported.TotalTokens > 0 {
		return &metrics.TokenUsage{
			PromptTokens:     reported.PromptTokens,
			CompletionTokens: reported.CompletionTokens,
			TotalTokens:      reported.TotalTokens,
		}
	}
	if counter == nil {
		return nil
	}
	total := 0
	for _, p := range prompts {
		total += counter.Count(p)
	}
	if total == 0 {
		return nil
	}
	return &metrics.TokenUsage{PromptTokens: total, TotalTokens: total, Estimated: true}
}
