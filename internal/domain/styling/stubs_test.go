package styling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/internal/infra/llm/chatgpt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	mimes   map[string]string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, mimes: map[string]string{}}
}

func (f *fakeStorage) Put(_ context.Context, key string, data []byte, mimeType string) (StoredObject, error) {
	if f.putErr != nil {
		return StoredObject{}, f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.mimes[key] = mimeType
	return StoredObject{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (f *fakeStorage) URL(_ context.Context, key string) (string, error) {
	return "https://storage.test/" + key, nil
}

func (f *fakeStorage) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	return out
}

type fakeLookup struct {
	calls int
	w     weather.Weather
}

func (f *fakeLookup) Snapshot(_ context.Context, lat, lon float64) weather.Snapshot {
	f.calls++
	w := f.w
	w.Location = fmt.Sprintf("%.2f,%.2f", lat, lon)
	return weather.Snapshot{Current: w}
}

type staticPrompts struct {
	tpl Templates
	err error
}

func (s staticPrompts) Templates(context.Context) (Templates, error) {
	return s.tpl, s.err
}

type stubChat struct {
	content string
	usage   *chatgpt.Usage
	err     error
	last    chatgpt.ChatCompletionRequest
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.last = req
	var resp chatgpt.ChatCompletionResponse
	if s.err != nil {
		return resp, s.err
	}
	resp.Choices = append(resp.Choices, struct {
		Message chatgpt.Message `json:"message"`
	}{Message: chatgpt.Message{Role: "assistant", Content: s.content}})
	resp.Usage = s.usage
	return resp, nil
}

type stubImage struct {
	resp chatgpt.ImageResponse
	err  error
	last chatgpt.ImageRequest
}

func (s *stubImage) CreateImage(_ context.Context, req chatgpt.ImageRequest) (chatgpt.ImageResponse, error) {
	s.last = req
	return s.resp, s.err
}

type wordCounter struct{}

func (wordCounter) Count(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

var errBoom = errors.New("boom")

const validOutfitJSON = `{
  "imageUrl": "https://img.test/styled.jpg",
  "style": "smart_casual",
  "weatherTag": "cool, rainy",
  "palette": ["navy", "grey"],
  "materials": ["wool"],
  "outfitSummary": "레인코트와 울 니트 조합",
  "items": [{"category": "outer", "name": "레인코트", "color": "navy", "fit": "regular", "notes": "방수"}],
  "whyItWorks": ["비를 막아줌"],
  "careTips": ["그늘 건조"],
  "alternatives": [{"swap": "outer → 트렌치", "when": "비가 그치면"}]
}`
