package chatgpt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "", time.Second)
	require.Error(t, err)
}

func TestMessageMarshalsPartsAsContentArray(t *testing.T) {
	msg := Message{Role: "user", Parts: []ContentPart{TextPart("describe"), ImagePart("https://img.example/a.jpg")}}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"user","content":[{"type":"text","text":"describe"},{"type":"image_url","image_url":{"url":"https://img.example/a.jpg"}}]}`, string(raw))

	raw, err = json.Marshal(Message{Role: "system", Content: "be brief"})
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"system","content":"be brief"}`, string(raw))
}

func TestCreateChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		require.Equal(t, "gpt-4o", decoded["model"])
		require.EqualValues(t, 2000, decoded["max_tokens"])
		require.Equal(t, map[string]any{"type": "json_object"}, decoded["response_format"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"style\":\"casual\"}"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:          "gpt-4o",
		Messages:       []Message{{Role: "user", Parts: []ContentPart{TextPart("hi")}}},
		MaxTokens:      2000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"style":"casual"}`, resp.Choices[0].Message.Content)
	require.NotNil(t, resp.Usage)
	require.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCreateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"aGVsbG8="}]}`))
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateImage(context.Background(), ImageRequest{Model: "gpt-image-1", Prompt: "outfit"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "aGVsbG8=", resp.Data[0].B64JSON)
}

func TestCreateChatCompletionSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-4o"})
	require.ErrorContains(t, err, "status=401")
}
