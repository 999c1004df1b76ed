package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/internal/infra/config"
	"github.com/yanqian/weatherstyle/internal/infra/storage"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func uploadInput() styling.RawInput {
	return styling.RawInput{
		ImageBytes: []byte("\xff\xd8\xff\xe0photo"),
		Weather:    &weather.Weather{Temperature: 12, Main: "Clouds", Location: "Seoul"},
	}
}

func TestProvideObjectStorageWithoutBucketFailsUploads(t *testing.T) {
	cases := map[string]config.StorageConfig{
		"not configured": {Driver: config.StorageDriverR2},
		"invalid endpoint": {
			Driver:   config.StorageDriverR2,
			Endpoint: "https://not a host",
			Bucket:   "photos",
		},
	}
	for name, storageCfg := range cases {
		t.Run(name, func(t *testing.T) {
			store := provideObjectStorage(&config.Config{Storage: storageCfg}, testLogger())
			require.Nil(t, store)

			builder := styling.NewBuilder(store, nil, "user-photos")
			_, err := builder.Build(context.Background(), uploadInput())
			require.True(t, apperrors.IsCode(err, apperrors.CodeUploadFailed))
		})
	}
}

func TestProvideObjectStorageMemoryDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverMemory, PublicBaseURL: "http://localhost:9000"}}
	store := provideObjectStorage(cfg, testLogger())
	require.IsType(t, &storage.MemoryStorage{}, store)

	req, err := styling.NewBuilder(store, nil, "user-photos").Build(context.Background(), uploadInput())
	require.NoError(t, err)
	require.Contains(t, req.ImageURL, "http://localhost:9000/user-photos/")
}

func TestPromptLoaderFallsBackWithoutStorage(t *testing.T) {
	loader := providePromptLoader(&config.Config{}, nil, testLogger())
	tpl, err := loader.Templates(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tpl.System)
	require.NotEmpty(t, tpl.User)
}
