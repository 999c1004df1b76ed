//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weatherstyle/internal/bootstrap"
	"github.com/yanqian/weatherstyle/internal/domain/recommend"
	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/internal/infra/config"
	httpiface "github.com/yanqian/weatherstyle/internal/interface/http"
	"github.com/yanqian/weatherstyle/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideWeatherProvider,
		provideWeatherCache,
		provideChatClient,
		provideObjectStorage,
		providePromptLoader,
		provideTokenCounter,
		provideStylingConfig,
		provideBuilder,
		provideStylist,
		weather.NewService,
		recommend.NewService,
		styling.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
