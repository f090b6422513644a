package main

import (
	"context"
	"net/http"

	_ "github.com/studyoverflow/gateway/docs" // swagger docs

	"github.com/studyoverflow/gateway/internal/api"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/infrastructure/config"
	"github.com/studyoverflow/gateway/internal/infrastructure/session"
	"github.com/studyoverflow/gateway/internal/infrastructure/upstream"
	"github.com/studyoverflow/gateway/internal/notify"
	"github.com/studyoverflow/gateway/pkg/logger"
)

// @title StudyOverflow Gateway API
// @version 1.0
// @description JSON surface of the StudyOverflow forum gateway: votes, favorites, and reports.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	rdb, err := session.Connect(context.Background(), session.RedisConfig{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	tokens := session.NewTokenStore(rdb, cfg.Session.TTL)
	codec := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	inflight := session.NewInflightGuard(rdb)
	bus := notify.NewBus()

	client := upstream.New(
		cfg.Upstream.BaseURL,
		&http.Client{Timeout: cfg.Upstream.Timeout},
		tokens,
		bus,
		logger.Component("upstream"),
	)

	hooks := service.NewFactory(service.FactoryDeps{
		Auth:      upstream.NewAuthClient(client),
		Questions: upstream.NewQuestionClient(client),
		Answers:   upstream.NewAnswerClient(client),
		Votes:     upstream.NewVoteClient(client),
		Favorites: upstream.NewFavoriteClient(client),
		Reports:   upstream.NewReportClient(client),
		Taxonomy:  upstream.NewTaxonomyClient(client),
		Admin:     upstream.NewAdminClient(client),
		Tokens:    tokens,
		Log:       logger.Component("hooks"),
	})

	e := api.NewRouter(api.RouterDeps{
		Hooks:    hooks,
		Bus:      bus,
		Codec:    codec,
		Inflight: inflight,
		Redis:    rdb,
		Upstream: client,
	})

	log.Info().
		Str("port", cfg.Port).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("gateway listening")

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
