package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"leafcare/internal/config"
	"leafcare/internal/handler"
	"leafcare/internal/kb"
	"leafcare/internal/llm"
	"leafcare/internal/recommend"
	"leafcare/internal/server"
)

type App struct {
	catalog *kb.Catalog
	matcher *kb.CachedMatcher
	client  llm.Client
	engine  *recommend.Engine
	server  *server.Server
	logger  *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Knowledge base
	catalog, err := kb.Load(cfg.KB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	matcher, err := kb.NewCachedMatcher(catalog, cfg.KB.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build kb matcher: %w", err)
	}

	// Generative backend (optional)
	client, err := llm.New(ctx, cfg.LLM, logger.Named("llm"))
	if err != nil {
		return nil, fmt.Errorf("failed to init generative client: %w", err)
	}
	var synth *recommend.Synthesizer
	if client != nil {
		synth = recommend.NewSynthesizer(client, cfg.LLM.Timeout)
		logger.Info("generative recommendations enabled", zap.String("provider", client.Name()))
	} else {
		logger.Info("generative recommendations disabled; serving knowledge base fallback")
	}
	engine := recommend.NewEngine(matcher, synth, logger.Named("recommend"))

	// Routing & Server
	mux := server.NewMux(
		handler.NewRecommendHandler(engine, logger.Named("http")),
		handler.NewKBHandler(catalog, matcher),
		handler.NewHealthHandler(engine),
	)
	srv := server.New(cfg.Port, mux, logger)

	return &App{
		catalog: catalog,
		matcher: matcher,
		client:  client,
		engine:  engine,
		server:  srv,
		logger:  logger,
	}, nil
}

func (a *App) Engine() *recommend.Engine { return a.engine }

func (a *App) Catalog() *kb.Catalog { return a.catalog }

func (a *App) Matcher() kb.Matcher { return a.matcher }

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(a.server.Shutdown(ctx), a.Close())
}

// Close releases the generative client. It is safe to call when the HTTP
// server was never started.
func (a *App) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}
