package main

import (
	"fmt"

	"job-assistant/internal/assistant"
	"job-assistant/internal/common/config"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/observability"
	"job-assistant/internal/jobsource"
	"job-assistant/internal/nlp/entity"

	"go.uber.org/zap"
)

// app holds what every subcommand needs.
type app struct {
	cfg    *config.Config
	zap    *zap.Logger
	log    logger.Logger
	obs    *observability.Observability
	source jobsource.Source
	closer []func() error
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

func newApp(configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	return &app{
		cfg: cfg,
		zap: zapLog,
		log: logger.NewZapAdapter(zapLog).With(map[string]interface{}{
			"service": cfg.App.Name,
		}),
	}, nil
}

// buildAssistant trains the classifier and opens the configured job source.
func (a *app) buildAssistant(src jobsource.Source) (*assistant.Assistant, error) {
	model, err := assistant.TrainModel(a.cfg.NLP, a.log)
	if err != nil {
		return nil, fmt.Errorf("train intent model: %w", err)
	}

	rec, err := assistant.BuildRecognizer(a.cfg.NLP)
	if err != nil {
		return nil, fmt.Errorf("build entity recognizer: %w", err)
	}

	if src == nil {
		s, closeFn, err := jobsource.New(a.cfg, a.log)
		if err != nil {
			return nil, fmt.Errorf("open job source: %w", err)
		}
		a.closer = append(a.closer, closeFn)
		src = s
	}
	a.source = src

	var opts []assistant.Option
	if a.obs != nil {
		opts = append(opts, assistant.WithObservability(a.obs))
	}
	return assistant.New(model, entity.NewExtractor(rec), src, a.log, opts...), nil
}

func (a *app) Close() {
	for i := len(a.closer) - 1; i >= 0; i-- {
		if err := a.closer[i](); err != nil {
			a.log.Warn("close failed", map[string]interface{}{"error": err})
		}
	}
	a.obs.Shutdown()
	_ = a.zap.Sync()
}
