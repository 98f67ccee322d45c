package assistant

import (
	"job-assistant/internal/common/config"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"
)

// TrainModel trains on the configured intent table, or the built-in one
// when nlp.intents_path is empty.
func TrainModel(cfg config.NLPConfig, log logger.Logger) (*intent.Model, error) {
	table := intent.DefaultTable()
	if cfg.IntentsPath != "" {
		loaded, err := intent.LoadTable(cfg.IntentsPath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	model, err := intent.Train(table)
	if err != nil {
		return nil, err
	}

	log.Info("intent model trained", map[string]interface{}{
		"intents":    len(table),
		"vocabulary": model.VocabularySize(),
		"source":     tableSource(cfg.IntentsPath),
	})
	return model, nil
}

func tableSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

// BuildRecognizer chains the gazetteer (configured or built-in) with the
// statistical recognizer when enabled. Dictionary hits come first so
// they win overlaps.
func BuildRecognizer(cfg config.NLPConfig) (entity.Recognizer, error) {
	g := entity.DefaultGazetteer()
	if cfg.GazetteerPath != "" {
		loaded, err := entity.LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			return nil, err
		}
		g = loaded
	}

	recognizers := []entity.Recognizer{entity.NewGazetteerRecognizer(g)}
	if cfg.UseProse {
		recognizers = append(recognizers, entity.NewProseRecognizer())
	}
	return entity.Chain(recognizers...), nil
}
