package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/dialog"
	"github.com/agromatch/agromatch/internal/gemini"
	"github.com/agromatch/agromatch/internal/matching"
	"github.com/agromatch/agromatch/internal/notify"
	"github.com/agromatch/agromatch/internal/secrets"
	"github.com/agromatch/agromatch/internal/store"
	"github.com/agromatch/agromatch/internal/texts"
)

// buildStore resolves the configured record store. The driver name comes
// back for logging.
func buildStore(ctx context.Context, config *Config, logger *zap.Logger) (store.Store, string, error) {
	driver := "file"
	dataDir := "data"
	if config.Store != nil {
		if config.Store.Driver != "" {
			driver = config.Store.Driver
		}
		if config.Store.DataDir != "" {
			dataDir = config.Store.DataDir
		}
	}

	if driver == "redis" {
		st, err := store.NewRedisStore(ctx, config.Store.RedisURL)
		if err != nil {
			return nil, driver, err
		}
		return st, driver, nil
	}

	st, err := store.NewFileStore(dataDir)
	if err != nil {
		return nil, driver, err
	}
	return st, driver, nil
}

// buildNotifier returns the Twilio notifier when credentials are
// configured and the log-only notifier otherwise.
func buildNotifier(config *Config, logger *zap.Logger) (notify.Notifier, string, error) {
	tw := config.Twilio
	if tw == nil || tw.AccountSID == "" || tw.From == "" {
		return notify.NewLogNotifier(logger), "log", nil
	}

	token, err := secrets.Load(secrets.Source{
		Name:  "twilio auth token",
		Value: tw.AuthToken,
		File:  tw.AuthTokenFile,
	})
	if err != nil {
		return nil, "twilio", err
	}

	return notify.NewTwilioNotifier(tw.AccountSID, token, tw.From, logger), "twilio", nil
}

// buildEngine wires the optional Gemini strategy in front of the
// rule-based matcher. Any setup failure degrades to rules-only matching.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) *matching.Engine {
	var strategy matching.Strategy

	if config.AI != nil && config.AI.Enabled && config.AI.Gemini != nil {
		gcfg := config.AI.Gemini
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gcfg.APIKey,
			File:  gcfg.APIKeyFile,
		})
		if err != nil {
			logger.Warn("gemini api key unavailable, using rule-based matching only", zap.Error(err))
		} else {
			generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model)
			if err != nil {
				logger.Warn("gemini client setup failed, using rule-based matching only", zap.Error(err))
			} else {
				strategy = gemini.NewStrategy(generator, logger, gcfg.MaxRetries)
				logger.Info("gemini matching strategy enabled", zap.String("model", generator.Model()))
			}
		}
	}

	return matching.NewEngine(strategy, logger)
}

func buildBot(st store.Store, notifier notify.Notifier, engine *matching.Engine, config *Config, logger *zap.Logger) *dialog.Bot {
	return dialog.New(dialog.Deps{
		Store:            st,
		Notifier:         notifier,
		Texts:            texts.NewCatalog(),
		Engine:           engine,
		Logger:           logger,
		SequentialReview: config.SequentialReview,
	})
}
