package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/digest"
	"github.com/agromatch/agromatch/internal/logger"
	"github.com/agromatch/agromatch/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address for the webhook server")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		zlog.Fatal("config is required")
	}

	zlog.Info("starting agromatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	st, driver, err := buildStore(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("setting up the record store", zap.Error(err))
	}

	notifier, channel, err := buildNotifier(config, zlog)
	if err != nil {
		zlog.Fatal("setting up the notifier", zap.Error(err))
	}

	zlog = logger.WithCommonFields(zlog, channel, driver)

	engine := buildEngine(ctx, config, zlog)
	bot := buildBot(st, notifier, engine, config, zlog)

	if config.Digest != nil && config.Digest.Enabled {
		svc := digest.New(st, notifier, engine, nil, zlog)
		if err := svc.Start(ctx, config.Digest.Schedule); err != nil {
			zlog.Fatal("scheduling the digest", zap.Error(err))
		}
		defer svc.Stop()
	}

	server := webhook.NewServer(config.Listen, bot, zlog)
	if err := server.Run(ctx); err != nil {
		zlog.Fatal("webhook server failed", zap.Error(err))
	}

	zlog.Info("shutdown complete")
}
