package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/dialog"
	"github.com/agromatch/agromatch/internal/logger"
)

const (
	chatExitCommand       = "exit"
	chatAttachmentCommand = "/attach"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot from a local console instead of the messaging channel",
	Long: `chat runs the full conversation loop against the configured store
without a messaging provider. Outbound notifications are logged instead
of delivered. Type '/attach <url>' to simulate a message with a media
attachment and 'exit' to quit.`,
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("user", "u", "console:+10000000000", "sender id to converse as")
	viper.BindPFlag("chat-user", chatCmd.Flags().Lookup("user"))
}

func chat(_ *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	st, driver, err := buildStore(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("setting up the record store", zap.Error(err))
	}
	zlog.Info("console chat ready", zap.String("store", driver))

	notifier, _, err := buildNotifier(config, zlog)
	if err != nil {
		zlog.Fatal("setting up the notifier", zap.Error(err))
	}

	engine := buildEngine(ctx, config, zlog)
	bot := buildBot(st, notifier, engine, config, zlog)

	userID := viper.GetString("chat-user")
	fmt.Printf("Chatting as %s. Type 'exit' to quit.\n\n", userID)

	for {
		prompt := promptui.Prompt{Label: "you"}
		line, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			zlog.Fatal("reading input", zap.Error(err))
		}

		line = strings.TrimSpace(line)
		if line == chatExitCommand {
			return
		}

		in := dialog.Incoming{From: userID, Body: line}
		if rest, ok := strings.CutPrefix(line, chatAttachmentCommand+" "); ok {
			in.Body = ""
			in.Attachment = strings.TrimSpace(rest)
		}

		fmt.Printf("\n%s\n\n", bot.HandleMessage(ctx, in))
	}
}
