package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "agromatch"
)

type Config struct {
	Listen           string        `mapstructure:"listen"`
	DefaultLanguage  string        `mapstructure:"default-language"`
	SequentialReview bool          `mapstructure:"sequential-review"`
	Store            *StoreConfig  `mapstructure:"store"`
	Twilio           *TwilioConfig `mapstructure:"twilio"`
	AI               *AIConfig     `mapstructure:"ai"`
	Digest           *DigestConfig `mapstructure:"digest"`
}

type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	DataDir  string `mapstructure:"data-dir"`
	RedisURL string `mapstructure:"redis-url"`
}

type TwilioConfig struct {
	AccountSID    string `mapstructure:"account-sid"`
	AuthToken     string `mapstructure:"auth-token"`
	AuthTokenFile string `mapstructure:"auth-token-file"`
	From          string `mapstructure:"from"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type DigestConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "agromatch is a conversational service matching farm workers with farm owners over text messaging",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("twilio.auth-token", "TWILIO_AUTH_TOKEN"); err != nil {
		log.Fatalf("binding TWILIO_AUTH_TOKEN environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is agromatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("default-language", "en")
	viper.SetDefault("store.driver", "file")
	viper.SetDefault("store.data-dir", "data")
	viper.SetDefault("digest.schedule", "@every 1h")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The service runs fine on defaults; only an explicitly named
		// config file must parse.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
