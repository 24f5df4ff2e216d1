package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spigell/skill-gap/internal/cache"
	"github.com/spigell/skill-gap/internal/headhunter"
	"github.com/spigell/skill-gap/internal/matching"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "skill-gap"
	envPrefix = "SKILL_GAP"
)

type Config struct {
	VocabularyFile string           `mapstructure:"vocabulary-file"`
	Strategy       string           `mapstructure:"strategy"`
	Matching       matching.Config  `mapstructure:"matching"`
	Models         ModelsConfig     `mapstructure:"models"`
	Cache          CacheConfig      `mapstructure:"cache"`
	Headhunter     HeadhunterConfig `mapstructure:"headhunter"`
	Batch          BatchConfig      `mapstructure:"batch"`
}

type ModelsConfig struct {
	// Required makes a model failing at startup fatal instead of disabling
	// the strategies that need it.
	Required bool          `mapstructure:"required"`
	Embedder string        `mapstructure:"embedder"`
	Phrases  string        `mapstructure:"phrases"`
	Chunk    int           `mapstructure:"chunk-max-words"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	BatchSize      int    `mapstructure:"batch-size"`
}

type CacheConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Redis   cache.RedisConfig `mapstructure:",squash"`
}

type HeadhunterConfig struct {
	TokenFile string                   `mapstructure:"token-file"`
	UserAgent string                   `mapstructure:"user-agent"`
	Search    *headhunter.SearchParams `mapstructure:"search"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

func defaultConfig() *Config {
	return &Config{
		Strategy: string(matching.Hybrid),
		Matching: matching.DefaultConfig(),
		Models: ModelsConfig{
			Embedder: providerNone,
			Phrases:  providerBuiltin,
			Gemini:   &GeminiConfig{},
		},
		Cache: CacheConfig{
			Redis: cache.RedisConfig{Address: "localhost:6379", TTL: time.Hour},
		},
		Batch: BatchConfig{Concurrency: 4},
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-gap extracts technical skills from resumes and job descriptions and reports the gap between them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"headhunter.token-file":      "HH_TOKEN_FILE",
		"models.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"models.gemini.api-key":      "GEMINI_API_KEY",
	} {
		if err := viper.BindEnv(key, envPrefix+"_"+envName(key), env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-gap.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("strategy", "s", "", "matching strategy: exact, fuzzy, semantic, contextual or hybrid")
	rootCmd.PersistentFlags().String("vocabulary", "", "a vocabulary yaml file (default is the built-in vocabulary)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("strategy", rootCmd.PersistentFlags().Lookup("strategy"))
	viper.BindPFlag("vocabulary-file", rootCmd.PersistentFlags().Lookup("vocabulary"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := defaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	if config.Models.Gemini == nil {
		config.Models.Gemini = &GeminiConfig{}
	}
	if config.Strategy == "" {
		config.Strategy = string(matching.Hybrid)
	}

	return config, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}
