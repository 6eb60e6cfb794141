package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/web"
)

const (
	app       = "resume-analyzer"
	envPrefix = "RESUME_ANALYZER"
	envFile   = ".env"
)

type Config struct {
	AI    AIConfig    `mapstructure:"ai"`
	Serve ServeConfig `mapstructure:"serve"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=ollama gemini"`
	Model        string        `mapstructure:"model" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	Ollama       OllamaConfig  `mapstructure:"ollama"`
	Gemini       GeminiConfig  `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Host string `mapstructure:"host"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type ServeConfig struct {
	Listen         string `mapstructure:"listen" validate:"required,hostname_port"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes" validate:"gt=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer scores PDF and CSV resumes against a job title with a language model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "chat provider: ollama or gemini")
	rootCmd.PersistentFlags().StringP("model", "m", "", "model name passed to the provider (default depends on the provider)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("ai.model", rootCmd.PersistentFlags().Lookup("model"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.timeout", "0s")
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.ollama.host", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("serve.listen", "127.0.0.1:7860")
	v.SetDefault("serve.max-upload-bytes", web.DefaultMaxUploadBytes)
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading %s: %v", envFile, err)
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig wires environment overrides and reads the config file. Only an
// explicitly requested file is mandatory.
func readConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

// defaultModel picks the model for a provider when ai.model is not set.
func defaultModel(provider string) string {
	if provider == gemini.Provider {
		return gemini.DefaultModel
	}
	return analyzer.DefaultModel
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.AI.Model = strings.TrimSpace(config.AI.Model)
	if config.AI.Model == "" {
		config.AI.Model = defaultModel(config.AI.Provider)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
