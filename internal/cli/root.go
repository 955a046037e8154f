package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"LocalChat/internal/chatbot"
	"LocalChat/internal/config"
	"LocalChat/internal/memory"
	"LocalChat/internal/model"
	"LocalChat/internal/prompt"
	"LocalChat/internal/telemetry"
	"LocalChat/internal/transcript"
)

// NewRootCmd builds the localchat command. Running it with no subcommand
// starts an interactive chat session.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "localchat",
		Short: "Chat with a locally running language model",
		Long: `LocalChat is an interactive terminal chatbot backed by a locally
running Ollama model. It keeps a bounded window of recent conversation
turns and uses it to give the model context for each response.

In-session commands: /exit, /clear, /stats, /history, /help.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.StringP("model", "m", "llama3:latest", "Model specification (format: model:version)")
	flags.String("device", config.DeviceCPU, "Compute device the model runs on (cpu|gpu)")
	flags.IntP("window", "w", 5, "Conversation memory window size in turns")
	flags.Int("max-words", 100, "Per-message word cap before a turn is stored")
	flags.String("ollama-url", "http://localhost:11434", "Base URL of the Ollama server")
	flags.Float64("temperature", 0.7, "Sampling temperature")
	flags.Int("max-tokens", 128, "Maximum tokens per completion")
	flags.StringP("template", "t", "", "Path to a TOML prompt template")
	flags.BoolP("debug", "d", false, "Enable debug logging")

	config.SetDefaults(v)
	cobra.CheckErr(v.BindPFlags(flags))

	v.SetEnvPrefix("LOCALCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Optional config file: ~/.config/localchat/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(home + "/.config/localchat")
		_ = v.ReadInConfig()
	}

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runChat(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := telemetry.InitLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	ctx := cmd.Context()
	tracer, meter, cleanup, err := telemetry.InitTelemetry(ctx)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer cleanup()

	tmpl := prompt.Default()
	if cfg.Template != "" {
		tmpl, err = prompt.Load(cfg.Template)
		if err != nil {
			return fmt.Errorf("loading prompt template: %w", err)
		}
	}

	gen, err := model.NewOllamaClient(cfg.OllamaURL, cfg.Model, cfg.Device,
		model.Options{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens},
		tracer, meter, logger)
	if err != nil {
		return fmt.Errorf("creating model client: %w", err)
	}

	store, err := transcript.Open(logger)
	if err != nil {
		return fmt.Errorf("opening transcript store: %w", err)
	}
	defer store.Close()

	window := memory.NewWindow(cfg.WindowSize, cfg.MaxWords)

	bot, err := chatbot.New(gen, window, tmpl, store, logger, meter, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating chatbot: %w", err)
	}

	logger.Info("session starting",
		"session_id", bot.SessionID(),
		"model", cfg.Model,
		"device", cfg.Device,
		"window", cfg.WindowSize,
	)

	return bot.Run(ctx)
}
