package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"localllmui/internal/config"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	envFile    string
	addr       string
	model      string
	ollamaHost string
	probe      string
	logLevel   string
}

// newRootCmd builds the command tree. getenv is usually os.Getenv.
func newRootCmd(getenv func(string) string) *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "localllmui",
		Short:         "Serve a chat page backed by a local Ollama model",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, getenv)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&f.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment; missing is fine")
	pf.StringVar(&f.addr, "addr", "", "HTTP listen address (default :5000)")
	pf.StringVar(&f.model, "model", "", "Model identifier (default "+config.DefaultModel+")")
	pf.StringVar(&f.ollamaHost, "ollama-host", "", "Ollama base URL (defaults OLLAMA_HOST or http://127.0.0.1:11434)")
	pf.StringVar(&f.probe, "probe", "", "Presence probe: api|cli")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Provision the model and start the web server (default)",
		Args:  cobra.NoArgs,
		RunE:  root.RunE,
	}
	root.AddCommand(serveCmd, newCheckCmd(f, getenv), newVersionCmd())
	return root
}

// loadConfig resolves configuration with precedence defaults < file < env < flags.
func loadConfig(cmd *cobra.Command, f *rootFlags, getenv func(string) string) (config.Config, error) {
	if err := config.LoadDotEnv(f.envFile); err != nil {
		return config.Config{}, err
	}
	cfg := config.Defaults()
	if f.configPath != "" {
		fileCfg, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg.ApplyDefaults()
		cfg = fileCfg
	}
	cfg.ApplyEnv(getenv)

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("addr", &cfg.Addr, f.addr)
	set("model", &cfg.Model, f.model)
	set("ollama-host", &cfg.OllamaHost, f.ollamaHost)
	set("probe", &cfg.Probe, f.probe)
	set("log-level", &cfg.LogLevel, f.logLevel)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "localllmui %s\n", version)
			return err
		},
	}
}
