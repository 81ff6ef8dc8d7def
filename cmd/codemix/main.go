// Command codemix analyzes text, records corrections and manages
// dictionaries from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codemix/internal/bootstrap"
	"codemix/internal/core/version"
	"codemix/internal/platform/config"
	"codemix/internal/platform/logger"
	analyzemod "codemix/internal/services/analyze/module"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "codemix",
	Short:         "Language identification for code mixed and romanized Indic text",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
}

func main() {
	rootCmd.Version = version.Info("codemix").String()

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dictCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("log-level", "warn", "log level written to stderr")
	pf.String("tuning", "", "TOML tuning file, overrides CORE_ANALYZE_TUNING_FILE")
	pf.String("dict-dir", "", "dictionary directory, overrides CORE_ANALYZE_DICTIONARY_DIR")
	pf.String("oracle", "", "oracle kind, overrides CORE_ORACLE_KIND")
	pf.Bool("events", false, "ship decision events to ClickHouse when configured")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// setup points logs at stderr and applies the color mode
func setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	opts := logger.FromEnv()
	opts.Writer = os.Stderr
	if _, set := os.LookupEnv("LOG_LEVEL"); !set || pf.Changed("log-level") {
		opts.Level, _ = pf.GetString("log-level")
	}
	logger.Init(opts)

	mode, _ := pf.GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

// openEngine builds the engine the way the API does, with flag overrides
func openEngine(ctx context.Context, cmd *cobra.Command) (*bootstrap.Engine, error) {
	pf := cmd.Root().PersistentFlags()
	tuning, _ := pf.GetString("tuning")
	dir, _ := pf.GetString("dict-dir")
	orc, _ := pf.GetString("oracle")
	events, _ := pf.GetBool("events")

	return bootstrap.Open(ctx, config.New(), bootstrap.Overrides{
		Analyze: analyzemod.Options{
			TuningFile:    tuning,
			DictionaryDir: dir,
			OracleKind:    orc,
		},
		NoEvents: !events,
	})
}

// closeEngine saves the learning cache, also after an interrupt. A
// failure is reported but does not change the command result.
func closeEngine(ctx context.Context, e *bootstrap.Engine) {
	if err := e.Close(context.WithoutCancel(ctx)); err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("warning:"), "close:", err)
	}
}
