// Package cli provides the command-line interface for swatch.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/version"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"mode":      config.KeyMode,
	"count":     config.KeyCount,
	"reference": config.KeyReference,
	"format":    config.KeyFormat,
	"preview":   config.KeyPreview,
	"log-level": config.KeyLogLevel,
	"algorithm": config.KeyExtractAlgorithm,
	"colours":   config.KeyExtractMaxColours,
	"stride":    config.KeyExtractStride,
	"cache":     config.KeyExtractCache,
	"timeout":   config.KeyExtractTimeout,
}

// app holds the state shared by every command of one root command tree.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger hclog.Logger
	gen    *colour.Generator

	configFile string
	envFile    string
	verbose    bool
	quiet      bool
}

// NewRootCmd builds the swatch command tree. Each call returns an
// independent tree, so tests can execute commands in isolation.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:      config.NewViper(),
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Colour analysis and palette generation",
		Long: `Swatch parses colours in hex, rgb(), hsl() and CSS keyword form, converts
them between notations, measures hue, brightness, luminance and contrast,
generates harmony palettes, and extracts dominant colours from images.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/swatch/config.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading SWATCH_* variables")
	flags.StringP("format", "f", config.FormatText, "output format (text, json)")
	flags.String("preview", config.PreviewAuto, "show colour swatches (auto, always, never)")
	flags.Lookup("preview").NoOptDefVal = config.PreviewAlways
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error, off)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		a.newConvertCmd(),
		a.newAnalyzeCmd(),
		a.newPaletteCmd(),
		a.newRandomCmd(),
		a.newExtractCmd(),
		a.newModesCmd(),
		a.newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command with ctx, typically cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup binds the executing command's flags, loads configuration and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.Load(a.v, config.Options{ConfigFile: a.configFile, DotEnv: a.envFile})
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Level()
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = newLogger(cmd.ErrOrStderr(), level)
	a.gen = colour.NewGenerator(colour.WithLogger(a.logger.Named("generator")))

	a.logger.Debug("configuration loaded", "file", a.v.ConfigFileUsed(), "mode", cfg.Mode, "format", cfg.Format)
	return nil
}

func newLogger(w io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	})
}

// progress prints a status line to stderr unless --quiet is set.
func (a *app) progress(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
