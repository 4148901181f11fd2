package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"imagepdf/internal/config"
)

type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string

	cfg *config.Config
}

// NewRootCommand builds the imagepdf command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "imagepdf",
		Short:         "Combine images into a size-limited PDF",
		Long:          `imagepdf places each image on its own page and compresses them so the document stays under a size limit.`,
		Version:       "dev",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			switch {
			case opts.quiet:
				level = "error"
			case opts.verbose:
				level = "debug"
			}
			cfg.Logger = config.NewLogger(level, cfg.LogFormat, cmd.ErrOrStderr())
			slog.SetDefault(cfg.Logger)

			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug level)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "quiet output (errors only)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML file with defaults and compression policy")

	root.AddCommand(newConvertCommand(opts))
	root.AddCommand(newFormatsCommand())

	return root
}
