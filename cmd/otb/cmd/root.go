package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBOM/internal/config"
	"github.com/OpenTraceLab/OpenTraceBOM/internal/logging"
	"github.com/OpenTraceLab/OpenTraceBOM/internal/metrics"
	"github.com/OpenTraceLab/OpenTraceBOM/internal/session"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	logFormat   string
	metricsFile string

	// Set up by PersistentPreRunE
	cfg        *config.Config
	logger     = zap.NewNop()
	runMetrics *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "otb",
	Short: "OpenTraceBOM - EAGLE bill of materials editor",
	Long: `OpenTraceBOM (otb) reads EAGLE schematics (.sch), shows their bill of
materials and edits part attributes. Every edit is mirrored into the board
file (.brd) next to the schematic when one exists.

Examples:
  otb bom board.sch                                  # Print the BOM
  otb bom board.sch --format cyclonedx -o bom.json   # Export CycloneDX JSON
  otb show board.sch R1                              # Show R1's attributes
  otb set board.sch -p R1 -p R2 -a MPN=RC0603 --force  # Edit in place
  otb apply board.sch edits.otb -o fixed.sch         # Run an edit script`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the root command, then flushes the logger and writes the
// metrics file. Both happen even when the command failed, so load failures
// are recorded.
func run() error {
	runMetrics = nil
	err := rootCmd.Execute()

	_ = logger.Sync()
	if metricsFile == "" || runMetrics == nil {
		return err
	}
	if werr := runMetrics.WriteTextfile(metricsFile); werr != nil && err == nil {
		err = werr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"write Prometheus metrics to this file (textfile collector format)")
}

// setup loads the configuration and builds the logger and metrics shared by
// all subcommands.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	logCfg := cfg.Log
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	if err := logCfg.Validate(); err != nil {
		return err
	}
	if logCfg.OutputPath == "" {
		logCfg.OutputPath = "stderr"
	}

	logger, err = logging.NewLogger(logCfg)
	if err != nil {
		return err
	}
	runMetrics = metrics.New()
	return nil
}

// openSession opens a schematic with the shared configuration.
func openSession(path string) (*session.Session, error) {
	s, err := session.Open(path, session.Options{
		Config:  cfg,
		Logger:  logger,
		Metrics: runMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening schematic: %w", err)
	}
	return s, nil
}

// saveSession writes the edited schematic and board. Existing files are only
// overwritten with force.
func saveSession(cmd *cobra.Command, s *session.Session, output string, force bool) error {
	if output == "" {
		output = s.Path()
	}

	if !force {
		targets := []string{output}
		if !s.Board().IsEmpty() {
			targets = append(targets, session.BoardPath(output, cfg.BoardExtension))
		}
		for _, t := range targets {
			if _, err := os.Stat(t); err == nil {
				return fmt.Errorf("%s exists, use --force to overwrite", t)
			}
		}
	}

	if err := s.Save(output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
	if !s.Board().IsEmpty() {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", s.BoardPath())
	}
	return nil
}
