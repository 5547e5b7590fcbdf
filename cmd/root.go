// =============================================================================
// CSV to JSON Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The converter has a
// single command: the root command takes the source file as its positional
// argument.
//
// COMMAND USAGE:
//   csv2json SOURCE_FILE_NAME [-o TARGET_FILE_NAME] [-n] [-h]
//
// The root command is responsible for:
//   1. Resolving the command line into an Intent
//   2. Loading the optional settings file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/csv2json/internal/config"
	"github.com/ginjaninja78/csv2json/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// COMMAND OPTIONS
// =============================================================================

// rootOptions holds the flag values and the per-run state built from them.
type rootOptions struct {
	// output is the -o destination path.
	output string

	// null is the -n/--null flag. Empty cells become null regardless.
	null bool

	// verbose enables debug logging.
	verbose bool

	// cfgFile is the optional path to the settings file.
	cfgFile string

	config *config.Config
	logger *zap.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the command run by main.
var rootCmd = newRootCmd()

// newRootCmd builds the root command with fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "csv2json SOURCE_FILE_NAME [flags]",
		Short: "Convert a CSV file with a header row to a JSON array of objects",
		Long: `csv2json converts a comma-separated values file into a JSON array.

The first row of the source file holds the column names. Every following row
becomes one object whose keys are the column names and whose values are the
cell strings. Empty cells become null. A row with fewer cells than the header
only gets the columns it has.

The source file name must contain ".csv". Without -o the output is written
next to it, named after the part of the source before its first "." plus
".json" (a.b.csv -> a.json).

Example Usage:
  csv2json people.csv                  # writes people.json
  csv2json people.csv -o out/all.json  # explicit destination`,

		Args:    cobra.ArbitraryArgs,
		Version: Version,

		// Errors are printed once by Execute.
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	// -o: explicit destination file.
	cmd.Flags().StringVarP(
		&opts.output,
		"output",
		"o",
		"",
		"The path of the output file including the file extension.",
	)

	// -n: accepted for compatibility, empty strings are always null.
	cmd.Flags().BoolVarP(
		&opts.null,
		"null",
		"n",
		false,
		"Empty strings are set to null.",
	)

	cmd.Flags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	cmd.Flags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to an optional YAML settings file",
	)

	cmd.Flags().SortFlags = false
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &types.Error{Kind: types.UsageError, Err: err}
	})
	cmd.SetVersionTemplate(versionString())

	return cmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main(). Any error is
// printed to stderr and the process exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// setup loads the settings and builds the logger for this run.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	o.config = cfg

	logger, err := newLogger(cfg.LogLevel, o.verbose, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

// newLogger builds a production JSON logger writing to w.
func newLogger(level string, verbose bool, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}
