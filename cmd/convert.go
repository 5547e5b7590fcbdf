// =============================================================================
// CSV to JSON Converter - Convert Action
// =============================================================================
//
// This file holds the action of the root command: it turns the resolved flags
// and positional arguments into an Intent and runs the converter.
//
// PROCESSING PIPELINE:
//   1. No source argument: print the usage text and stop (not an error)
//   2. Build the Intent
//   3. Run the converter
//   4. Print the confirmation line
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/csv2json/internal/converter"
	"github.com/ginjaninja78/csv2json/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runConvert is the root command action.
func runConvert(cmd *cobra.Command, args []string, opts *rootOptions) error {
	intent, ok := resolveIntent(args, opts, cmd.Flags().Changed("output"))
	if !ok {
		return cmd.Help()
	}

	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Resolved arguments",
		zap.String("source", intent.SourcePath),
		zap.String("output", intent.DestinationPath),
		zap.Bool("null", intent.Null),
		zap.Strings("ignored", ignoredArgs(args)))

	result, err := converter.New(intent, opts.config, logger).Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote to file %s\n", result.OutputFile)
	return nil
}

// resolveIntent builds the Intent from the positional arguments and flags. It
// reports false when there is no source argument. hasOutput tells whether -o
// was given, so that an empty value is still validated.
func resolveIntent(args []string, opts *rootOptions, hasOutput bool) (types.Intent, bool) {
	if len(args) == 0 {
		return types.Intent{}, false
	}

	return types.Intent{
		SourcePath:      args[0],
		DestinationPath: opts.output,
		HasDestination:  hasOutput,
		Null:            opts.null,
	}, true
}

// ignoredArgs returns the positional arguments after the source.
func ignoredArgs(args []string) []string {
	if len(args) < 2 {
		return nil
	}
	return args[1:]
}
