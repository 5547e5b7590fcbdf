// =============================================================================
// CSV to JSON Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2json CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   csv2json SOURCE_FILE_NAME [-o TARGET_FILE_NAME] [-n] [-h]
//
// ARCHITECTURE:
//   - cmd/       : Cobra command definition and argument resolution
//   - internal/  : Configuration, CSV decoding, record building, JSON output
//   - pkg/       : File naming and source reading utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv2json/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
