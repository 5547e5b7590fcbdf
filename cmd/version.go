// =============================================================================
// CSV to JSON Converter - Version Information
// =============================================================================
//
// This file holds the build information printed by --version.
//
// OUTPUT:
//   CSV to JSON Converter
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/csv2json/cmd.Version=1.0.0' -X 'github.com/ginjaninja78/csv2json/cmd.BuildDate=2024-01-01'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionString returns the --version output.
func versionString() string {
	return fmt.Sprintf("CSV to JSON Converter\nVersion:    %s\nBuild Date: %s\nGo Version: %s\n",
		Version, BuildDate, runtime.Version())
}
