// =============================================================================
// CSV to JSON Converter - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a conversion:
//   - Source/destination file naming
//   - Reading the whole source file into memory
//
// NAMING RULES:
//   - The source name must contain ".csv" somewhere (not only as a suffix).
//   - An explicit destination name must contain ".json" somewhere.
//   - Without an explicit destination, the name is the part of the source
//     before its FIRST "." followed by ".json", so "a.b.csv" -> "a.json".
//
// =============================================================================

package utils

import (
	"os"
	"strings"

	"github.com/ginjaninja78/csv2json/internal/types"
)

const (
	sourceMarker      = ".csv"
	destinationMarker = ".json"
)

// =============================================================================
// FILE NAMING
// =============================================================================

// DeriveFileNames returns the concrete source and destination file names.
//
// PARAMETERS:
//   - source: The source path given on the command line.
//   - destination: The -o value.
//   - explicit: Whether -o was given. An explicit destination is validated
//     even when it is empty.
//
// RETURNS:
//   - The source file name (unchanged).
//   - The destination file name.
//   - InvalidSourceNameError or InvalidDestinationNameError.
func DeriveFileNames(source, destination string, explicit bool) (string, string, error) {
	if !strings.Contains(source, sourceMarker) {
		return "", "", &types.Error{
			Kind: types.InvalidSourceNameError,
			Msg:  "src file is invalid, it should contain the .csv extension",
			Path: source,
		}
	}

	if explicit {
		if !strings.Contains(destination, destinationMarker) {
			return "", "", &types.Error{
				Kind: types.InvalidDestinationNameError,
				Msg:  "destination file is invalid, it should contain the .json extension",
				Path: destination,
			}
		}
		return source, destination, nil
	}

	return source, DestinationFor(source), nil
}

// DestinationFor derives a destination name from source by cutting at the
// first "." and appending ".json".
func DestinationFor(source string) string {
	stem, _, _ := strings.Cut(source, ".")
	return stem + destinationMarker
}

// =============================================================================
// SOURCE READING
// =============================================================================

// ReadSource reads the whole source file.
//
// RETURNS:
//   - The file content.
//   - FileOpenError if the file does not exist or cannot be read.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.Error{Kind: types.FileOpenError, Msg: "failed to open source file", Path: path, Err: err}
	}
	return data, nil
}
