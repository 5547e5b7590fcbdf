// =============================================================================
// CSV to JSON Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single source file.
//
// CONVERSION PIPELINE:
//   1. Derive the source and destination file names
//   2. Read the whole source file into memory
//   3. Decode the header and the data rows
//   4. Build one record per row and append it to the document
//   5. Serialize the document
//   6. Write the destination file
//
// Every step returns a classified *types.Error on failure and the pipeline
// stops at the first one. The destination is only touched once the whole
// document has been built, so a failed run leaves no partial output.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/csv2json/internal/config"
	"github.com/ginjaninja78/csv2json/internal/csvparser"
	"github.com/ginjaninja78/csv2json/internal/jsonwriter"
	"github.com/ginjaninja78/csv2json/internal/types"
	"github.com/ginjaninja78/csv2json/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// RunID identifies this conversion in log output.
	RunID string

	// SourceFile is the path of the CSV file that was read.
	SourceFile string

	// OutputFile is the path of the JSON file that was written.
	OutputFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Columns is the number of header columns.
	Columns int

	// RowsProcessed is the number of data rows converted to records.
	RowsProcessed int

	// ShortRows is the number of rows with fewer cells than the header.
	ShortRows int

	// NullValues is the number of empty cells written as null.
	NullValues int

	// BytesWritten is the size of the output file.
	BytesWritten int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single CSV file to JSON.
type Converter struct {
	intent types.Intent
	config *config.Config
	logger *zap.Logger
}

// New creates a new Converter instance. A nil cfg uses config.Default() and a
// nil logger discards log output.
func New(intent types.Intent, cfg *config.Config, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		intent: intent,
		config: cfg,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()
	result := Result{RunID: uuid.NewString()}
	log := c.logger.With(zap.String("run", result.RunID))

	// =========================================================================
	// STEP 1: DERIVE FILE NAMES
	// =========================================================================

	src, dst, err := utils.DeriveFileNames(c.intent.SourcePath, c.intent.DestinationPath, c.intent.HasDestination)
	if err != nil {
		return result, err
	}
	result.SourceFile = src
	log.Debug("Resolved file names", zap.String("source", src), zap.String("destination", dst))

	if c.intent.Null {
		log.Debug("The null flag has no additional effect: empty cells are always written as null")
	}

	// =========================================================================
	// STEP 2: READ SOURCE
	// =========================================================================

	content, err := utils.ReadSource(src)
	if err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 3-4: DECODE AND ASSEMBLE
	// =========================================================================

	dec, err := csvparser.NewDecoder(content, c.config.CSVSettings)
	if err != nil {
		return result, fmt.Errorf("%s: %w", src, err)
	}

	doc, err := Assemble(dec, &result.Stats, log)
	if err != nil {
		return result, fmt.Errorf("%s: %w", src, err)
	}

	// =========================================================================
	// STEP 5: GENERATE JSON
	// =========================================================================

	data, err := jsonwriter.GenerateWithOptions(doc, jsonwriter.GenerateOptions{Indent: c.config.Output.Indent})
	if err != nil {
		return result, fmt.Errorf("failed to generate JSON: %w", err)
	}

	// =========================================================================
	// STEP 6: WRITE OUTPUT FILE
	// =========================================================================

	if err := jsonwriter.Write(dst, data); err != nil {
		return result, err
	}

	result.OutputFile = dst
	result.Stats.BytesWritten = len(data)
	result.Stats.ProcessingTime = time.Since(startTime)

	log.Info("Converted file",
		zap.String("source", src),
		zap.String("output", dst),
		zap.Int("rows", result.Stats.RowsProcessed),
		zap.Duration("elapsed", result.Stats.ProcessingTime))

	return result, nil
}

// =============================================================================
// DOCUMENT ASSEMBLER
// =============================================================================

// Assemble builds one record per decoded row and appends it to a document in
// source order. stats and logger may be nil.
func Assemble(dec *csvparser.Decoder, stats *ProcessingStats, logger *zap.Logger) (types.Document, error) {
	if stats == nil {
		stats = &ProcessingStats{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	header := dec.Header()
	stats.Columns = len(header)
	builder := newRecordBuilder(header, logger)

	var doc types.Document
	for dec.Next() {
		row := dec.Row()
		logger.Debug("row",
			zap.Int("row", dec.RowNumber()),
			zap.Int("line", dec.Line()),
			zap.Int("cells", len(row)))

		rec := builder.build(row)
		doc.Append(rec)

		stats.RowsProcessed++
		if len(row) < len(header) {
			stats.ShortRows++
		}
		for _, f := range rec.Fields {
			if !f.Value.Valid {
				stats.NullValues++
			}
		}
	}

	if err := dec.Err(); err != nil {
		return types.Document{}, err
	}

	return doc, nil
}
