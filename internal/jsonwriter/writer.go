// =============================================================================
// CSV to JSON Converter - JSON Writer Module
// =============================================================================
//
// This module serializes the assembled document and writes it to disk.
//
// JSON STRUCTURE:
//   [{"name":"Alice","age":"30"},{"name":"Bob","age":null}]
//
//   - One object per record, in document order.
//   - Keys in the order the record assigned them (header order).
//   - Values are strings or null.
//   - No trailing newline.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginjaninja78/csv2json/internal/types"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for JSON generation.
type GenerateOptions struct {
	// Indent is the string used for each indentation level.
	// Default: "" (compact, single line)
	Indent string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{}
}

// =============================================================================
// JSON GENERATION
// =============================================================================

// Generate serializes doc with the default options.
func Generate(doc types.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions serializes doc as a JSON array of objects.
func GenerateWithOptions(doc types.Document, options GenerateOptions) ([]byte, error) {
	w := newDocumentWriter()

	w.buffer.WriteByte('[')
	for i, rec := range doc.Records {
		if i > 0 {
			w.buffer.WriteByte(',')
		}
		if err := w.writeRecord(rec); err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i+1, err)
		}
	}
	w.buffer.WriteByte(']')

	if options.Indent == "" {
		return w.buffer.Bytes(), nil
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, w.buffer.Bytes(), "", options.Indent); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	return indented.Bytes(), nil
}

// documentWriter accumulates the output of one Generate call. String literals
// are encoded through a single encoder into scratch and then copied over.
type documentWriter struct {
	buffer  bytes.Buffer
	scratch bytes.Buffer
	encoder *json.Encoder
}

func newDocumentWriter() *documentWriter {
	w := &documentWriter{}
	w.encoder = json.NewEncoder(&w.scratch)
	w.encoder.SetEscapeHTML(false)
	return w
}

// writeRecord writes one record as a JSON object.
func (w *documentWriter) writeRecord(rec types.Record) error {
	w.buffer.WriteByte('{')
	for i, field := range rec.Fields {
		if i > 0 {
			w.buffer.WriteByte(',')
		}
		if err := w.writeString(field.Name); err != nil {
			return err
		}
		w.buffer.WriteByte(':')
		if !field.Value.Valid {
			w.buffer.WriteString("null")
			continue
		}
		if err := w.writeString(field.Value.String); err != nil {
			return err
		}
	}
	w.buffer.WriteByte('}')
	return nil
}

// writeString writes s as a JSON string literal. HTML characters are kept
// as-is.
func (w *documentWriter) writeString(s string) error {
	w.scratch.Reset()
	if err := w.encoder.Encode(s); err != nil {
		return err
	}
	w.buffer.Write(bytes.TrimSuffix(w.scratch.Bytes(), []byte("\n")))
	return nil
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// Write creates or truncates path and writes data in a single call.
//
// RETURNS:
//   - FileCreateError if the file cannot be opened for writing.
//   - FileWriteError if writing or closing fails.
func Write(path string, data []byte) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &types.Error{Kind: types.FileCreateError, Msg: "error creating the file", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &types.Error{Kind: types.FileWriteError, Msg: "error writing to file", Path: path, Err: cerr}
		}
	}()

	if _, err := file.Write(data); err != nil {
		return &types.Error{Kind: types.FileWriteError, Msg: "error writing to file", Path: path, Err: err}
	}

	return nil
}
