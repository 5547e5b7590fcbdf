// =============================================================================
// CSV to JSON Converter - CSV Parser Module
// =============================================================================
//
// This module turns the in-memory content of a source file into a header and a
// lazy sequence of rows. It handles:
//   - Character encodings (UTF-8 by default, any IANA name otherwise)
//   - Different delimiters (comma, pipe, tab, etc.)
//   - Quoted fields with embedded delimiters, newlines and doubled quotes
//   - Rows with fewer or more cells than the header
//
// Cell values are returned exactly as decoded: no trimming, no type coercion.
//
// USAGE:
//   dec, err := csvparser.NewDecoder(content, cfg.CSVSettings)
//   if err != nil {
//       return err
//   }
//
//   for dec.Next() {
//       row := dec.Row()
//       // Process the row...
//   }
//
//   if err := dec.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/ginjaninja78/csv2json/internal/config"
	"github.com/ginjaninja78/csv2json/internal/types"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// DECODER
// =============================================================================

// Decoder reads a header and then one row at a time from CSV content.
type Decoder struct {
	reader    *csv.Reader
	header    types.Header
	current   types.Row
	rowNumber int
	line      int
	err       error
}

// NewDecoder creates a decoder over content and reads the header record.
//
// PARAMETERS:
//   - content: The full source file content.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Decoder, positioned before the first data row.
//   - FileOpenError if the content is not valid text in the configured
//     encoding, ConfigError for unusable settings, MissingHeaderError if no
//     header record can be read.
func NewDecoder(content []byte, settings config.CSVSettings) (*Decoder, error) {
	text, err := DecodeText(content, settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	dec := &Decoder{reader: reader}
	if err := dec.readHeader(); err != nil {
		return nil, err
	}

	return dec, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return &types.Error{Kind: types.ConfigError, Err: err}
	}
	comment, err := settings.CommentRune()
	if err != nil {
		return &types.Error{Kind: types.ConfigError, Err: err}
	}

	reader.Comma = comma
	reader.Comment = comment
	reader.LazyQuotes = settings.LazyQuotes

	// Rows may be shorter or longer than the header.
	reader.FieldsPerRecord = -1

	// Cells are raw values.
	reader.TrimLeadingSpace = false

	return nil
}

// readHeader reads the first record.
func (d *Decoder) readHeader() error {
	record, err := d.reader.Read()
	if errors.Is(err, io.EOF) {
		return &types.Error{Kind: types.MissingHeaderError, Msg: "source has no header row"}
	}
	if err != nil {
		return &types.Error{Kind: types.MissingHeaderError, Msg: "failed to read header row", Err: err}
	}

	d.header = types.Header(record)
	return nil
}

// Next advances to the next row. It returns false at the end of the input or
// after the first malformed row, in which case Err reports it.
func (d *Decoder) Next() bool {
	if d.err != nil {
		return false
	}

	record, err := d.reader.Read()
	if errors.Is(err, io.EOF) {
		d.current = nil
		return false
	}
	if err != nil {
		d.current = nil
		d.err = rowError(err)
		return false
	}

	d.rowNumber++
	d.line, _ = d.reader.FieldPos(0)
	d.current = types.Row(record)
	return true
}

// rowError classifies a reader failure as a RowParseError.
func rowError(err error) error {
	rowErr := &types.Error{Kind: types.RowParseError, Msg: "failed to parse data row", Err: err}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		rowErr.Line = parseErr.StartLine
		rowErr.Err = parseErr.Err
	}

	return rowErr
}

// Header returns the header record.
func (d *Decoder) Header() types.Header {
	return d.header
}

// Row returns the current row.
func (d *Decoder) Row() types.Row {
	return d.current
}

// RowNumber returns the number of data rows read so far (1-indexed for the
// current row).
func (d *Decoder) RowNumber() int {
	return d.rowNumber
}

// Line returns the source line on which the current row starts.
func (d *Decoder) Line() int {
	return d.line
}

// Err returns the error that stopped iteration, if any.
func (d *Decoder) Err() error {
	return d.err
}

// =============================================================================
// TEXT DECODING
// =============================================================================

// DecodeText converts content in the named encoding to UTF-8 and strips a
// leading byte-order mark. UTF-8 content must already be valid UTF-8.
func DecodeText(content []byte, encodingName string) ([]byte, error) {
	if encodingName == "" {
		encodingName = "utf-8"
	}

	enc, err := ianaindex.IANA.Encoding(encodingName)
	if err == nil && enc == nil {
		err = errors.New("encoding is not supported")
	}
	if err != nil {
		return nil, &types.Error{Kind: types.ConfigError, Msg: "unknown source encoding " + encodingName, Err: err}
	}

	if name, _ := ianaindex.IANA.Name(enc); name == "UTF-8" && !utf8.Valid(content) {
		return nil, &types.Error{Kind: types.FileOpenError, Msg: "source is not valid UTF-8 text"}
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), content)
	if err != nil {
		return nil, &types.Error{Kind: types.FileOpenError, Msg: "failed to decode source as " + encodingName, Err: err}
	}

	return text, nil
}
