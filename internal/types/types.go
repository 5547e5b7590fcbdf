// =============================================================================
// CSV to JSON Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared by the pipeline stages. Types
// defined here are used by:
//   - cmd        (Intent)
//   - csvparser  (Header, Row)
//   - converter  (Record, Document)
//   - jsonwriter (Record, Document)
//
// =============================================================================

package types

// =============================================================================
// INVOCATION INTENT
// =============================================================================

// Intent is the resolved command-line request. It is created once from the
// process arguments and never modified afterwards.
type Intent struct {
	// SourcePath is the positional source file argument.
	SourcePath string

	// DestinationPath is the value of -o. Only meaningful when HasDestination
	// is set; it may be "" if the flag was given an empty value.
	DestinationPath string

	// HasDestination records whether -o was given at all. Without it the
	// destination is derived from SourcePath.
	HasDestination bool

	// Null records whether -n/--null was given. Empty cells become null
	// whether or not it is set.
	Null bool
}

// =============================================================================
// DECODED INPUT
// =============================================================================

// Header is the ordered list of column names read from the first record.
type Header []string

// Row is one decoded data record: raw cell values in source order.
type Row []string

// =============================================================================
// OUTPUT MODEL
// =============================================================================

// Value is a record value: either a string or an explicit null.
// The zero Value is null.
type Value struct {
	String string
	Valid  bool
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// StringValue returns a non-null Value holding s.
func StringValue(s string) Value {
	return Value{String: s, Valid: true}
}

// Field is one key/value pair of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is one output object. Fields are kept in the order in which their
// names were first assigned.
type Record struct {
	Fields []Field
}

// Set assigns v to name. An existing field keeps its position and takes the
// new value; a new name is appended.
func (r *Record) Set(name string, v Value) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = v
			return
		}
	}
	r.Fields = append(r.Fields, Field{Name: name, Value: v})
}

// Keys returns the field names in output order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Name
	}
	return keys
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.Fields)
}

// Document is the ordered sequence of records written to the destination.
type Document struct {
	Records []Record
}

// Append adds rec at the end of the document.
func (d *Document) Append(rec Record) {
	d.Records = append(d.Records, rec)
}

// Len returns the number of records.
func (d Document) Len() int {
	return len(d.Records)
}
