package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/csv2json/internal/config"
	"github.com/ginjaninja78/csv2json/internal/csvparser"
	"github.com/ginjaninja78/csv2json/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeSource writes a CSV file into a temp dir and returns its path.
func writeSource(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunExample(t *testing.T) {
	src := writeSource(t, "people.csv", "name,age\nAlice,30\nBob,\n")
	dst := filepath.Join(filepath.Dir(src), "people.json")

	conv := New(types.Intent{SourcePath: src, DestinationPath: dst, HasDestination: true}, nil, zaptest.NewLogger(t))
	result, err := conv.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Alice","age":"30"},{"name":"Bob","age":null}]`, string(data))

	assert.Equal(t, src, result.SourceFile)
	assert.Equal(t, dst, result.OutputFile)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Stats.Columns)
	assert.Equal(t, 2, result.Stats.RowsProcessed)
	assert.Equal(t, 1, result.Stats.NullValues)
	assert.Equal(t, 0, result.Stats.ShortRows)
	assert.Equal(t, len(data), result.Stats.BytesWritten)
}

func TestRunDerivedDestination(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("a.b.csv", []byte("k\nv\n"), 0o644))

	result, err := New(types.Intent{SourcePath: "a.b.csv"}, nil, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, "a.json", result.OutputFile)

	data, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"k":"v"}]`, string(data))
}

func TestRunNullFlagHasNoEffect(t *testing.T) {
	body := "a,b\n,x\n"
	var outputs []string

	for _, null := range []bool{false, true} {
		src := writeSource(t, "in.csv", body)
		dst := filepath.Join(filepath.Dir(src), "out.json")

		_, err := New(types.Intent{SourcePath: src, DestinationPath: dst, HasDestination: true, Null: null}, nil, zaptest.NewLogger(t)).Run()
		require.NoError(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}

	assert.Equal(t, `[{"a":null,"b":"x"}]`, outputs[0])
	assert.Equal(t, outputs[0], outputs[1])
}

func TestRunProperties(t *testing.T) {
	header := []string{"id", "first", "last", "note"}
	rows := [][]string{
		{"1", "Ada", "Lovelace", "math"},
		{"2", "", "Hopper", ""},
		{"3", "Alan"},
		{"4", "Grace", "Hopper", "navy", "extra"},
		{"5", "\"quoted, with comma\"", "x", "y"},
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ",") + "\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ",") + "\n")
	}

	src := writeSource(t, "props.csv", b.String())
	dst := filepath.Join(filepath.Dir(src), "props.json")

	result, err := New(types.Intent{SourcePath: src, DestinationPath: dst, HasDestination: true}, nil, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.ShortRows)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)

	var decoded []map[string]*string
	require.NoError(t, json.Unmarshal(data, &decoded))

	// One element per data row, each with at most len(header) keys.
	require.Len(t, decoded, len(rows))
	for _, obj := range decoded {
		assert.LessOrEqual(t, len(obj), len(header))
	}

	// The short row only has the columns it supplied.
	assert.Len(t, decoded[2], 2)
	assert.NotContains(t, decoded[2], "last")

	// Empty cells are null, others verbatim.
	assert.Nil(t, decoded[1]["first"])
	assert.Nil(t, decoded[1]["note"])
	require.NotNil(t, decoded[4]["first"])
	assert.Equal(t, "quoted, with comma", *decoded[4]["first"])

	// Key order of the first object follows the header.
	assert.Equal(t, header, keyOrder(t, data))
}

// keyOrder returns the keys of the first object in a JSON array in the order
// they appear.
func keyOrder(t *testing.T, data []byte) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('['), tok)
	tok, err = dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))

		_, err = dec.Token()
		require.NoError(t, err)
	}
	return keys
}

func TestRunIndent(t *testing.T) {
	src := writeSource(t, "in.csv", "a\n1\n")
	dst := filepath.Join(filepath.Dir(src), "out.json")

	cfg := config.Default()
	cfg.Output.Indent = "\t"

	_, err := New(types.Intent{SourcePath: src, DestinationPath: dst, HasDestination: true}, cfg, nil).Run()
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "[\n\t{\n\t\t\"a\": \"1\"\n\t}\n]", string(data))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		source string
		body   string
		dest   string
		want   types.Kind
	}{
		{name: "source name", source: "data.txt", want: types.InvalidSourceNameError},
		{name: "destination name", source: "data.csv", dest: "out.txt", want: types.InvalidDestinationNameError},
		{name: "missing source", source: "missing.csv", dest: "out.json", want: types.FileOpenError},
		{name: "empty source", source: "empty.csv", body: "", dest: "out.json", want: types.MissingHeaderError},
		{name: "bad row", source: "bad.csv", body: "a,b\n\"open,1\n", dest: "out.json", want: types.RowParseError},
		{name: "unwritable destination", source: "ok.csv", body: "a\n1\n", dest: filepath.Join("nodir", "out.json"), want: types.FileCreateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(dir, tt.source)
			if tt.body != "" || tt.want == types.MissingHeaderError {
				require.NoError(t, os.WriteFile(src, []byte(tt.body), 0o644))
			}
			dst := ""
			if tt.dest != "" {
				dst = filepath.Join(dir, tt.name+"-"+tt.dest)
			}

			_, err := New(types.Intent{SourcePath: src, DestinationPath: dst, HasDestination: true}, nil, zaptest.NewLogger(t)).Run()
			require.Error(t, err)
			assert.Equal(t, tt.want, types.KindOf(err), err.Error())

			// No partial output is left behind.
			if dst != "" {
				_, statErr := os.Stat(dst)
				assert.True(t, os.IsNotExist(statErr))
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	dec, err := csvparser.NewDecoder([]byte("a,b\n1,2\n3\n,\n"), config.Default().CSVSettings)
	require.NoError(t, err)

	var stats ProcessingStats
	doc, err := Assemble(dec, &stats, nil)
	require.NoError(t, err)

	require.Equal(t, 3, doc.Len())
	assert.Equal(t, []string{"a", "b"}, doc.Records[0].Keys())
	assert.Equal(t, []string{"a"}, doc.Records[1].Keys())
	assert.Equal(t, ProcessingStats{Columns: 2, RowsProcessed: 3, ShortRows: 1, NullValues: 2}, stats)
}

// chdir changes the working directory for the rest of the test and restores
// it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
