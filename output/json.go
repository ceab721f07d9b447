package output

import (
	"bytes"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/csvjoin/table"
)

// object is one row keyed by column label, marshaled in column order
type object struct {
	keys   []string
	values []string
}

// MarshalJSON keeps the column order that a map would lose
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func objects(t *table.Table) []object {
	keys := labels(t)
	out := make([]object, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = object{keys: keys, values: record(row, len(keys))}
	}
	return out
}

// JSONFormatter outputs the table as one JSON array of objects
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the table as a JSON array
func (j *JSONFormatter) Format(t *table.Table) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(objects(t))
}

// JSONLinesFormatter outputs rows as JSON Lines format
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line)
func (j *JSONLinesFormatter) Format(t *table.Table) error {
	encoder := json.NewEncoder(j.writer)
	for _, obj := range objects(t) {
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}
