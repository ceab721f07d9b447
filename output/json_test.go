package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/csvjoin/table"
)

func TestJSONLinesFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONLinesFormatter(&buf).Format(joined()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Format() produced %d lines, want 3", len(lines))
	}

	want := `{"0:city":"Austin","1:bar":"100","0:foo + 1:bar":"101"}`
	if lines[0] != want {
		t.Errorf("line 0 = %s, want %s", lines[0], want)
	}

	for i, line := range lines {
		var obj map[string]string
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	tests := []struct {
		name  string
		table *table.Table
		want  []map[string]string
	}{
		{
			name:  "empty table",
			table: table.MustNew("empty", []string{"a"}, nil),
			want:  []map[string]string{},
		},
		{
			name:  "joined rows",
			table: joined(),
			want: []map[string]string{
				{"0:city": "Austin", "1:bar": "100", "0:foo + 1:bar": "101"},
				{"0:city": "Berkeley", "1:bar": "200", "0:foo + 1:bar": "202"},
				{"0:city": "Duke", "1:bar": "400", "0:foo + 1:bar": "403"},
			},
		},
		{
			name:  "short rows are padded",
			table: table.MustNew("t", []string{"a", "b"}, []table.Row{{"x"}}),
			want:  []map[string]string{{"a": "x", "b": ""}},
		},
		{
			name:  "special characters are escaped",
			table: table.MustNew("t", []string{"q"}, []table.Row{{`say "hi"` + "\n"}}),
			want:  []map[string]string{{"q": "say \"hi\"\n"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewJSONFormatter(&buf).Format(tt.table); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			var got []map[string]string
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Format() produced %d objects, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				for k, v := range tt.want[i] {
					if got[i][k] != v {
						t.Errorf("object %d key %q = %q, want %q", i, k, got[i][k], v)
					}
				}
			}
		})
	}
}

func TestJSONFormatter_KeepsColumnOrder(t *testing.T) {
	tbl := table.MustNew("t", []string{"z", "a", "m"}, []table.Row{{"1", "2", "3"}})

	var buf bytes.Buffer
	if err := NewJSONLinesFormatter(&buf).Format(tbl); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !(strings.Index(out, `"z"`) < strings.Index(out, `"a"`) && strings.Index(out, `"a"`) < strings.Index(out, `"m"`)) {
		t.Errorf("keys out of column order: %s", out)
	}
}
