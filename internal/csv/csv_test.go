package csv

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		// Plain splitting
		{
			name:  "empty input yields one empty field",
			input: "",
			want:  []string{""},
		},
		{
			name:  "single field",
			input: "hello",
			want:  []string{"hello"},
		},
		{
			name:  "unquoted fields",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty fields preserved",
			input: "a,,c,",
			want:  []string{"a", "", "c", ""},
		},

		// Quoting
		{
			name:  "quoted field with comma",
			input: `a,"b,c",d`,
			want:  []string{"a", "b,c", "d"},
		},
		{
			name:  "escaped quote inside quoted field",
			input: `a,"b""c",d`,
			want:  []string{"a", `b"c`, "d"},
		},
		{
			name:  "fully quoted row",
			input: `"Cat","Kot","The cat sleeps.","t1","Animals"`,
			want:  []string{"Cat", "Kot", "The cat sleeps.", "t1", "Animals"},
		},
		{
			name:  "quotes mid-field",
			input: `say "hi",ok`,
			want:  []string{"say hi", "ok"},
		},

		// Degraded input
		{
			name:  "unterminated quote swallows separators",
			input: `a,"b,c`,
			want:  []string{"a", "b,c"},
		},
		{
			name:  "lone quote",
			input: `"`,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLine(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLine_FieldCount(t *testing.T) {
	// N unquoted comma-separated values always produce exactly N fields.
	if got := ParseLine("1,2,3,4,5,6,7"); len(got) != 7 {
		t.Errorf("got %d fields, want 7", len(got))
	}
}

func TestCleanCell(t *testing.T) {
	if got := CleanCell("  padded \t"); got != "padded" {
		t.Errorf("CleanCell = %q, want %q", got, "padded")
	}
}
