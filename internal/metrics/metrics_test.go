package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/stuartin/azenix-challenge/internal/parser"
)

func TestMetrics_Record(t *testing.T) {
	m := New()
	m.Record([]parser.Result{
		{Line: 1, Entry: &parser.LogEntry{IP: "1.2.3.4"}},
		{Line: 2, Err: parser.ErrEmptyLine},
		{Line: 3, Err: &parser.ParseError{Kind: parser.MalformedTimestamp}},
		{Line: 4, Entry: &parser.LogEntry{IP: "1.2.3.4"}},
	})

	if got := testutil.ToFloat64(m.LinesRead); got != 4 {
		t.Errorf("Expected 4 lines read, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntriesParsed); got != 2 {
		t.Errorf("Expected 2 entries parsed, got %v", got)
	}
	if got := testutil.ToFloat64(m.ParseErrors.WithLabelValues("empty_line")); got != 1 {
		t.Errorf("Expected 1 empty_line error, got %v", got)
	}
	if got := testutil.ToFloat64(m.ParseErrors.WithLabelValues("malformed_request_line")); got != 0 {
		t.Errorf("Expected 0 malformed_request_line errors, got %v", got)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.Record([]parser.Result{{Line: 1, Entry: &parser.LogEntry{}}})

	path := filepath.Join(t.TempDir(), "log-parse.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"logparse_lines_read_total 1",
		"logparse_entries_parsed_total 1",
		`logparse_parse_errors_total{kind="malformed_timestamp"} 0`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in textfile, got:\n%s", want, out)
		}
	}
}
