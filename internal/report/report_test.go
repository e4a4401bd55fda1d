package report

import (
	"bytes"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/stuartin/azenix-challenge/internal/entries"
	"github.com/stuartin/azenix-challenge/internal/parser"
)

func sampleCollection() *entries.Collection {
	return entries.NewCollection([]parser.LogEntry{
		{IP: "10.0.0.2", URL: "/a"},
		{IP: "10.0.0.1", URL: "/b"},
		{IP: "10.0.0.2", URL: "/a"},
	})
}

func TestBuild(t *testing.T) {
	s, err := Build(sampleCollection(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := &Summary{
		TopN:      3,
		TopURLs:   []entries.Count{{Value: "/a", Count: 2}, {Value: "/b", Count: 1}},
		TopIPs:    []entries.Count{{Value: "10.0.0.2", Count: 2}, {Value: "10.0.0.1", Count: 1}},
		UniqueIPs: []string{"10.0.0.1", "10.0.0.2"},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(entries.NewCollection(nil), 3)
	if !errors.Is(err, entries.ErrUnknownField) {
		t.Fatalf("Expected ErrUnknownField, got %v", err)
	}
}

func TestWriteText(t *testing.T) {
	s, err := Build(sampleCollection(), 3)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, s); err != nil {
		t.Fatal(err)
	}

	want := "Top 3 URLs:\n-----\n(2) - /a\n(1) - /b\n\n\n" +
		"Top 3 IPs:\n-----\n(2) - 10.0.0.2\n(1) - 10.0.0.1\n\n\n" +
		"Unique IPs:\n-----\n10.0.0.1\n10.0.0.2\n\n\n" +
		"Done!\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Text output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	s, err := Build(sampleCollection(), 1)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatal(err)
	}

	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(s, &got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"top_urls"`)) {
		t.Errorf("Expected snake_case keys, got %s", buf.String())
	}
}

func TestFailure(t *testing.T) {
	var buf bytes.Buffer
	Failure(&buf, parser.ErrMalformedTimestamp)

	want := "Failed to parse the log file.\n\nCould not parse date from log entry.\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}
