package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/stuartin/azenix-challenge/internal/entries"
)

// FailurePrefix is printed before the error message when a run fails
const FailurePrefix = "Failed to parse the log file."

// Summary is everything the report prints
type Summary struct {
	TopN      int             `json:"top_n"`
	TopURLs   []entries.Count `json:"top_urls"`
	TopIPs    []entries.Count `json:"top_ips"`
	UniqueIPs []string        `json:"unique_ips"`
}

// Build computes the summary from a collection. An empty collection fails
// with entries.ErrUnknownField, as Top does.
func Build(c *entries.Collection, topN int) (*Summary, error) {
	uniqueIPs, err := c.Unique("ip")
	if err != nil {
		return nil, err
	}
	topURLs, err := c.Top("url", topN)
	if err != nil {
		return nil, err
	}
	topIPs, err := c.Top("ip", topN)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TopN:      topN,
		TopURLs:   topURLs,
		TopIPs:    topIPs,
		UniqueIPs: uniqueIPs,
	}, nil
}

// WriteText renders the summary in the console layout
func WriteText(w io.Writer, s *Summary) error {
	var b strings.Builder

	section(&b, fmt.Sprintf("Top %d URLs:", s.TopN), counts(s.TopURLs))
	section(&b, fmt.Sprintf("Top %d IPs:", s.TopN), counts(s.TopIPs))
	section(&b, "Unique IPs:", s.UniqueIPs)
	b.WriteString("Done!\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the summary as a single JSON document
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// Failure prints the failure block for err
func Failure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s\n\n%s\n", FailurePrefix, err)
}

func section(b *strings.Builder, title string, rows []string) {
	b.WriteString(title + "\n")
	b.WriteString("-----\n")
	b.WriteString(strings.Join(rows, "\n") + "\n")
	b.WriteString("\n\n")
}

func counts(cs []entries.Count) []string {
	rows := make([]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, fmt.Sprintf("(%d) - %s", c.Count, c.Value))
	}
	return rows
}
