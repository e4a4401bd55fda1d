package parser

import "time"

// LogEntry represents one successfully parsed access-log line.
// Entries are only ever built whole; a line that fails any check yields none.
type LogEntry struct {
	IP        string
	User      string
	Date      time.Time
	Response  int
	Bytes     int
	Method    string
	URL       string
	Protocol  string
	UserAgent string
}

// Parser defines the interface for log parsers
type Parser interface {
	Parse(line string) (*LogEntry, error)
}
