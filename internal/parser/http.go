package parser

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	// DateLayout matches the bracketed field, e.g. 11/Jul/2018:17:33:01 +0200
	DateLayout = "2/Jan/2006:15:04:05 -0700"

	quotedSegmentCount  = 3
	requestLineTokens   = 3
	minPositionalFields = 10
)

// HTTPParser parses Nginx/Apache Combined Log Format
// Format: 1.2.3.4 - user [01/Jan/2026:12:00:00 +0000] "GET /path HTTP/1.1" 200 123 "-" "UserAgent"
type HTTPParser struct {
	logger zerolog.Logger
}

// NewHTTPParser returns a parser that reports every raw line to logger at
// info level before parsing it. Pass zerolog.Nop() to disable that.
func NewHTTPParser(logger zerolog.Logger) *HTTPParser {
	return &HTTPParser{
		logger: logger.With().Str("component", "parser").Logger(),
	}
}

var quietParser = NewHTTPParser(zerolog.Nop())

// ParseLine parses a single line without diagnostic logging
func ParseLine(line string) (*LogEntry, error) {
	return quietParser.Parse(line)
}

// Parse implements the Parser interface. The checks run in a fixed order and
// the first one to fail decides the returned *ParseError.
func (p *HTTPParser) Parse(line string) (*LogEntry, error) {
	if utf8.RuneCountInString(line) <= 1 {
		return nil, &ParseError{Kind: EmptyLine}
	}

	p.logger.Info().Str("line", line).Msg("parsing log entry")

	// request line, referrer, user agent
	quoted := quotedSegments(line)
	if len(quoted) != quotedSegmentCount {
		return nil, &ParseError{Kind: MalformedQuotedFields}
	}
	request, userAgent := quoted[0], quoted[2]

	requestFields := strings.Split(request, " ")
	if len(requestFields) != requestLineTokens {
		return nil, &ParseError{Kind: MalformedRequestLine}
	}

	rawDate, ok := bracketed(line)
	if !ok {
		return nil, &ParseError{Kind: MalformedTimestamp}
	}
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return nil, &ParseError{Kind: MalformedTimestamp, Err: err}
	}

	// 0=IP, 1=ident, 2=User, 3-7=date and request remnants, 8=Status, 9=Size
	fields := strings.Split(line, " ")
	if len(fields) < minPositionalFields {
		return nil, &ParseError{Kind: MalformedPositionalFields}
	}
	response, err := atoi(fields[8])
	if err != nil {
		return nil, &ParseError{Kind: MalformedPositionalFields, Err: err}
	}
	bytes, err := atoi(fields[9])
	if err != nil {
		return nil, &ParseError{Kind: MalformedPositionalFields, Err: err}
	}

	return &LogEntry{
		IP:        fields[0],
		User:      fields[2],
		Date:      date,
		Response:  response,
		Bytes:     bytes,
		Method:    requestFields[0],
		URL:       requestFields[1],
		Protocol:  requestFields[2],
		UserAgent: userAgent,
	}, nil
}

// quotedSegments returns the contents of every non-overlapping "..." pair,
// left to right. An unpaired trailing quote is ignored.
func quotedSegments(line string) []string {
	var segments []string
	for {
		start := strings.IndexByte(line, '"')
		if start < 0 {
			return segments
		}
		line = line[start+1:]
		end := strings.IndexByte(line, '"')
		if end < 0 {
			return segments
		}
		segments = append(segments, line[:end])
		line = line[end+1:]
	}
}

// bracketed returns the text between the leftmost '[' and the last ']' that
// follows it on the same line, with at least one character in between.
// When the user agent also contains brackets this over-captures and the date
// will not parse; existing fixtures depend on that.
func bracketed(line string) (string, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != '[' {
			continue
		}
		rest := line[i+1:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		if j := strings.LastIndexByte(rest, ']'); j >= 1 {
			return rest[:j], true
		}
	}
	return "", false
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
