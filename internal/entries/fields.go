package entries

import (
	"strconv"

	"github.com/stuartin/azenix-challenge/internal/parser"
)

// accessor reads one field of an entry as a string
type accessor func(e *parser.LogEntry) string

var (
	ipField        accessor = func(e *parser.LogEntry) string { return e.IP }
	userField      accessor = func(e *parser.LogEntry) string { return e.User }
	dateField      accessor = func(e *parser.LogEntry) string { return e.Date.Format(parser.DateLayout) }
	responseField  accessor = func(e *parser.LogEntry) string { return strconv.Itoa(e.Response) }
	bytesField     accessor = func(e *parser.LogEntry) string { return strconv.Itoa(e.Bytes) }
	methodField    accessor = func(e *parser.LogEntry) string { return e.Method }
	urlField       accessor = func(e *parser.LogEntry) string { return e.URL }
	protocolField  accessor = func(e *parser.LogEntry) string { return e.Protocol }
	userAgentField accessor = func(e *parser.LogEntry) string { return e.UserAgent }
)

// fields is the allow-list of names Unique and Top accept. Aliases share an
// accessor.
var fields = map[string]accessor{
	"ip":              ipField,
	"clientAddress":   ipField,
	"user":            userField,
	"date":            dateField,
	"timestamp":       dateField,
	"response":        responseField,
	"statusCode":      responseField,
	"bytes":           bytesField,
	"responseSize":    bytesField,
	"method":          methodField,
	"url":             urlField,
	"protocol":        protocolField,
	"protocolVersion": protocolField,
	"user_agent":      userAgentField,
	"userAgent":       userAgentField,
}

var canonicalFields = []string{"ip", "user", "date", "response", "bytes", "method", "url", "protocol", "user_agent"}

// Fields returns the canonical field names
func Fields() []string {
	out := make([]string, len(canonicalFields))
	copy(out, canonicalFields)
	return out
}

// ValidField reports whether name is an accepted field name or alias
func ValidField(name string) bool {
	_, ok := fields[name]
	return ok
}

func lookup(name string) (accessor, bool) {
	get, ok := fields[name]
	return get, ok
}
