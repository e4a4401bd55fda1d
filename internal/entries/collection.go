package entries

import (
	"sort"

	"github.com/stuartin/azenix-challenge/internal/parser"
)

// Count is one row of a Top result
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Collection is an ordered, read-only set of parsed log entries. Order is
// the input line order; duplicates are kept.
type Collection struct {
	logs []parser.LogEntry
}

// NewCollection creates a collection holding a copy of logs
func NewCollection(logs []parser.LogEntry) *Collection {
	c := &Collection{logs: make([]parser.LogEntry, len(logs))}
	copy(c.logs, logs)
	return c
}

// Len returns the number of entries
func (c *Collection) Len() int {
	return len(c.logs)
}

// Entries returns a copy of the entries in input order
func (c *Collection) Entries() []parser.LogEntry {
	out := make([]parser.LogEntry, len(c.logs))
	copy(out, c.logs)
	return out
}

// Unique returns the distinct values of field, sorted ascending. An empty
// collection yields an empty slice.
func (c *Collection) Unique(field string) ([]string, error) {
	get, ok := lookup(field)
	if !ok {
		return nil, &FieldError{Field: field}
	}

	seen := make(map[string]struct{}, len(c.logs))
	out := make([]string, 0, len(c.logs))
	for i := range c.logs {
		v := get(&c.logs[i])
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)
	return out, nil
}

// Top returns the n most frequent values of field, most frequent first.
// Values with equal counts keep the order in which they first appeared.
// Asking about an empty collection is an error, whatever the field.
func (c *Collection) Top(field string, n int) ([]Count, error) {
	get, ok := lookup(field)
	if len(c.logs) == 0 || !ok {
		return nil, &FieldError{Field: field}
	}

	index := make(map[string]int)
	counts := make([]Count, 0)
	for i := range c.logs {
		v := get(&c.logs[i])
		if at, seen := index[v]; seen {
			counts[at].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n < 0 {
		n = 0
	}
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts, nil
}
