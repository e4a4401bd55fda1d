package ingest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// LogLine represents a raw line from a log source
type LogLine struct {
	Source  string
	Number  int // 1-based
	Content string
}

// Ingester defines the interface for log sources. The channel returned by
// Start is closed once the source is exhausted; Err reports why reading
// stopped early, if it did.
type Ingester interface {
	Start() (<-chan LogLine, error)
	Stop() error
	Err() error
}

// Open picks an Ingester for path by its extension
func Open(path string) Ingester {
	if strings.HasSuffix(path, ".gz") {
		return NewGzipReader(path)
	}
	return NewFileTailer(path)
}

// FileTailer implements Ingester for a single plain-text file. It reads the
// file once, from the start, and does not follow appends.
type FileTailer struct {
	path string
	t    *tail.Tail

	mu  sync.Mutex
	err error
}

// NewFileTailer creates a new tailer for a path
func NewFileTailer(path string) *FileTailer {
	return &FileTailer{
		path: path,
	}
}

// Start begins reading the file and returns a channel of lines
func (f *FileTailer) Start() (<-chan LogLine, error) {
	config := tail.Config{
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}

	t, err := tail.TailFile(f.path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", f.path, err)
	}
	f.t = t

	out := make(chan LogLine)

	go func() {
		defer close(out)
		n := 0
		for line := range t.Lines {
			if line.Err != nil {
				f.setErr(fmt.Errorf("failed to read %s: %w", f.path, line.Err))
				return
			}
			n++
			out <- LogLine{
				Source:  f.path,
				Number:  n,
				Content: strings.TrimSuffix(line.Text, "\r"),
			}
		}
	}()

	return out, nil
}

// Stop releases the file. Safe to call more than once.
func (f *FileTailer) Stop() error {
	if f.t == nil {
		return nil
	}
	t := f.t
	f.t = nil
	t.Cleanup()
	return t.Stop()
}

// Err returns the first read error, if any
func (f *FileTailer) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *FileTailer) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		f.err = err
	}
}

// ReadAll starts ing, drains it and returns the line contents in order
func ReadAll(ing Ingester) ([]string, error) {
	ch, err := ing.Start()
	if err != nil {
		return nil, err
	}

	var lines []string
	for line := range ch {
		lines = append(lines, line.Content)
	}
	if err := ing.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
