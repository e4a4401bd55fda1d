package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize caps a single line of a compressed log
const maxLineSize = 1024 * 1024

// GzipReader implements Ingester for gzip-compressed (rotated) log files
type GzipReader struct {
	path string
	f    *os.File
	zr   *gzip.Reader
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

// NewGzipReader creates a reader for a .gz log file
func NewGzipReader(path string) *GzipReader {
	return &GzipReader{
		path: path,
		done: make(chan struct{}),
	}
}

// Start opens the file and streams its decompressed lines
func (g *GzipReader) Start() (<-chan LogLine, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", g.path, err)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read gzip header of %s: %w", g.path, err)
	}
	g.f, g.zr = f, zr

	out := make(chan LogLine)

	go func() {
		defer close(out)
		scanner := bufio.NewScanner(zr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		n := 0
		for scanner.Scan() {
			n++
			select {
			case out <- LogLine{Source: g.path, Number: n, Content: strings.TrimSuffix(scanner.Text(), "\r")}:
			case <-g.done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			g.setErr(fmt.Errorf("failed to read %s: %w", g.path, err))
		}
	}()

	return out, nil
}

// Stop closes the underlying file. Safe to call more than once.
func (g *GzipReader) Stop() error {
	var err error
	g.once.Do(func() {
		close(g.done)
		if g.zr != nil {
			g.zr.Close()
		}
		if g.f != nil {
			err = g.f.Close()
		}
	})
	return err
}

// Err returns the first read error, if any
func (g *GzipReader) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *GzipReader) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
	}
}
