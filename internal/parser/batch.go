package parser

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of lines handed to one worker at a time
const chunkSize = 256

// Result is the outcome of parsing one input line. Exactly one of Entry and
// Err is set.
type Result struct {
	Line  int // 1-based
	Entry *LogEntry
	Err   error
}

// ParseAll parses every line and returns one Result per line, in input order.
// With workers > 1 the lines are parsed in parallel chunks and recombined by
// index, so the output is identical to a sequential run. The returned error
// is only set when ctx is done; per-line failures live in Result.Err.
func (p *HTTPParser) ParseAll(ctx context.Context, lines []string, workers int) ([]Result, error) {
	results := make([]Result, len(lines))

	if workers <= 1 {
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.parseResult(i, line)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(lines); start += chunkSize {
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = p.parseResult(i, lines[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *HTTPParser) parseResult(i int, line string) Result {
	entry, err := p.Parse(line)
	return Result{Line: i + 1, Entry: entry, Err: err}
}

// FirstError returns the error of the earliest failing line as a *LineError,
// or nil when every line parsed.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return &LineError{Line: r.Line, Err: r.Err}
		}
	}
	return nil
}

// Entries returns the successfully parsed entries in input order
func Entries(results []Result) []LogEntry {
	out := make([]LogEntry, 0, len(results))
	for _, r := range results {
		if r.Entry != nil {
			out = append(out, *r.Entry)
		}
	}
	return out
}
