package state

import (
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/stuartin/azenix-challenge/internal/entries"
)

// Run is the recorded outcome of one summary run. Only aggregates are kept,
// never the parsed entries themselves.
type Run struct {
	ID        int64
	LogFile   string
	CreatedAt time.Time
	Lines     int
	Parsed    int
	Failed    int
	UniqueIPs int
	TopURLs   []entries.Count
	TopIPs    []entries.Count
}

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		log_file TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		lines INTEGER,
		parsed INTEGER,
		failed INTEGER,
		unique_ips INTEGER,
		top_urls TEXT,
		top_ips TEXT
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveRun inserts r and returns its id
func (s *Store) SaveRun(r Run) (int64, error) {
	urlsJSON, err := json.Marshal(r.TopURLs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode top urls: %w", err)
	}
	ipsJSON, err := json.Marshal(r.TopIPs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode top ips: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO runs
		(log_file, created_at, lines, parsed, failed, unique_ips, top_urls, top_ips)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.LogFile,
		r.CreatedAt.UTC(),
		r.Lines,
		r.Parsed,
		r.Failed,
		r.UniqueIPs,
		string(urlsJSON),
		string(ipsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns up to limit runs, newest first
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, log_file, created_at, lines, parsed, failed, unique_ips, top_urls, top_ips
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var urlsJSON, ipsJSON string

		err = rows.Scan(
			&r.ID,
			&r.LogFile,
			&r.CreatedAt,
			&r.Lines,
			&r.Parsed,
			&r.Failed,
			&r.UniqueIPs,
			&urlsJSON,
			&ipsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(urlsJSON), &r.TopURLs); err != nil {
			return nil, fmt.Errorf("run %d: bad top_urls: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(ipsJSON), &r.TopIPs); err != nil {
			return nil, fmt.Errorf("run %d: bad top_ips: %w", r.ID, err)
		}

		runs = append(runs, r)
	}

	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
