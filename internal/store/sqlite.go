package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists activity to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads don't block scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS search_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_search_ts ON search_history(timestamp)`,

		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			price      REAL,
			change_pct REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol_ts ON quote_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS portfolio_valuations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			name       TEXT NOT NULL,
			investment REAL,
			value      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuation_ts ON portfolio_valuations(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) RecordSearch(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO search_history (timestamp, symbol) VALUES (?, ?)`,
		time.Now().Unix(), strings.ToUpper(symbol))
	return err
}

func (s *SQLiteStore) RecentSearches(limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol FROM search_history
		GROUP BY symbol ORDER BY MAX(id) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		out = append(out, symbol)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ClearSearches() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM search_history`)
	return err
}

func (s *SQLiteStore) RecordQuote(q *QuoteSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := q.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO quote_snapshots (timestamp, symbol, price, change_pct)
		VALUES (?, ?, ?, ?)`,
		at.Unix(), q.Symbol, q.Price, q.ChangePct)
	return err
}

func (s *SQLiteStore) RecentQuotes(symbol string, limit int) ([]QuoteSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT timestamp, symbol, price, change_pct
		FROM quote_snapshots WHERE symbol = ? ORDER BY id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuoteSnapshot
	for rows.Next() {
		var q QuoteSnapshot
		var ts int64
		if err := rows.Scan(&ts, &q.Symbol, &q.Price, &q.ChangePct); err != nil {
			return nil, err
		}
		q.At = time.Unix(ts, 0)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RecordValuation(v *PortfolioValuation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := v.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO portfolio_valuations (timestamp, name, investment, value)
		VALUES (?, ?, ?, ?)`,
		at.Unix(), v.Name, v.Investment, v.Value)
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
