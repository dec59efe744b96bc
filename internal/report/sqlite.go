package report

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/cardpower/internal/score"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store keeps scoring runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// StoredRun is one row of the runs table.
type StoredRun struct {
	ID        string `json:"id"`
	CardsFile string `json:"cards_file"`
	CardCount int    `json:"card_count"`
	CreatedAt string `json:"created_at"`
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open database: %w", err)
	}
	for _, p := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("report: pragma %q: %w", p, err)
		}
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("report: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			cards_file TEXT NOT NULL,
			card_count INTEGER NOT NULL,
			weights    TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS card_scores (
			run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank       INTEGER NOT NULL,
			card_id    INTEGER NOT NULL,
			name       TEXT NOT NULL,
			name_zh    TEXT NOT NULL,
			color      TEXT NOT NULL,
			cost       INTEGER NOT NULL,
			effect     TEXT NOT NULL,
			net_value  REAL NOT NULL,
			input_pts  REAL NOT NULL,
			output_pts REAL NOT NULL,
			breakdown  TEXT NOT NULL,
			PRIMARY KEY (run_id, rank)
		);

		CREATE INDEX IF NOT EXISTS idx_card_scores_name ON card_scores(name);
	`)
	return err
}

// SaveRun stores a ranking under a new run id and returns the id.
func (s *Store) SaveRun(cardsFile string, w score.Weights, ranked []score.ScoredCard) (string, error) {
	weights, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, cards_file, card_count, weights) VALUES (?, ?, ?, ?)`,
		id, cardsFile, len(ranked), string(weights),
	); err != nil {
		return "", fmt.Errorf("report: insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO card_scores
		(run_id, rank, card_id, name, name_zh, color, cost, effect, net_value, input_pts, output_pts, breakdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range Records(ranked) {
		breakdown, err := json.Marshal(r.Breakdown)
		if err != nil {
			return "", err
		}
		if _, err := stmt.Exec(id, r.Rank, r.ID, r.Name, r.NameZh, r.Color, r.Cost, r.Effect,
			r.NetValue, r.InputPts, r.OutputPts, string(breakdown)); err != nil {
			return "", fmt.Errorf("report: insert %s: %w", r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs() ([]StoredRun, error) {
	rows, err := s.db.Query(`SELECT id, cards_file, card_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredRun
	for rows.Next() {
		var r StoredRun
		if err := rows.Scan(&r.ID, &r.CardsFile, &r.CardCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RankOf returns the rank and net value stored for a card in a run.
func (s *Store) RankOf(runID, name string) (int, float64, error) {
	var rank int
	var net float64
	err := s.db.QueryRow(
		`SELECT rank, net_value FROM card_scores WHERE run_id = ? AND name = ?`, runID, name,
	).Scan(&rank, &net)
	return rank, net, err
}

// ExportSQLite appends the ranking to the database at path as a new run.
func ExportSQLite(path, cardsFile string, w score.Weights, ranked []score.ScoredCard) (string, error) {
	s, err := OpenStore(path)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.SaveRun(cardsFile, w, ranked)
}
