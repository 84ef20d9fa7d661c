package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			games INTEGER NOT NULL,
			split1 INTEGER NOT NULL,
			split2 INTEGER NOT NULL,
			packs INTEGER NOT NULL DEFAULT 1,
			bounty INTEGER NOT NULL DEFAULT 3,
			deal TEXT NOT NULL,
			seed INTEGER NOT NULL,
			p1_wins INTEGER NOT NULL DEFAULT 0,
			p2_wins INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			mean_turns REAL NOT NULL DEFAULT 0,
			stddev_turns REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			engine_version TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_lengths (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			game_index INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			winner TEXT NOT NULL,
			FOREIGN KEY (batch_id) REFERENCES batches(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lengths_batch ON game_lengths(batch_id, game_index)`,
		`CREATE INDEX IF NOT EXISTS idx_lengths_turns ON game_lengths(batch_id, turns)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveBatch stores a completed batch, assigning an ID when absent.
func (s *SQLiteDB) SaveBatch(b *Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `INSERT INTO batches (
		id, variant, games, split1, split2, packs, bounty, deal, seed,
		p1_wins, p2_wins, draws, mean_turns, stddev_turns, duration_ms, engine_version
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		b.ID, b.Variant, b.Games, b.Split1, b.Split2, b.Packs, b.Bounty,
		b.Deal, b.Seed, b.P1Wins, b.P2Wins, b.Draws,
		b.MeanTurns, b.StddevTurns, b.DurationMs, b.EngineVersion,
	)

	return err
}

// SaveLengths stores per-game turn counts for a batch in one transaction.
func (s *SQLiteDB) SaveLengths(batchID string, lengths []GameLength) error {
	if len(lengths) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO game_lengths (batch_id, game_index, turns, winner) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range lengths {
		if _, err := stmt.Exec(batchID, l.GameIndex, l.Turns, l.Winner); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBatch retrieves a batch by ID.
func (s *SQLiteDB) GetBatch(id string) (*Batch, error) {
	query := `SELECT id, variant, games, split1, split2, packs, bounty, deal, seed,
		p1_wins, p2_wins, draws, mean_turns, stddev_turns, duration_ms, engine_version, created_at
		FROM batches WHERE id = ?`

	var b Batch
	err := s.db.QueryRow(query, id).Scan(
		&b.ID, &b.Variant, &b.Games, &b.Split1, &b.Split2, &b.Packs, &b.Bounty,
		&b.Deal, &b.Seed, &b.P1Wins, &b.P2Wins, &b.Draws,
		&b.MeanTurns, &b.StddevTurns, &b.DurationMs, &b.EngineVersion, &b.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &b, nil
}

// GetLengths retrieves game lengths for a batch with pagination.
func (s *SQLiteDB) GetLengths(batchID string, limit, offset int) ([]GameLength, error) {
	query := `SELECT batch_id, game_index, turns, winner
		FROM game_lengths WHERE batch_id = ?
		ORDER BY game_index LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, batchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lengths []GameLength
	for rows.Next() {
		var l GameLength
		if err := rows.Scan(&l.BatchID, &l.GameIndex, &l.Turns, &l.Winner); err != nil {
			return nil, err
		}
		lengths = append(lengths, l)
	}

	return lengths, rows.Err()
}

// ListBatches returns the most recent batches, newest first.
func (s *SQLiteDB) ListBatches(limit int) ([]Batch, error) {
	query := `SELECT id, variant, games, split1, split2, packs, bounty, deal, seed,
		p1_wins, p2_wins, draws, mean_turns, stddev_turns, duration_ms, engine_version, created_at
		FROM batches ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(
			&b.ID, &b.Variant, &b.Games, &b.Split1, &b.Split2, &b.Packs, &b.Bounty,
			&b.Deal, &b.Seed, &b.P1Wins, &b.P2Wins, &b.Draws,
			&b.MeanTurns, &b.StddevTurns, &b.DurationMs, &b.EngineVersion, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}
