package store

import "time"

// DB persists completed batches and, optionally, their raw game lengths.
type DB interface {
	Close() error
	Migrate() error
	SaveBatch(b *Batch) error
	SaveLengths(batchID string, lengths []GameLength) error
	GetBatch(id string) (*Batch, error)
	GetLengths(batchID string, limit, offset int) ([]GameLength, error)
	ListBatches(limit int) ([]Batch, error)
}

// Batch is one stored batch run: its configuration and aggregate outcome.
type Batch struct {
	ID            string    `json:"id" db:"id"`
	Variant       string    `json:"variant" db:"variant"`
	Games         int       `json:"games" db:"games"`
	Split1        int       `json:"split1" db:"split1"`
	Split2        int       `json:"split2" db:"split2"`
	Packs         int       `json:"packs" db:"packs"`
	Bounty        int       `json:"bounty" db:"bounty"`
	Deal          string    `json:"deal" db:"deal"`
	Seed          int64     `json:"seed" db:"seed"`
	P1Wins        uint64    `json:"p1_wins" db:"p1_wins"`
	P2Wins        uint64    `json:"p2_wins" db:"p2_wins"`
	Draws         uint64    `json:"draws" db:"draws"`
	MeanTurns     float64   `json:"mean_turns" db:"mean_turns"`
	StddevTurns   float64   `json:"stddev_turns" db:"stddev_turns"`
	DurationMs    int64     `json:"duration_ms" db:"duration_ms"`
	EngineVersion string    `json:"engine_version" db:"engine_version"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// GameLength is one stored per-game turn count, the raw material for length
// histograms.
type GameLength struct {
	BatchID   string `json:"batch_id" db:"batch_id"`
	GameIndex int    `json:"game_index" db:"game_index"`
	Turns     uint32 `json:"turns" db:"turns"`
	Winner    string `json:"winner" db:"winner"`
}
