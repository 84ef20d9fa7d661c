package api

import (
	"github.com/MJE43/war-sim-go/internal/game"
	"github.com/MJE43/war-sim-go/internal/sim"
)

// EngineVersion identifies this simulation engine build in responses and logs.
const EngineVersion = "warsim-1.0.0"

// Error type identifiers returned to clients.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeNotFound   = "not_found"
	ErrTypeInternal   = "internal_error"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SimulateRequest configures a batch run over HTTP.
type SimulateRequest struct {
	sim.BatchRequest
}

// StatsPayload is the serialized view of a batch's aggregate statistics.
type StatsPayload struct {
	Games       uint64  `json:"games"`
	P1Wins      uint64  `json:"p1_wins"`
	P2Wins      uint64  `json:"p2_wins"`
	Draws       uint64  `json:"draws"`
	P1WinRate   float64 `json:"p1_win_rate"`
	MeanScore   float64 `json:"mean_score"`
	MeanTurns   float64 `json:"mean_turns"`
	StddevTurns float64 `json:"stddev_turns"`
}

func statsPayload(s sim.RunStats) StatsPayload {
	return StatsPayload{
		Games:       s.Games,
		P1Wins:      s.P1Wins,
		P2Wins:      s.P2Wins,
		Draws:       s.Draws,
		P1WinRate:   s.P1WinRate(),
		MeanScore:   s.MeanScore(),
		MeanTurns:   s.MeanTurns(),
		StddevTurns: s.StddevTurns(),
	}
}

// SimulateResponse reports a completed batch.
type SimulateResponse struct {
	BatchID       string           `json:"batch_id,omitempty"`
	Stats         StatsPayload     `json:"stats"`
	Seed          int64            `json:"seed"`
	DurationMs    int64            `json:"duration_ms"`
	Interrupted   bool             `json:"interrupted,omitempty"`
	EngineVersion string           `json:"engine_version"`
	Echo          sim.BatchRequest `json:"echo"`
}

// GameRequest configures a single game run.
type GameRequest struct {
	Variant string `json:"variant"`
	Split   [2]int `json:"split"`
	Packs   int    `json:"packs,omitempty"`
	Bounty  *int   `json:"bounty,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
}

// GameResponse reports a single completed game.
type GameResponse struct {
	Result        game.Result `json:"result"`
	Seed          int64       `json:"seed"`
	EngineVersion string      `json:"engine_version"`
	Echo          GameRequest `json:"echo"`
}

// VariantsResponse lists the rule variants the engine knows.
type VariantsResponse struct {
	Variants      []game.Variant `json:"variants"`
	DefaultBounty int            `json:"default_bounty"`
	EngineVersion string         `json:"engine_version"`
}
