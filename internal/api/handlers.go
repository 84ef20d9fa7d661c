package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MJE43/war-sim-go/internal/game"
	"github.com/MJE43/war-sim-go/internal/sim"
	"github.com/MJE43/war-sim-go/internal/store"
)

// handleSimulate runs a batch synchronously and persists the aggregate when a
// store is configured.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", nil)
		return
	}

	if err := validateSimulateRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	variant := req.Variant
	if variant == "" {
		variant = game.Standard.Name
	}

	result, err := s.sim.Run(r.Context(), req.BatchRequest)
	if err != nil {
		// The request passed validation, so a failure here in script mode is
		// the script author's problem, not ours.
		if req.Deal == sim.DealScript {
			s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
			return
		}
		s.logger.Printf("simulate failed variant=%s games=%d error=%v", variant, req.Games, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	resp := SimulateResponse{
		Stats:         statsPayload(result.Stats),
		Seed:          result.Seed,
		DurationMs:    result.Duration.Milliseconds(),
		Interrupted:   result.Interrupted,
		EngineVersion: EngineVersion,
		Echo:          req.BatchRequest,
	}

	if s.db != nil {
		batch := batchRecord(&req.BatchRequest, result)
		if err := s.db.SaveBatch(batch); err != nil {
			s.logger.Printf("save batch failed error=%v", err)
		} else {
			resp.BatchID = batch.ID
			if req.CollectLengths {
				if err := s.db.SaveLengths(batch.ID, lengthRecords(batch.ID, result.Lengths)); err != nil {
					s.logger.Printf("save lengths failed batch_id=%s error=%v", batch.ID, err)
				}
			}
		}
	}

	s.logger.Printf("simulate variant=%s games=%d p1_wins=%d p2_wins=%d draws=%d mean_turns=%.2f duration=%s",
		variant, req.Games, result.Stats.P1Wins, result.Stats.P2Wins,
		result.Stats.Draws, result.Stats.MeanTurns(), result.Duration)

	s.writeJSON(w, http.StatusOK, resp)
}

// handleGame plays a single game with a shuffled deal.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", nil)
		return
	}

	if err := validateGameRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	name := req.Variant
	if name == "" {
		name = game.Standard.Name
	}
	variant, ok := game.VariantByName(name)
	if !ok {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "unknown variant", map[string]any{"variant": req.Variant})
		return
	}

	bounty := game.DefaultBounty
	if req.Bounty != nil {
		bounty = *req.Bounty
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res := sim.RunGame(variant, req.Split, req.Packs, bounty, seed)

	s.writeJSON(w, http.StatusOK, GameResponse{
		Result:        res,
		Seed:          seed,
		EngineVersion: EngineVersion,
		Echo:          req,
	})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, VariantsResponse{
		Variants:      game.Variants(),
		DefaultBounty: game.DefaultBounty,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.presets)
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "no batch store configured", nil)
		return
	}

	limit := defaultBatchList
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > maxBatchListSize {
		limit = maxBatchListSize
	}

	batches, err := s.db.ListBatches(limit)
	if err != nil {
		s.logger.Printf("list batches failed error=%v", err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to list batches", nil)
		return
	}
	if batches == nil {
		batches = []store.Batch{}
	}
	s.writeJSON(w, http.StatusOK, batches)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "no batch store configured", nil)
		return
	}

	id := chi.URLParam(r, "id")
	batch, err := s.db.GetBatch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "batch not found", map[string]any{"id": id})
			return
		}
		s.logger.Printf("get batch failed id=%s error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load batch", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleGetLengths(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "no batch store configured", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.db.GetBatch(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "batch not found", map[string]any{"id": id})
			return
		}
		s.logger.Printf("get batch failed id=%s error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load batch", nil)
		return
	}

	q := r.URL.Query()
	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	lengths, err := s.db.GetLengths(id, limit, offset)
	if err != nil {
		s.logger.Printf("get lengths failed id=%s error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load game lengths", nil)
		return
	}
	if lengths == nil {
		lengths = []store.GameLength{}
	}
	s.writeJSON(w, http.StatusOK, lengths)
}

// batchRecord maps a completed run onto its stored form.
func batchRecord(req *sim.BatchRequest, result *sim.BatchResult) *store.Batch {
	bounty := game.DefaultBounty
	if req.Bounty != nil {
		bounty = *req.Bounty
	}
	packs := req.Packs
	if packs == 0 {
		packs = 1
	}
	deal := req.Deal
	if deal == "" {
		deal = sim.DealShuffled
	}
	variant := req.Variant
	if variant == "" {
		variant = game.Standard.Name
	}

	return &store.Batch{
		Variant:       variant,
		Games:         req.Games,
		Split1:        req.Split[0],
		Split2:        req.Split[1],
		Packs:         packs,
		Bounty:        bounty,
		Deal:          string(deal),
		Seed:          result.Seed,
		P1Wins:        result.Stats.P1Wins,
		P2Wins:        result.Stats.P2Wins,
		Draws:         result.Stats.Draws,
		MeanTurns:     result.Stats.MeanTurns(),
		StddevTurns:   result.Stats.StddevTurns(),
		DurationMs:    result.Duration.Milliseconds(),
		EngineVersion: EngineVersion,
	}
}

func lengthRecords(batchID string, lengths []sim.GameLength) []store.GameLength {
	out := make([]store.GameLength, len(lengths))
	for i, l := range lengths {
		out[i] = store.GameLength{
			BatchID:   batchID,
			GameIndex: l.Index,
			Turns:     l.Turns,
			Winner:    l.Winner.String(),
		}
	}
	return out
}
