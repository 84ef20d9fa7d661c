package api

import (
	"fmt"
	"strconv"
)

// Server-side caps, on top of the simulator's own validation. The API runs
// batches synchronously inside the request, so it refuses work that a CLI
// user could reasonably queue but a request handler should not.
const (
	maxGamesPerRequest   = 10_000_000
	maxWorkersPerRequest = 256
	maxLengthsPageSize   = 10_000
	defaultLengthsPage   = 1_000
	maxBatchListSize     = 500
	defaultBatchList     = 50
)

func validateSimulateRequest(req *SimulateRequest) error {
	if req.Games > maxGamesPerRequest {
		return fmt.Errorf("games %d exceeds per-request cap of %d", req.Games, maxGamesPerRequest)
	}
	if req.Workers > maxWorkersPerRequest {
		return fmt.Errorf("workers %d exceeds per-request cap of %d", req.Workers, maxWorkersPerRequest)
	}
	return req.Validate()
}

func validateGameRequest(req *GameRequest) error {
	packs := req.Packs
	if packs == 0 {
		packs = 1
	}
	if packs < 0 {
		return fmt.Errorf("packs must be positive, got %d", req.Packs)
	}
	if req.Bounty != nil && *req.Bounty < 0 {
		return fmt.Errorf("bounty must not be negative, got %d", *req.Bounty)
	}
	total := 52 * packs
	if req.Split[0] < 0 || req.Split[1] < 0 || req.Split[0]+req.Split[1] != total {
		return fmt.Errorf("split %d+%d must account for all %d cards", req.Split[0], req.Split[1], total)
	}
	return nil
}

// pageParams clamps limit/offset query values to sane bounds. Malformed
// values fall back to the defaults rather than failing the request.
func pageParams(limitStr, offsetStr string) (limit, offset int) {
	limit = defaultLengthsPage
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		limit = n
	}
	if limit > maxLengthsPageSize {
		limit = maxLengthsPageSize
	}
	if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}
