package sim

import "errors"

var (
	ErrNoGames        = errors.New("games must be positive")
	ErrBadSplit       = errors.New("deck split must deal out every card")
	ErrBadPacks       = errors.New("packs must be positive")
	ErrBadBounty      = errors.New("bounty must be >= 0")
	ErrBadWorkers     = errors.New("workers must be >= 0")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownDeal    = errors.New("unknown deal mode")
	ErrScriptRequired = errors.New("script deal mode requires a script")
	ErrMirroredSplit  = errors.New("mirrored deal requires an equal split")
)
