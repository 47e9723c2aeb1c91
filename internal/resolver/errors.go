package resolver

import "errors"

// Expected outcomes of a resolution session. These are ordinary results
// of user interaction, not faults: callers branch on them instead of
// aborting.
var (
	// ErrCancelled reports explicit user cancellation: an interrupt,
	// end of input, an empty response at a required step, or an
	// out-of-range disambiguation choice.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoMatch reports that a stage query scored at or below the
	// inclusion floor against every candidate, or that the stage had no
	// candidates at all.
	ErrNoMatch = errors.New("no matching candidate")

	// ErrNoProfile reports that the selected account and role pair maps
	// to no profile record in the catalog.
	ErrNoProfile = errors.New("no profile for the selected account and role")
)
