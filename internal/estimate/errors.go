package estimate

import "errors"

// Sentinel errors for the estimation engine. Callers classify failures with
// errors.Is; messages wrap these with the offending value.
var (
	// ErrConfiguration indicates a malformed external parameter source
	// (for example a non-mapping top level). Fatal before any computation.
	ErrConfiguration = errors.New("malformed configuration")

	// ErrInvalidProfile indicates an interaction profile outside the known
	// set (translation, completion, chatbot).
	ErrInvalidProfile = errors.New("unknown profile")

	// ErrInvalidInput indicates a negative size or count, or a malformed
	// date, in the data handed to the engine.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDivisionHazard indicates a parameter that would put a zero in a
	// denominator (throughput, inference power). Rejected before the
	// formula runs so no Inf/NaN ever propagates.
	ErrDivisionHazard = errors.New("division hazard")

	// ErrUnknownRegion indicates an explicitly requested region that is
	// absent from the carbon intensity table. Never silently defaulted.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrUnknownTier indicates an explicitly requested hardware tier that
	// is absent from the hardware table. Same rejection rule as regions.
	ErrUnknownTier = errors.New("unknown hardware tier")
)
