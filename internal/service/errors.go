package service

import "errors"

var (
	ErrBidderNotFound = errors.New("bidder not found")
	ErrBidNotFound    = errors.New("bid not found")

	// ErrValidation marks malformed or missing required input. Nothing is
	// persisted when it fires.
	ErrValidation = errors.New("invalid input")

	// ErrStorageUnavailable marks a bid store that could not complete a read
	// or write. It is propagated to the caller; the service never retries.
	ErrStorageUnavailable = errors.New("bid store unavailable")

	// ErrScoringUnavailable marks an AI scorer failure. The deterministic
	// score remains authoritative and the skip is recorded, never hidden.
	ErrScoringUnavailable = errors.New("ai scorer unavailable")

	// ErrMalformedInsight rejects insight payloads that are not a plain JSON
	// object (arrays, scalars, error envelopes).
	ErrMalformedInsight = errors.New("insight must be a JSON object")
)
