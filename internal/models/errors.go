package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means a request carried no usable payload at all.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoCards means the card source returned nothing for the request.
	ErrNoCards = errors.New("no cards")
	// ErrNoCardFound wraps lookups that missed; see NoCardFoundError.
	ErrNoCardFound = errors.New("no card found")
	// ErrNotEnoughBasicLands means the land slot could not be filled.
	ErrNotEnoughBasicLands = errors.New("not enough basic lands")
	// ErrNotInBoosters means no card in the set is booster-legal.
	ErrNotInBoosters = errors.New("set has no cards found in boosters")
	// ErrNoValidPromo means a prerelease promo could not be selected.
	ErrNoValidPromo = errors.New("no valid promo")
	// ErrUnsupported wraps option combinations the engine refuses; see
	// UnsupportedError.
	ErrUnsupported = errors.New("unsupported")
	// ErrWrongCardCount means a deck or pack landed on an impossible size.
	ErrWrongCardCount = errors.New("wrong card count")
	// ErrGenerationExhausted means the retry loop hit its cap without
	// producing a valid pack.
	ErrGenerationExhausted = errors.New("pack generation exhausted retries")
)

// NoCardFoundError records which identifier missed. It matches
// errors.Is(err, ErrNoCardFound).
type NoCardFoundError struct {
	Identifier string
}

func (e *NoCardFoundError) Error() string {
	return fmt.Sprintf("no card found for %q", e.Identifier)
}

func (e *NoCardFoundError) Unwrap() error { return ErrNoCardFound }

// UnsupportedError records the option combination that was rejected. It
// matches errors.Is(err, ErrUnsupported).
type UnsupportedError struct {
	Combination string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported: %s", e.Combination)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }
