package models

import "errors"

// Custom errors
var (
	ErrZeroOdds              = errors.New("american odds of zero are invalid")
	ErrZeroMarketSum         = errors.New("implied probabilities sum to zero")
	ErrEmptyQuoteGroup       = errors.New("quote group is empty")
	ErrInsufficientQuotes    = errors.New("quote group below minimum sample size")
	ErrProbabilityOutOfRange = errors.New("probability must be in (0,1) exclusive")
	ErrNoLegs                = errors.New("parlay requires at least one leg")
	ErrInvalidLegProbability = errors.New("leg probability must be in (0,1) exclusive")
)
