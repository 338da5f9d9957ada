package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a candle series is too short to evaluate.
var ErrInsufficientData = errors.New("insufficient candle data")

// ErrNoCycle is returned by readers before the first cycle completed.
var ErrNoCycle = errors.New("no completed scan cycle")

// ProviderError is a non-success answer from the market data provider.
// Status carries the HTTP status, Code the provider's retCode.
type ProviderError struct {
	Op      string
	Status  int
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: provider error %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Message)
}
