package error

import "errors"

// Quote provider errors.
var (
	// ErrQuoteNotFound is returned when no provider yields a quote for a symbol.
	ErrQuoteNotFound = errors.New("quote not found for symbol")

	// ErrQuoteTimeout is returned when a quote fetch exceeds its deadline.
	ErrQuoteTimeout = errors.New("quote fetch timed out")

	// ErrQuoteUpstream is returned when a provider answers with an error status.
	ErrQuoteUpstream = errors.New("quote provider error")

	// ErrClassNotQuotable is returned for asset classes with no market quote source.
	ErrClassNotQuotable = errors.New("asset class has no quote source")
)
