package checkout

import "github.com/shopspring/decimal"

// Option is one candidate of a fallback chain.
type Option[T any] struct {
	OK    bool
	Value T
}

func When[T any](ok bool, value T) Option[T] {
	return Option[T]{OK: ok, Value: value}
}

func NonEmpty(s string) Option[string] {
	return Option[string]{OK: s != "", Value: s}
}

// First returns the value of the first OK option, or last when none is.
func First[T any](last T, options ...Option[T]) T {
	for _, o := range options {
		if o.OK {
			return o.Value
		}
	}
	return last
}

func positive(d decimal.Decimal) bool {
	return d.IsPositive()
}
