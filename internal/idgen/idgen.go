// Package idgen issues task ids.
package idgen

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Strategy names accepted by New.
const (
	StrategyClock    = "clock"
	StrategySequence = "sequence"
)

// ErrExhausted is returned by Next once the largest int64 has been issued
// or observed.
var ErrExhausted = errors.New("task ids exhausted")

// Generator issues unique, strictly increasing ids.
type Generator interface {
	// Next returns a fresh id larger than any id issued or observed so far.
	Next() (int64, error)
	// Observe records an id that already exists so Next never reissues it.
	Observe(id int64)
}

// ClockGenerator derives ids from wall-clock milliseconds. Two calls in the
// same millisecond still get distinct ids because the result is bumped past
// the previous one.
type ClockGenerator struct {
	now  func() time.Time
	last int64
}

// NewClockGenerator creates a ClockGenerator reading time from now.
// A nil now uses time.Now.
func NewClockGenerator(now func() time.Time) *ClockGenerator {
	if now == nil {
		now = time.Now
	}
	return &ClockGenerator{now: now}
}

// Next implements Generator.
func (g *ClockGenerator) Next() (int64, error) {
	id := g.now().UnixMilli()
	if id <= g.last {
		if g.last == math.MaxInt64 {
			return 0, ErrExhausted
		}
		id = g.last + 1
	}
	g.last = id
	return id, nil
}

// Observe implements Generator.
func (g *ClockGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

// SequenceGenerator is a plain counter.
type SequenceGenerator struct {
	last int64
}

// NewSequenceGenerator creates a counter whose first id is start+1.
func NewSequenceGenerator(start int64) *SequenceGenerator {
	return &SequenceGenerator{last: start}
}

// Next implements Generator.
func (g *SequenceGenerator) Next() (int64, error) {
	if g.last == math.MaxInt64 {
		return 0, ErrExhausted
	}
	g.last++
	return g.last, nil
}

// Observe implements Generator.
func (g *SequenceGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

// New builds the generator for a configured strategy name.
func New(strategy string, now func() time.Time) (Generator, error) {
	switch strategy {
	case "", StrategyClock:
		return NewClockGenerator(now), nil
	case StrategySequence:
		return NewSequenceGenerator(0), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
