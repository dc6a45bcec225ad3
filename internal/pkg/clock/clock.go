// Package clock provides the time source used to measure conversion batches
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/mixtli/dungeon-lab-sub000/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Elapsed returns the time passed on c since start, never negative
func Elapsed(c Clock, start time.Time) time.Duration {
	d := c.Now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
