package session

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a request is already in flight.
var ErrBusy = errors.New("a generation request is already in flight")

// Slot holds at most one in-flight request. The zero value is empty.
type Slot struct {
	busy atomic.Bool
}

// Acquire claims the slot or fails with ErrBusy.
func (s *Slot) Acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// Release empties the slot.
func (s *Slot) Release() { s.busy.Store(false) }

func (s *Slot) Busy() bool { return s.busy.Load() }
