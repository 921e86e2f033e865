package event

import (
	"math/bits"
	"sync/atomic"
)

// EventQueue is a lock-free multi-producer ring consumed once per tick
// Producers (the input goroutine, handlers emitting follow-ups) claim a slot by CAS on tail
// and publish it by flag; the single consumer stops at the first unpublished slot
//
// When full, the oldest unread events are overwritten and counted as dropped
type EventQueue struct {
	events    []Event
	published []atomic.Bool
	mask      uint64
	head      atomic.Uint64 // Next slot to read
	tail      atomic.Uint64 // Next slot to claim
	dropped   atomic.Uint64
}

// NewEventQueue creates a queue holding at least capacity events, rounded up to a power of two
func NewEventQueue(capacity int) *EventQueue {
	if capacity < 2 {
		capacity = 2
	}
	size := uint64(1) << bits.Len64(uint64(capacity-1))
	return &EventQueue{
		events:    make([]Event, size),
		published: make([]atomic.Bool, size),
		mask:      size - 1,
	}
}

// Cap returns the ring size
func (eq *EventQueue) Cap() int {
	return len(eq.events)
}

// Push claims the next slot and publishes ev into it
func (eq *EventQueue) Push(ev Event) {
	size := uint64(len(eq.events))
	for {
		slot := eq.tail.Load()
		if !eq.tail.CompareAndSwap(slot, slot+1) {
			continue
		}

		idx := slot & eq.mask
		eq.events[idx] = ev
		eq.published[idx].Store(true) // After the write

		// Overwrote an unread event: move head past it
		if head := eq.head.Load(); slot+1-head > size {
			if eq.head.CompareAndSwap(head, slot+1-size) {
				eq.dropped.Add(slot + 1 - size - head)
			}
		}
		return
	}
}

// Consume drains published events in FIFO order
func (eq *EventQueue) Consume() []Event {
	size := uint64(len(eq.events))
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return nil
		}

		pending := tail - head
		if pending > size {
			head = tail - size
			pending = size
		}

		batch := make([]Event, 0, pending)
		for i := uint64(0); i < pending; i++ {
			idx := (head + i) & eq.mask
			if !eq.published[idx].Load() {
				break
			}
			batch = append(batch, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(batch))) {
			if len(batch) == 0 {
				return nil
			}
			return batch
		}
	}
}

// Len returns the approximate number of unread events
func (eq *EventQueue) Len() int {
	head, tail := eq.head.Load(), eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, uint64(len(eq.events))))
}

// Dropped returns how many unread events were overwritten since creation
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
