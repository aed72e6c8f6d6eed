// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ulq provides an unbounded lock-free MPMC FIFO queue with node
// recycling.
//
// The queue is a singly linked chain with a permanent dummy (sentinel) node
// at the front, an append cursor at the back, and a free list of retired
// nodes in between lives. Producers recycle nodes instead of allocating;
// consumers retire the vacated sentinel after every pop. Reclamation is made
// safe by a per-node busy flag packed into the low bit of each node's atomic
// next word, plus modification counts that make stale compare-and-swaps fail
// — no hazard pointers, no epochs, no locks anywhere.
//
// # Quick Start
//
//	q := ulq.NewMPMC[Event]()
//
//	// Enqueue never fails: the queue grows as needed.
//	ev := Event{ID: 1}
//	q.Enqueue(&ev)
//
//	// Dequeue is non-blocking; empty is a normal outcome.
//	ev, err := q.Dequeue()
//	if ulq.IsWouldBlock(err) {
//	    // nothing available right now
//	}
//
// Builder API for configured queues:
//
//	q := ulq.Build[Event](ulq.New().Prealloc(1024))   // warmed-up pool
//	q := ulq.New().MaxNodes(1 << 16).BuildPtr()       // capped arena
//
// # Queue Variants
//
// Three flavors share the same core:
//
//	NewMPMC[T]()      - Generic type-safe queue for any type
//	NewMPMCPtr()      - unsafe.Pointer queue (zero-copy ownership transfer)
//	NewMPMCIndirect() - uintptr queue (pool indices, handles)
//
// There are no SP/SC specializations and no bounded mode: this package is the
// unbounded complement of the bounded ring queues in
// [code.hybscloud.com/lfq]. Reach for lfq when you want backpressure; reach
// for ulq when producers must never be refused.
//
// # Ordering and Progress
//
// Both operations are lock-free: a contended goroutine repeats a local
// compare-and-swap loop until its own attempt succeeds, and the progress of
// one goroutine never depends on another being scheduled. FIFO order is the
// linearization order — elements become visible in the order their link
// CASes succeed, and pops are totally ordered by the order their
// sentinel-advance CASes succeed. That is real concurrent order, not call
// order: two racing Enqueues may land either way.
//
// # Node Recycling
//
// Every pop retires one node into a free list and every push tries the free
// list before allocating, so steady-state traffic performs no allocation at
// all (observable via Allocated, which is monotone). A retired node whose
// consumer has not finished extracting its value carries a set busy flag;
// producers skip a busy pool and allocate fresh rather than wait. The pool
// only grows — a burst of depth N leaves N pooled nodes behind for the life
// of the queue.
//
// # Blocking Consumers
//
// The core never waits. A consumer that wants to park layers its own retry
// loop over Dequeue, or uses the packaged wrapper:
//
//	w := ulq.NewBlocking(ulq.NewMPMC[Job]())
//	job := w.Dequeue() // waits with iox.Backoff until a job arrives
//
// # Teardown
//
// Close releases node storage. It requires external quiescence: no operation
// may be in flight and none may follow. The queue does not enforce this;
// violating it is undefined behavior, matching the rest of this ecosystem's
// treatment of precondition violations.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// It tracks explicit synchronization primitives (mutex, channels, WaitGroup)
// but cannot observe happens-before relationships established through atomic
// memory orderings on separate variables. The algorithms here are correct
// under the acquire-release protocol described in tagged.go, but the
// detector may report false positives on the value slots. Tests incompatible
// with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package ulq
