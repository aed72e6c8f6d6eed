// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import "unsafe"

// Queue is the combined producer-consumer interface for an unbounded FIFO
// queue.
//
// Enqueue always succeeds (the queue grows as needed); Dequeue is
// non-blocking and returns ErrWouldBlock when no element is available.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization, and
// excludes capacity because there is none. Track counts in application logic
// when needed.
//
// Example:
//
//	q := ulq.NewMPMC[int]()
//
//	// Enqueue (cannot fail)
//	val := 42
//	q.Enqueue(&val)
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the call
// boundary. The queue stores a copy of the pointed-to value, so the original
// can be modified after Enqueue returns. Safe for any number of goroutines.
type Producer[T any] interface {
	// Enqueue appends an element to the queue (non-blocking).
	// The element is copied into a queue node.
	// The returned error is always nil: an unbounded queue has no full
	// state. The signature mirrors the bounded queues in this ecosystem.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value, and the vacated node slot is cleared so
// the collector can reclaim whatever the element referenced. Safe for any
// number of goroutines.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// QueuePtr is the combined interface for unsafe.Pointer queues.
//
// QueuePtr passes pointers directly without copying the pointed-to object,
// enabling zero-copy transfer between goroutines.
//
// Ownership semantics: the producer transfers ownership to the consumer.
// After enqueueing, the producer should not access the object.
type QueuePtr interface {
	ProducerPtr
	ConsumerPtr
}

// ProducerPtr enqueues unsafe.Pointer values (non-blocking, cannot fail).
type ProducerPtr interface {
	Enqueue(elem unsafe.Pointer) error
}

// ConsumerPtr dequeues unsafe.Pointer values (non-blocking).
type ConsumerPtr interface {
	// Dequeue removes and returns the oldest pointer.
	// Returns (nil, ErrWouldBlock) if the queue is empty.
	Dequeue() (unsafe.Pointer, error)
}

// QueueIndirect is the combined interface for indirect (uintptr) queues.
//
// QueueIndirect passes indices or handles instead of full objects. This is
// useful for buffer pools, object pools, or any index-based data structure.
//
// Example (overflow list for a pool):
//
//	pool := make([][]byte, poolSize)
//	spill := ulq.NewMPMCIndirect()
//
//	// Return a buffer index
//	spill.Enqueue(uintptr(i))
//
//	// Reclaim one, if any
//	if idx, err := spill.Dequeue(); err == nil {
//	    buf := pool[idx]
//	    _ = buf
//	}
type QueueIndirect interface {
	ProducerIndirect
	ConsumerIndirect
}

// ProducerIndirect enqueues uintptr values (non-blocking, cannot fail).
type ProducerIndirect interface {
	Enqueue(elem uintptr) error
}

// ConsumerIndirect dequeues uintptr values (non-blocking).
type ConsumerIndirect interface {
	// Dequeue removes and returns the oldest value.
	// Returns (0, ErrWouldBlock) if the queue is empty.
	Dequeue() (uintptr, error)
}
