// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import "code.hybscloud.com/iox"

// Blocking adapts a queue's non-blocking Dequeue into a waiting receive.
//
// The core queue never blocks; waiting is caller convention layered on top of
// it. Blocking packages that convention: Dequeue retries with [iox.Backoff]
// until an element arrives. Deadline and cancellation logic stays with the
// caller; wrap your own retry loop instead when you need either.
//
// Example:
//
//	q := ulq.NewBlocking(ulq.NewMPMC[Task]())
//
//	go func() {
//	    for {
//	        task := q.Dequeue() // parks with backoff until work arrives
//	        task.Run()
//	    }
//	}()
type Blocking[T any] struct {
	q Queue[T]
}

// NewBlocking wraps q with a waiting Dequeue.
func NewBlocking[T any](q Queue[T]) *Blocking[T] {
	return &Blocking[T]{q: q}
}

// Enqueue forwards to the underlying queue. The error is always nil for the
// queues in this package.
func (b *Blocking[T]) Enqueue(elem *T) error {
	return b.q.Enqueue(elem)
}

// Dequeue returns the oldest element, waiting with adaptive backoff while the
// queue is empty.
func (b *Blocking[T]) Dequeue() T {
	backoff := iox.Backoff{}
	for {
		elem, err := b.q.Dequeue()
		if err == nil {
			return elem
		}
		backoff.Wait()
	}
}

// TryDequeue exposes the underlying non-blocking Dequeue.
func (b *Blocking[T]) TryDequeue() (T, error) {
	return b.q.Dequeue()
}
