// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import "unsafe"

// MPMCPtr is an unbounded MPMC queue of unsafe.Pointer values.
//
// It shares the linked-node core with MPMC; the value slot holds the pointer
// itself, so transfer is zero-copy. The producer hands ownership of the
// pointed-to object to whichever consumer dequeues it.
//
// Example:
//
//	q := ulq.NewMPMCPtr()
//
//	msg := &Message{Data: largePayload}
//	q.Enqueue(unsafe.Pointer(msg))
//	// msg ownership transferred - do not use msg after this
//
//	ptr, err := q.Dequeue()
//	if err == nil {
//	    msg := (*Message)(ptr)
//	    _ = msg
//	}
type MPMCPtr struct {
	q *MPMC[unsafe.Pointer]
}

// NewMPMCPtr creates an empty pointer queue with default options.
func NewMPMCPtr() *MPMCPtr {
	return &MPMCPtr{q: newMPMC[unsafe.Pointer](defaultOptions())}
}

// Enqueue appends a pointer to the queue. The error is always nil.
func (p *MPMCPtr) Enqueue(elem unsafe.Pointer) error {
	return p.q.Enqueue(&elem)
}

// Dequeue removes and returns the oldest pointer.
// Returns (nil, ErrWouldBlock) if the queue is empty.
func (p *MPMCPtr) Dequeue() (unsafe.Pointer, error) {
	return p.q.Dequeue()
}

// Allocated returns the number of nodes ever created.
func (p *MPMCPtr) Allocated() int {
	return p.q.Allocated()
}

// Close releases node storage. Same precondition as [MPMC.Close].
func (p *MPMCPtr) Close() {
	p.q.Close()
}
