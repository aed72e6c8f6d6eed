// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

// MPMCIndirect is an unbounded MPMC queue of uintptr values.
//
// It shares the linked-node core with MPMC. Use it to pass pool indices or
// other handles without boxing; the queue never interprets the value as a
// pointer, so it carries no liveness obligation for whatever the handle
// names.
type MPMCIndirect struct {
	q *MPMC[uintptr]
}

// NewMPMCIndirect creates an empty indirect queue with default options.
func NewMPMCIndirect() *MPMCIndirect {
	return &MPMCIndirect{q: newMPMC[uintptr](defaultOptions())}
}

// Enqueue appends a value to the queue. The error is always nil.
func (p *MPMCIndirect) Enqueue(elem uintptr) error {
	return p.q.Enqueue(&elem)
}

// Dequeue removes and returns the oldest value.
// Returns (0, ErrWouldBlock) if the queue is empty.
func (p *MPMCIndirect) Dequeue() (uintptr, error) {
	return p.q.Dequeue()
}

// Allocated returns the number of nodes ever created.
func (p *MPMCIndirect) Allocated() int {
	return p.q.Allocated()
}

// Close releases node storage. Same precondition as [MPMC.Close].
func (p *MPMCIndirect) Close() {
	p.q.Close()
}
