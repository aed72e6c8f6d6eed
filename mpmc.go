// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import (
	"code.hybscloud.com/spin"
)

// MPMC is an unbounded lock-free multi-producer multi-consumer FIFO queue.
//
// The queue is a singly linked chain headed by a permanent dummy (sentinel)
// node, plus a free list of retired nodes that producers recycle instead of
// allocating. Node storage lives in a grow-only arena addressed by handles;
// a node is created once and then cycles free → live → retiring → free until
// Close. Reclamation safety comes from the busy flag in each node's next word
// together with modification counts (see tagged.go), not from hazard pointers
// or epoch schemes.
//
// Enqueue never fails and Dequeue never blocks: an empty queue yields
// ErrWouldBlock, which is a control-flow signal, not a failure. Ordering is
// FIFO in linearization order: elements become visible in the order the link
// CASes succeed, and pops are totally ordered by the order the sentinel-
// advance CASes succeed.
//
// Memory: one node per in-flight element plus the recycled pool; the pool
// only grows (spikes are kept, never compacted).
type MPMC[T any] struct {
	_        pad
	sentinel cursor // dummy node before the first deliverable element
	_        pad
	tail     cursor // last linked node; may lag, maintained by helping
	_        pad
	freeHead cursor // head of the retired-node free list
	_        pad
	nodes    *arena[T]
}

// NewMPMC creates an empty unbounded MPMC queue with default options:
// no preallocated nodes and the default arena ceiling.
func NewMPMC[T any]() *MPMC[T] {
	return newMPMC[T](defaultOptions())
}

func newMPMC[T any](opts Options) *MPMC[T] {
	q := &MPMC[T]{nodes: newArena[T](opts.maxNodes)}
	s := q.nodes.alloc()
	// The fresh sentinel's next word is already (count 0, nil, not busy).
	q.sentinel.StoreRelaxed(packCursor(s, 0))
	q.tail.StoreRelaxed(packCursor(s, 0))
	q.freeHead.StoreRelaxed(packCursor(nilRef, 0))
	for range opts.prealloc {
		q.releaseNode(q.nodes.alloc())
	}
	return q
}

// Enqueue appends an element to the queue. It never fails and never blocks;
// the error result exists for symmetry with the bounded queues in this
// ecosystem and is always nil. The element is copied; the original may be
// modified after Enqueue returns.
//
// Cost is amortized O(1): a node comes from the free list, or one fresh node
// is allocated when the pool is empty or its head is still busy.
func (q *MPMC[T]) Enqueue(elem *T) error {
	r := q.acquireNode()
	n := q.nodes.at(r)
	n.value = *elem
	// Mark the node busy before it becomes visible. A relaxed store is
	// enough: the node stays private until the link CAS below, and that
	// CAS has release semantics.
	w := n.next.LoadRelaxed()
	n.next.StoreRelaxed(packNext(nilRef, true, w.count()+1))
	q.linkTail(r)
	return nil
}

// linkTail publishes node r at the end of the main chain.
//
// The tail cursor is a search hint: it is read, the candidate's next word is
// read, and the cursor is re-read to validate the view before the CAS. If the
// candidate already has a successor the cursor lags; the caller helps it
// forward one step and retries, so progress never waits on the goroutine that
// performed the previous link. The expected next word is captured before the
// validation: if the candidate has been retired and recycled since, its
// modification count has moved and the CAS fails.
func (q *MPMC[T]) linkTail(r nodeRef) {
	sw := spin.Wait{}
	for {
		t := q.tail.LoadAcquire()
		tn := q.nodes.at(t.ref())
		next := tn.next.LoadAcquire()
		if q.tail.LoadAcquire() != t {
			continue
		}
		if next.ref() == nilRef {
			// Real tail. The link preserves the tail node's own busy
			// flag: the flag tracks that node's lifecycle, not the
			// link's.
			if tn.next.CompareAndSwapAcqRel(next, packNext(r, next.busy(), next.count()+1)) {
				// Losing this CAS means another goroutine already
				// helped the cursor past t.
				q.tail.CompareAndSwapAcqRel(t, t.advance(r))
				return
			}
		} else {
			q.tail.CompareAndSwapAcqRel(t, t.advance(next.ref()))
		}
		sw.Once()
	}
}

// Dequeue removes and returns the oldest element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty; emptiness is an
// expected outcome, not an error. Callers wanting blocking semantics retry
// outside the core, see Blocking.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	var (
		s    cursorWord
		next nextWord
	)
	for {
		s = q.sentinel.LoadAcquire()
		sn := q.nodes.at(s.ref())
		next = sn.next.LoadAcquire()
		if q.sentinel.LoadAcquire() != s {
			// Stale view: the sentinel moved, so s.ref may already be
			// retired or recycled and next is not to be trusted.
			continue
		}
		if next.ref() == nilRef {
			// The sentinel did not move across the link load, so the
			// chain was genuinely empty at that instant.
			var zero T
			return zero, ErrWouldBlock
		}
		if t := q.tail.LoadAcquire(); t.ref() == s.ref() {
			// Keep the tail cursor from trailing behind the node we
			// are about to retire.
			q.tail.CompareAndSwapAcqRel(t, t.advance(next.ref()))
		}
		// Linearization point: claiming the successor fixes this call's
		// position in the total pop order.
		if q.sentinel.CompareAndSwapAcqRel(s, s.advance(next.ref())) {
			break
		}
		sw.Once()
	}

	// The claimed node is the new sentinel. Move its element out, clear the
	// vacated slot for the collector, then drop its busy flag: extraction is
	// finished and the node, once retired by a later pop, may be recycled.
	n := q.nodes.at(next.ref())
	elem := n.value
	var zero T
	n.value = zero
	q.clearBusy(next.ref())

	// Retire the previous sentinel into the free list.
	q.releaseNode(s.ref())
	return elem, nil
}

// acquireNode takes a node from the free list, or allocates a fresh one when
// the list is empty or its head is still busy (some prior operation has not
// finished touching it). Never blocks; bounded only by CAS retries.
func (q *MPMC[T]) acquireNode() nodeRef {
	sw := spin.Wait{}
	for {
		h := q.freeHead.LoadAcquire()
		r := h.ref()
		if r == nilRef {
			break
		}
		next := q.nodes.at(r).next.LoadAcquire()
		if next.busy() {
			// Skip the pool: the head is not ours to take yet, and
			// nodes below it stay unreachable until it is recycled.
			break
		}
		if q.freeHead.CompareAndSwapAcqRel(h, h.advance(next.ref())) {
			return r
		}
		sw.Once()
	}
	return q.nodes.alloc()
}

// releaseNode pushes a retired node onto the free list. The node's next word
// is repurposed as the free-list link; its busy flag is re-read and preserved
// on every round, because the consumer that extracted the node's value may
// still be clearing it concurrently.
func (q *MPMC[T]) releaseNode(r nodeRef) {
	n := q.nodes.at(r)
	sw := spin.Wait{}
	for {
		h := q.freeHead.LoadAcquire()
		w := n.next.LoadAcquire()
		if !n.next.CompareAndSwapAcqRel(w, w.withLink(h.ref(), w.busy())) {
			continue
		}
		if q.freeHead.CompareAndSwapAcqRel(h, h.advance(r)) {
			return
		}
		sw.Once()
	}
}

// clearBusy marks node r eligible for recycling, preserving its link. Only
// the consumer that moved r's value out calls this; r may already sit in the
// free list when the clear lands; producers skip it until the flag drops.
func (q *MPMC[T]) clearBusy(r nodeRef) {
	n := q.nodes.at(r)
	for {
		w := n.next.LoadAcquire()
		if n.next.CompareAndSwapAcqRel(w, w.withLink(w.ref(), false)) {
			return
		}
	}
}

// Allocated returns the number of nodes ever created, including the sentinel
// and any preallocated pool. The count is monotone: steady-state traffic that
// recycles nodes leaves it unchanged.
func (q *MPMC[T]) Allocated() int {
	return q.nodes.allocated()
}

// Close releases the queue's node storage.
//
// Precondition: no Enqueue or Dequeue is in flight and none will follow;
// external synchronization is required, the queue does not enforce it.
// Violating the precondition is undefined behavior, not a reported error.
func (q *MPMC[T]) Close() {
	var zero T
	s := q.sentinel.LoadRelaxed()
	// Main chain: the sentinel carries no deliverable value; every node past
	// it does. Clear the values so the collector can reclaim what they
	// reference. Free-list nodes were cleared when their values were moved
	// out, so walking the free list would find nothing to clear.
	r := q.nodes.at(s.ref()).next.LoadRelaxed().ref()
	for r != nilRef {
		n := q.nodes.at(r)
		n.value = zero
		r = n.next.LoadRelaxed().ref()
	}
	q.nodes.release()
}
