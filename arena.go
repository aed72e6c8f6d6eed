// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// node is one linked-list cell. While live it holds an element value and its
// next word links the main chain; while free the next word's handle bits are
// the free-list link instead. The value field is always present (no overlay):
// it is zeroed when the element is moved out, so the collector can reclaim
// whatever the element referenced.
type node[T any] struct {
	value T
	next  taggedNext
}

const (
	chunkShift = 9 // 512 nodes per chunk
	chunkSize  = 1 << chunkShift
	chunkMask  = chunkSize - 1
)

// chunk is one fixed block of node storage. Chunks are never moved or freed
// while the queue is open, so a nodeRef resolves to a stable address.
type chunk[T any] struct {
	nodes [chunkSize]node[T]
}

// arena is a grow-only pool of node slots addressed by nodeRef. Allocation
// issues handles with a fetch-and-add and installs the owning chunk with a
// compare-and-swap, so it is lock-free and never reuses a handle. Nodes are
// recycled through the queue's free list, not through the arena: the arena
// only grows, matching the queue's monotone node count.
type arena[T any] struct {
	_ pad
	issued atomix.Uint64 // handles handed out so far (FAA)
	_ pad
	chunks []atomic.Pointer[chunk[T]]
	limit  uint64
}

// newArena creates an arena that can issue up to maxNodes handles.
func newArena[T any](maxNodes int) *arena[T] {
	if maxNodes < 1 {
		panic("ulq: maxNodes must be >= 1")
	}
	nchunks := (uint64(maxNodes) + chunkMask) >> chunkShift
	return &arena[T]{
		chunks: make([]atomic.Pointer[chunk[T]], nchunks),
		limit:  uint64(maxNodes),
	}
}

// alloc issues a fresh node handle, growing the arena by one chunk when the
// handle lands past the installed storage. Exhausting the configured ceiling
// is fatal, mirroring out-of-memory: it is not reported as an error.
func (a *arena[T]) alloc() nodeRef {
	i := a.issued.AddAcqRel(1) - 1
	if i >= a.limit {
		panic("ulq: node arena exhausted")
	}
	ci := i >> chunkShift
	if a.chunks[ci].Load() == nil {
		a.chunks[ci].CompareAndSwap(nil, new(chunk[T]))
	}
	return nodeRef(i + 1)
}

// at resolves a handle to its node. r must be a handle issued by alloc.
func (a *arena[T]) at(r nodeRef) *node[T] {
	i := uint64(r - 1)
	return &a.chunks[i>>chunkShift].Load().nodes[i&chunkMask]
}

// allocated returns the number of nodes ever issued.
func (a *arena[T]) allocated() int {
	return int(a.issued.LoadAcquire())
}

// release drops all chunk storage. Only teardown calls this.
func (a *arena[T]) release() {
	for i := range a.chunks {
		a.chunks[i].Store(nil)
	}
}
