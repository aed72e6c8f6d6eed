// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import "unsafe"

// Options configures queue creation.
type Options struct {
	// Nodes seeded into the free list at construction
	prealloc int

	// Ceiling on nodes the arena may ever create
	maxNodes int
}

// defaultMaxNodes caps the arena at ~4M nodes. The directory for the ceiling
// is allocated eagerly (one pointer per chunk); node storage itself grows on
// demand.
const defaultMaxNodes = 1 << 22

// maxArenaNodes is the hard ceiling imposed by the 32-bit handle space.
const maxArenaNodes = 1<<32 - 2

func defaultOptions() Options {
	return Options{maxNodes: defaultMaxNodes}
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Generic queue with a warmed-up node pool
//	q := ulq.Build[Event](ulq.New().Prealloc(1024))
//
//	// Pointer queue with a tight arena ceiling
//	q := ulq.New().MaxNodes(1 << 16).BuildPtr()
type Builder struct {
	opts Options
}

// New creates a queue builder with default options: no preallocated nodes
// and the default arena ceiling.
func New() *Builder {
	return &Builder{opts: defaultOptions()}
}

// Prealloc seeds the free list with n nodes at construction, so the first n
// pushes are served from the pool instead of the allocator. The pool never
// shrinks, so preallocation is permanent.
//
// Panics if n < 0.
func (b *Builder) Prealloc(n int) *Builder {
	if n < 0 {
		panic("ulq: Prealloc must be >= 0")
	}
	b.opts.prealloc = n
	return b
}

// MaxNodes caps the total number of nodes the queue may ever create (live
// elements plus the recycled pool plus the sentinel). Exceeding the cap at
// runtime is fatal, like any other allocation failure.
//
// Panics if n < 1 or n exceeds the handle space.
func (b *Builder) MaxNodes(n int) *Builder {
	if n < 1 || uint64(n) > maxArenaNodes {
		panic("ulq: MaxNodes out of range")
	}
	b.opts.maxNodes = n
	return b
}

func (b *Builder) validate() {
	// One handle is consumed by the sentinel before prealloc runs.
	if b.opts.prealloc+1 > b.opts.maxNodes {
		panic("ulq: MaxNodes must cover Prealloc plus the sentinel")
	}
}

// Build creates a generic unbounded MPMC queue from the builder.
func Build[T any](b *Builder) *MPMC[T] {
	b.validate()
	return newMPMC[T](b.opts)
}

// BuildPtr creates an unsafe.Pointer queue from the builder.
func (b *Builder) BuildPtr() *MPMCPtr {
	b.validate()
	return &MPMCPtr{q: newMPMC[unsafe.Pointer](b.opts)}
}

// BuildIndirect creates a uintptr queue from the builder.
func (b *Builder) BuildIndirect() *MPMCIndirect {
	b.validate()
	return &MPMCIndirect{q: newMPMC[uintptr](b.opts)}
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
