// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq

import "code.hybscloud.com/atomix"

// nodeRef is a handle into the node arena. Handle 0 is the nil reference;
// handle i+1 addresses arena slot i. Handles replace raw pointers so that the
// low bit of a packed word is free by construction rather than by alignment,
// and so recycled nodes stay visible to the garbage collector.
type nodeRef uint32

// nilRef is the null node handle.
const nilRef nodeRef = 0

// nextWord packs a node's link state into one CAS-able machine word:
//
//	bits 63..33  modification count (31 bits, wraps)
//	bits 32..1   successor handle (nodeRef)
//	bit  0       busy flag
//
// The busy flag means "a prior operation has not finished touching this node;
// do not hand it to a new producer yet". The count increments on every write
// to the word, so a compare-and-swap armed with a stale observation fails even
// if the handle and flag have cycled back to the same values. That property is
// what makes free-list recycling safe without hazard pointers or epochs.
type nextWord uint64

const countMask = 1<<31 - 1

// packNext builds a nextWord. The count is truncated to 31 bits.
func packNext(r nodeRef, busy bool, count uint64) nextWord {
	w := (count&countMask)<<33 | uint64(r)<<1
	if busy {
		w |= 1
	}
	return nextWord(w)
}

// ref returns the successor handle.
func (w nextWord) ref() nodeRef { return nodeRef(w >> 1) }

// busy reports the flag bit.
func (w nextWord) busy() bool { return w&1 != 0 }

// count returns the modification count.
func (w nextWord) count() uint64 { return uint64(w >> 33) }

// withLink returns w rewritten to point at r with the given flag, count
// bumped. Used when repurposing next as a free-list link and when clearing
// the busy flag in place.
func (w nextWord) withLink(r nodeRef, busy bool) nextWord {
	return packNext(r, busy, w.count()+1)
}

// taggedNext is the atomic holder of a nextWord.
//
// CAS has weak semantics from the caller's perspective: every use sits in a
// retry loop, so a spurious failure only costs one iteration.
type taggedNext struct {
	w atomix.Uint64
}

func (a *taggedNext) LoadAcquire() nextWord { return nextWord(a.w.LoadAcquire()) }
func (a *taggedNext) LoadRelaxed() nextWord { return nextWord(a.w.LoadRelaxed()) }

// StoreRelaxed is only legal while the node is private to one goroutine
// (freshly acquired, not yet published).
func (a *taggedNext) StoreRelaxed(w nextWord) { a.w.StoreRelaxed(uint64(w)) }

func (a *taggedNext) CompareAndSwapAcqRel(old, new nextWord) bool {
	return a.w.CompareAndSwapAcqRel(uint64(old), uint64(new))
}

// cursorWord packs a stamped cursor (sentinel, tail, free-list head):
//
//	bits 63..32  stamp (increments on every successful CAS)
//	bits 31..0   node handle
//
// The stamp defeats ABA on cursor claims: a cursor word never recurs, so a
// CAS expecting an old observation cannot succeed after the cursor has moved,
// even if it later points at the same (recycled) node again.
type cursorWord uint64

// packCursor builds a cursorWord.
func packCursor(r nodeRef, stamp uint32) cursorWord {
	return cursorWord(uint64(stamp)<<32 | uint64(r))
}

// ref returns the node handle.
func (w cursorWord) ref() nodeRef { return nodeRef(w) }

// stamp returns the ABA stamp.
func (w cursorWord) stamp() uint32 { return uint32(w >> 32) }

// advance returns the word that moves the cursor to r, stamp bumped.
func (w cursorWord) advance(r nodeRef) cursorWord {
	return packCursor(r, w.stamp()+1)
}

// cursor is the atomic holder of a cursorWord.
type cursor struct {
	w atomix.Uint64
}

func (c *cursor) LoadAcquire() cursorWord { return cursorWord(c.w.LoadAcquire()) }
func (c *cursor) LoadRelaxed() cursorWord { return cursorWord(c.w.LoadRelaxed()) }
func (c *cursor) StoreRelaxed(w cursorWord) { c.w.StoreRelaxed(uint64(w)) }

func (c *cursor) CompareAndSwapAcqRel(old, new cursorWord) bool {
	return c.w.CompareAndSwapAcqRel(uint64(old), uint64(new))
}
