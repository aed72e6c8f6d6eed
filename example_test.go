// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that use atomix concurrency primitives.
// These trigger false positives with Go's race detector because atomix
// atomic operations appear as regular memory accesses to the detector.
// The examples are correct; they're excluded from race testing.

package ulq_test

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/ulq"
)

// ExampleNewMPMC demonstrates the basic push/pop contract.
func ExampleNewMPMC() {
	q := ulq.NewMPMC[int]()

	// Enqueue never fails: the queue grows as needed.
	for i := 1; i <= 5; i++ {
		v := i * 10
		q.Enqueue(&v)
	}

	// Dequeue is non-blocking; empty is a normal outcome.
	for {
		v, err := q.Dequeue()
		if ulq.IsWouldBlock(err) {
			break
		}
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleMPMC_Allocated demonstrates node recycling: a push after a pop
// reuses the retired node instead of allocating.
func ExampleMPMC_Allocated() {
	q := ulq.NewMPMC[string]()

	x := "x"
	q.Enqueue(&x)
	before := q.Allocated()

	q.Dequeue() // retires a node into the free list

	y := "y"
	q.Enqueue(&y) // reuses it
	fmt.Println(q.Allocated() == before)

	v, _ := q.Dequeue()
	fmt.Println(v)

	// Output:
	// true
	// y
}

// ExampleNewMPMCPtr demonstrates zero-copy ownership transfer.
func ExampleNewMPMCPtr() {
	type message struct {
		data string
	}

	q := ulq.NewMPMCPtr()

	// Producer creates the object once and hands it over.
	msg := &message{data: "payload"}
	q.Enqueue(unsafe.Pointer(msg))
	// msg ownership transferred - do not use msg after this

	// Consumer receives the same pointer, no copy.
	ptr, _ := q.Dequeue()
	fmt.Println((*message)(ptr).data)

	// Output:
	// payload
}

// ExampleNewMPMCIndirect demonstrates handle passing for a buffer pool.
func ExampleNewMPMCIndirect() {
	pool := [][]byte{
		make([]byte, 4096),
		make([]byte, 4096),
	}
	free := ulq.NewMPMCIndirect()
	for i := range pool {
		free.Enqueue(uintptr(i))
	}

	// Allocate: take an index off the free queue.
	idx, _ := free.Dequeue()
	buf := pool[idx]
	fmt.Println(len(buf))

	// Free: hand the index back.
	free.Enqueue(idx)

	// Output:
	// 4096
}
