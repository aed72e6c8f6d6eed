// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulq_test

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/ulq"
)

// =============================================================================
// Single-Goroutine Baselines
// =============================================================================

func BenchmarkMPMC_SingleOp(b *testing.B) {
	q := ulq.NewMPMC[int]()

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPMCIndirect_SingleOp(b *testing.B) {
	q := ulq.NewMPMCIndirect()

	b.ResetTimer()
	for i := range b.N {
		q.Enqueue(uintptr(i))
		q.Dequeue()
	}
}

func BenchmarkMPMCPtr_SingleOp(b *testing.B) {
	q := ulq.NewMPMCPtr()
	val := 42

	b.ResetTimer()
	for range b.N {
		q.Enqueue(unsafe.Pointer(&val))
		q.Dequeue()
	}
}

// BenchmarkMPMC_Prealloc measures the warmed-pool push path against the
// allocate-on-demand baseline above.
func BenchmarkMPMC_Prealloc(b *testing.B) {
	q := ulq.Build[int](ulq.New().Prealloc(1024))

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

// =============================================================================
// Contended Throughput
// =============================================================================

// BenchmarkMPMC_Parallel has every P run a push immediately followed by a
// drain attempt, which keeps the queue shallow and the free list hot.
func BenchmarkMPMC_Parallel(b *testing.B) {
	q := ulq.NewMPMC[int]()

	b.RunParallel(func(pb *testing.PB) {
		v := 0
		backoff := iox.Backoff{}
		for pb.Next() {
			q.Enqueue(&v)
			for {
				if _, err := q.Dequeue(); err == nil {
					backoff.Reset()
					break
				}
				backoff.Wait()
			}
		}
	})
}

// BenchmarkMPMC_ProducersConsumers splits goroutines into dedicated producer
// and consumer halves at several widths.
func BenchmarkMPMC_ProducersConsumers(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		if workers*2 > runtime.GOMAXPROCS(0) && workers > 1 {
			continue
		}
		b.Run(fmt.Sprintf("%dPx%dC", workers, workers), func(b *testing.B) {
			q := ulq.NewMPMC[int]()
			perProd := b.N/workers + 1

			var wg sync.WaitGroup
			b.ResetTimer()
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range perProd {
						v := i
						q.Enqueue(&v)
					}
				}()
			}
			wg.Add(workers)
			for range workers {
				go func() {
					defer wg.Done()
					backoff := iox.Backoff{}
					for range perProd {
						for {
							if _, err := q.Dequeue(); err == nil {
								backoff.Reset()
								break
							}
							backoff.Wait()
						}
					}
				}()
			}
			wg.Wait()
		})
	}
}
