package raster

import (
	"strconv"
	"sync"
)

// Allocator hands out scratch byte regions. Every region returned by Alloc
// must be passed to Free exactly once.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates from the Go heap, Free is a no-op.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

func (HeapAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, NewError(KindAllocation, `invalid allocation size `+strconv.Itoa(n))
	}
	return make([]byte, n), nil
}

func (HeapAllocator) Free([]byte) {}

// CountingAllocator tracks outstanding regions of an underlying Allocator.
// A zero value wraps HeapAllocator.
type CountingAllocator struct {
	Allocator Allocator

	mu        sync.Mutex
	live      int
	liveBytes int
	total     int
}

var _ Allocator = (*CountingAllocator)(nil)

func (a *CountingAllocator) Alloc(n int) ([]byte, error) {
	var alloc Allocator = HeapAllocator{}
	if a.Allocator != nil {
		alloc = a.Allocator
	}
	b, err := alloc.Alloc(n)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.live++
	a.liveBytes += cap(b)
	a.total++
	a.mu.Unlock()
	return b, nil
}

func (a *CountingAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	a.mu.Lock()
	a.live--
	a.liveBytes -= cap(b)
	a.mu.Unlock()
	if a.Allocator != nil {
		a.Allocator.Free(b)
	}
}

// Live returns the number of regions not yet freed.
func (a *CountingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// LiveBytes returns the capacity of all regions not yet freed.
func (a *CountingAllocator) LiveBytes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.liveBytes
}

// Total returns the number of successful allocations.
func (a *CountingAllocator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}
