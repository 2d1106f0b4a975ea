package pool

import (
	"sync"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// IntRowPool pools the integer rows used by dynamic-programming tables.
type IntRowPool struct {
	pool sync.Pool
}

// NewIntRowPool creates a pool whose fresh rows have the given capacity.
func NewIntRowPool(size int) *IntRowPool {
	return &IntRowPool{
		pool: sync.Pool{
			New: func() interface{} {
				row := make([]int, 0, size)
				return &row
			},
		},
	}
}

// Get returns a zeroed row of length n.
func (p *IntRowPool) Get(n int) *[]int {
	row := p.pool.Get().(*[]int)
	if cap(*row) < n {
		*row = make([]int, n)
		return row
	}
	*row = (*row)[:n]
	clear(*row)
	return row
}

// Put returns a row to the pool.
func (p *IntRowPool) Put(row *[]int) {
	*row = (*row)[:0]
	p.pool.Put(row)
}
