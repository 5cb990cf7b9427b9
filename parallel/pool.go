package parallel

import "sync"

// BufferPool hands each worker thread a lazily allocated scratch buffer
// that is reused across every block it processes during one Executor
// run, then discarded at Release (called from the run's finish hook).
type BufferPool struct {
	mu      sync.Mutex
	buffers map[int]any
}

// NewBufferPool returns an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{buffers: make(map[int]any)}
}

// Get returns the buffer cached for threadIndex, calling factory to
// create (and cache) one on first use by that thread.
func (p *BufferPool) Get(threadIndex int, factory func() any) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.buffers[threadIndex]; ok {
		return b
	}
	b := factory()
	p.buffers[threadIndex] = b
	return b
}

// Release drops every cached buffer.
func (p *BufferPool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers = make(map[int]any)
}
