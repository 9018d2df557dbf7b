package starlark

import "go.starlark.net/starlark"

// DefaultPoolSize bounds the idle threads kept by a ThreadPool.
const DefaultPoolSize = 16

// ThreadPool recycles Starlark threads between renders. Files render
// concurrently, so Get and Put may be called from many goroutines.
type ThreadPool struct {
	idle chan *starlark.Thread
}

// NewThreadPool returns a pool that keeps up to size idle threads, or
// DefaultPoolSize when size is not positive.
func NewThreadPool(size int) *ThreadPool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &ThreadPool{idle: make(chan *starlark.Thread, size)}
}

// Get hands out an idle thread, or a fresh one when none is idle. name
// labels the thread in Starlark backtraces, normally the file being
// rendered.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	select {
	case th := <-p.idle:
		th.Name = name
		return th
	default:
	}
	// print() inside a template must not reach stdout.
	return &starlark.Thread{Name: name, Print: func(*starlark.Thread, string) {}}
}

// Put makes th available again. It is dropped when the pool is full.
func (p *ThreadPool) Put(th *starlark.Thread) {
	if th == nil {
		return
	}
	th.Name = ""
	select {
	case p.idle <- th:
	default:
	}
}

// Size reports how many threads are idle.
func (p *ThreadPool) Size() int {
	return len(p.idle)
}
