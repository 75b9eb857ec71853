package pool

import (
	"io"
	"sync"
)

// LockedReader serializes access to an underlying reader, so that a single
// entropy source can feed every worker of a pool.
type LockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// NewLockedReader wraps r in a mutex.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{r: r}
}

func (l *LockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}
