package writer

import "sync"

// ByteWriter is an in-memory io.Writer
// safe for concurrent use.
type ByteWriter struct {
	mu   sync.Mutex
	data []byte
}

func New() *ByteWriter {
	return &ByteWriter{
		data: make([]byte, 0),
	}
}

func (b *ByteWriter) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, data...)
	return len(data), nil
}

func (b *ByteWriter) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return string(b.data)
}
