package notify

import (
	"fmt"
	"io"
	"sync"
)

// Writer prints notifications as text lines, for headless hosts.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) RequestPermission() bool {
	return true
}

func (w *Writer) Show(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.w, "[%s] %s: %s\n", n.Tag, n.Title, n.Body)
}
