package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Bar is a throttled terminal progress bar. Observe is safe to call from
// multiple goroutines, which the parallel builder does.
type Bar struct {
	total      int64
	current    int64
	width      int
	writer     io.Writer
	mu         sync.Mutex
	lastFile   string
	lastUpdate time.Time
}

func New(total int64) *Bar {
	return &Bar{
		total:  total,
		width:  50,
		writer: os.Stdout,
	}
}

// Observe records one hashed file and re-renders at most every 100ms.
func (b *Bar) Observe(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	b.lastFile = filepath.Base(path)

	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu held.
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filled := int(float64(b.width) * float64(b.current) / float64(b.total))
	if filled > b.width {
		filled = b.width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	suffix := ""
	if b.lastFile != "" {
		suffix = " | " + b.lastFile
	}

	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s",
		bar, int(percent), b.current, b.total, suffix)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.total
	b.lastFile = ""
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
