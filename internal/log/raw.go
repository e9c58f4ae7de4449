package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps raw HID traffic. The zero-writer logger discards.
type RawLogger interface {
	Log(inbound bool, kind string, data []byte)
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRaw returns a RawLogger writing one line per report to w. A nil w
// yields a logger that drops everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

func (l *rawLogger) Log(inbound bool, kind string, data []byte) {
	dir := ">>"
	if inbound {
		dir = "<<"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "%s %s %-10s %3d %s\n",
		time.Now().Format("15:04:05.000000"), dir, kind, len(data), hex.EncodeToString(data))
}

type nopRaw struct{}

func (nopRaw) Log(bool, string, []byte) {}
