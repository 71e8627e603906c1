package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"altlens/internal/model"
)

// Progress levels shown to the operator.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Progress records the operator-facing message stream of one analysis run
// and mirrors every entry to the global logger. Safe for concurrent use.
// A nil *Progress discards everything.
type Progress struct {
	mu      sync.Mutex
	runID   string
	entries []model.LogEntry
	sink    func(model.LogEntry)
	now     func() time.Time
}

// NewProgress creates a stream for runID. sink, when non-nil, receives each
// entry as it is emitted.
func NewProgress(runID string, sink func(model.LogEntry)) *Progress {
	return &Progress{runID: runID, sink: sink, now: time.Now}
}

func (p *Progress) Infof(format string, args ...any)    { p.emit(LevelInfo, format, args...) }
func (p *Progress) Successf(format string, args ...any) { p.emit(LevelSuccess, format, args...) }
func (p *Progress) Warnf(format string, args ...any)    { p.emit(LevelWarning, format, args...) }
func (p *Progress) Errorf(format string, args ...any)   { p.emit(LevelError, format, args...) }

// Entries returns a copy of everything emitted so far.
func (p *Progress) Entries() []model.LogEntry {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.LogEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *Progress) emit(level, format string, args ...any) {
	if p == nil {
		return
	}
	e := model.LogEntry{Time: p.now(), Level: level, Message: fmt.Sprintf(format, args...)}

	p.mu.Lock()
	p.entries = append(p.entries, e)
	if p.sink != nil {
		p.sink(e)
	}
	p.mu.Unlock()

	fields := []zap.Field{zap.String("run_id", p.runID)}
	switch level {
	case LevelWarning:
		Warn(e.Message, fields...)
	case LevelError:
		Error(e.Message, fields...)
	default:
		Info(e.Message, fields...)
	}
}
