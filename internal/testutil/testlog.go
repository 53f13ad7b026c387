package testlog

import (
	"sync"

	"service-lastmile/internal/logx"
)

// Entry is a recorded log entry
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value of the named field.
func (e Entry) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Recorder records log entries
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns a new recorder
func New() *Recorder { return &Recorder{} }

// Logger returns a logger bound to the recorder
func (r *Recorder) Logger() logx.Logger {
	return bound{r: r}
}

// Entries returns a copy of the log entries
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// HasMsg reports whether a message was logged at all.
func (r *Recorder) HasMsg(msg string) bool {
	_, ok := r.Find(msg)
	return ok
}

func (r *Recorder) add(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]logx.Field(nil), fields...)
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: cp})
}

type bound struct {
	r    *Recorder
	base []logx.Field
}

func (b bound) with(f []logx.Field) []logx.Field {
	return append(append([]logx.Field(nil), b.base...), f...)
}

func (b bound) Debug(msg string, f ...logx.Field) { b.r.add("debug", msg, b.with(f)) }
func (b bound) Info(msg string, f ...logx.Field)  { b.r.add("info", msg, b.with(f)) }
func (b bound) Warn(msg string, f ...logx.Field)  { b.r.add("warn", msg, b.with(f)) }
func (b bound) Error(msg string, f ...logx.Field) { b.r.add("error", msg, b.with(f)) }

func (b bound) With(f ...logx.Field) logx.Logger {
	return bound{r: b.r, base: b.with(f)}
}

func (b bound) Sync() error { return nil }

var _ logx.Logger = bound{}
