package gateway

import (
	"sync"

	"mlibctl/internal/log"
)

// Notifier shows short-lived messages to the user. Calls must not block.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(msg string)

// Notify calls f
func (f NotifierFunc) Notify(msg string) { f(msg) }

// LogNotifier writes notifications to the package logger
type LogNotifier struct{}

// Notify logs msg at info level
func (LogNotifier) Notify(msg string) {
	log.LogWithFields(log.F("notification", true)).Info(msg)
}

// RecordingNotifier keeps every message. Front-ends without a surface for
// transient messages use it to print them afterwards.
type RecordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

// Notify records msg
func (r *RecordingNotifier) Notify(msg string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

// Messages returns a copy of the recorded messages
func (r *RecordingNotifier) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}
