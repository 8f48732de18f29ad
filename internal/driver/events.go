package driver

import "time"

// Status captures the progress of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusParsing indicates the structural pass is running.
	StatusParsing Status = "parsing"
	// StatusValidating indicates the semantic pass is running.
	StatusValidating Status = "validating"
	// StatusOK indicates the file passed both passes.
	StatusOK Status = "ok"
	// StatusError indicates the file failed to load, parse or validate.
	StatusError Status = "error"
)

// Done reports whether s is terminal.
func (s Status) Done() bool { return s == StatusOK || s == StatusError }

// Event reports progress for a single file.
type Event struct {
	File    string
	Status  Status
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use: CheckDir emits from several workers.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink Sink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
