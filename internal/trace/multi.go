package trace

import "errors"

// teeTracer streams events and keeps them in a ring at the same time, so a
// long run can be followed live and still dumped afterwards.
type teeTracer struct {
	stream *StreamTracer
	ring   *RingTracer
	level  Level
}

func newTee(stream *StreamTracer, ring *RingTracer, level Level) *teeTracer {
	return &teeTracer{stream: stream, ring: ring, level: level}
}

// Emit gives each side its own copy; both stamp Seq.
func (t *teeTracer) Emit(ev *Event) {
	cp := *ev
	t.stream.Emit(&cp)
	t.ring.Emit(ev)
}

func (t *teeTracer) Flush() error {
	return errors.Join(t.stream.Flush(), t.ring.Flush())
}

func (t *teeTracer) Close() error {
	return errors.Join(t.stream.Close(), t.ring.Close())
}

func (t *teeTracer) Level() Level { return t.level }

func (t *teeTracer) Enabled() bool { return t.level > LevelOff }
