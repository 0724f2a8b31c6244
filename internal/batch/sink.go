package batch

import "github.com/xangelkai/audioconv/internal/model"

// Sink receives batch notifications. It is implemented by front ends.
type Sink interface {
	Log(entry model.LogEntry)
	Progress(completed, total int)
	BatchFinished(state State)
}

// SinkFuncs adapts plain functions to a Sink. Nil fields are skipped.
type SinkFuncs struct {
	OnLog      func(entry model.LogEntry)
	OnProgress func(completed, total int)
	OnFinished func(state State)
}

// Log implements Sink.
func (s SinkFuncs) Log(entry model.LogEntry) {
	if s.OnLog != nil {
		s.OnLog(entry)
	}
}

// Progress implements Sink.
func (s SinkFuncs) Progress(completed, total int) {
	if s.OnProgress != nil {
		s.OnProgress(completed, total)
	}
}

// BatchFinished implements Sink.
func (s SinkFuncs) BatchFinished(state State) {
	if s.OnFinished != nil {
		s.OnFinished(state)
	}
}
