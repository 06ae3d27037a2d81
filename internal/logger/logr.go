package logger

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Sink implements logr.LogSink on top of a Logger. V(0) maps to INFO and
// V(1) and above to DEBUG.
type Sink struct {
	logger *Logger
	name   string
	values []interface{}
}

// NewLogr returns a logr.Logger writing through l.
func NewLogr(l *Logger) logr.Logger {
	return logr.New(&Sink{logger: l})
}

// Init is part of logr.LogSink; runtime info is not used.
func (s *Sink) Init(logr.RuntimeInfo) {}

func (s *Sink) Enabled(level int) bool {
	if level == 0 {
		return s.logger.level <= LevelInfo
	}
	return s.logger.level <= LevelDebug
}

func (s *Sink) Info(level int, msg string, keysAndValues ...interface{}) {
	fields := s.fields(keysAndValues)
	if level == 0 {
		s.logger.Info(msg, fields)
	} else {
		s.logger.Debug(msg, fields)
	}
}

func (s *Sink) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := s.fields(keysAndValues)
	if err != nil {
		fields["error"] = err.Error()
	}
	s.logger.Error(msg, fields)
}

// WithValues returns a sink that adds keysAndValues to every record.
func (s *Sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	n := *s
	n.values = append(append([]interface{}(nil), s.values...), keysAndValues...)
	return &n
}

// WithName returns a sink whose records carry name, joined to any existing
// name with a dot.
func (s *Sink) WithName(name string) logr.LogSink {
	n := *s
	if s.name == "" {
		n.name = name
	} else {
		n.name = s.name + "." + name
	}
	return &n
}

// fields merges the accumulated values with the call's key/value pairs.
// Later keys win; non-string keys are formatted with %v.
func (s *Sink) fields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{})
	if s.name != "" {
		fields["logger"] = s.name
	}
	for _, kvs := range [][]interface{}{s.values, keysAndValues} {
		for i := 0; i+1 < len(kvs); i += 2 {
			key, ok := kvs[i].(string)
			if !ok {
				key = fmt.Sprint(kvs[i])
			}
			fields[key] = kvs[i+1]
		}
	}
	return fields
}
