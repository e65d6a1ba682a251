package chartparse

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// keySelector hands out one tracer for a single key and no-op tracers for
// every other key.
type keySelector struct {
	key   string
	trace tracing.Trace
}

func (s keySelector) Select(key string) tracing.Trace {
	if key == s.key {
		return s.trace
	}
	return tracing.NoOpTrace()
}

// TraceTo installs a global trace selector that writes the parser's traces
// to w through a Go logger, filtered at level. The returned function
// uninstalls it.
func TraceTo(w io.Writer, level tracing.TraceLevel) func() {
	t := gologadapter.New()
	t.SetOutput(w)
	t.SetTraceLevel(level)
	tracing.SetTraceSelector(keySelector{key: TraceKey, trace: t})
	return func() {
		tracing.SetTraceSelector(nil)
	}
}
