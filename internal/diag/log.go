package diag

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger wraps hclog.Logger so probe-path rejections and Init/Eval
// failures go through one consistent surface: probe errors at Trace,
// everything else at Error, both with structured fields rather than a
// formatted string.
type Logger struct {
	hclog.Logger
}

// NewLogger constructs the named logger the Delegate Core holds for its
// own lifetime. An empty name defaults to "ovdelegate". The Graph
// Builder and op translators do not receive it.
func NewLogger(name string) *Logger {
	if name == "" {
		name = "ovdelegate"
	}
	return &Logger{
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:       name,
			Level:      hclog.Warn,
			Output:     os.Stderr,
			JSONFormat: false,
		}),
	}
}

// LogProbeRejection logs a probe-time rejection at Trace, never Error,
// per the contract that probe failures are silent to the host.
func (l *Logger) LogProbeRejection(nodeIdx int, err error) {
	l.Trace("node rejected by probe", "node", nodeIdx, "kind", Kind(err).String(), "err", err)
}

// LogBuildFailure logs an Init-time build failure at Error with the
// failing node index attached as a structured field.
func (l *Logger) LogBuildFailure(nodeIdx int, err error) {
	l.Error("build failed", "node", nodeIdx, "kind", Kind(err).String(), "err", err)
}

// LogEvalFailure logs an Eval-time failure at Error.
func (l *Logger) LogEvalFailure(err error) {
	l.Error("eval failed", "kind", Kind(err).String(), "err", err)
}
