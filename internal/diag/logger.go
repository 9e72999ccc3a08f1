// Package diag is the shell's diagnostic-output envelope: a structured
// logger for internal tracing, and colored status lines for the
// user-visible job-control notifications described in spec.md §7.
//
// The Logger interface and the "hold a *zap.Logger, call it through
// Debugf/Infof/..." shape mirror the `Log logger.Logger` field threaded
// through machinist/machine/node.go, backed by the teacher's own direct
// dependency on go.uber.org/zap (also used directly, the same way, in
// git-ecosystem-trace2receiver's rcvr_base.go).
package diag

import "go.uber.org/zap"

// Logger is the narrow interface shell components log through.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New returns a Logger backed by a production zap.Logger writing to stderr.
func New(debug bool) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level.SetLevel(-1) // zapcore.DebugLevel
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: l.Sugar()}, nil
}

func (z *zapLogger) Debugf(format string, args ...interface{}) { z.sugar.Debugf(format, args...) }
func (z *zapLogger) Infof(format string, args ...interface{})  { z.sugar.Infof(format, args...) }
func (z *zapLogger) Warnf(format string, args ...interface{})  { z.sugar.Warnf(format, args...) }
func (z *zapLogger) Errorf(format string, args ...interface{}) { z.sugar.Errorf(format, args...) }

// Nil is a Logger that discards everything, for tests, the same role
// enkit's logger.Nil plays (see lib/kflags/kconfig/retriever_test.go).
var Nil Logger = nilLogger{}

type nilLogger struct{}

func (nilLogger) Debugf(string, ...interface{}) {}
func (nilLogger) Infof(string, ...interface{})  {}
func (nilLogger) Warnf(string, ...interface{})  {}
func (nilLogger) Errorf(string, ...interface{}) {}
