package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLogger writes JSON log lines to a file through zap.
type FileLogger struct {
	log *zap.SugaredLogger
}

// NewFileLogger opens (or creates) path and returns a logger appending to it.
// Debug messages are kept only when debug is true.
func NewFileLogger(path string, debug bool) (*FileLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &FileLogger{log: l.Sugar().Named("netuse")}, nil
}

func (l *FileLogger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *FileLogger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *FileLogger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Close flushes buffered entries.
func (l *FileLogger) Close() error {
	return l.log.Sync()
}
