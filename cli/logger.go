package cli

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rakadenta/dompet"
)

// logrusLogger adapts logrus to the session core's Logger interface.
type logrusLogger struct {
	log *logrus.Logger
}

func newLogrusLogger(level string, out io.Writer) dompet.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &logrusLogger{log: log}
}

func (l *logrusLogger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *logrusLogger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *logrusLogger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}
