package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"breakout/internal/config"
)

// Logger is a logrus entry tagged with the session id. Close releases the file sink.
type Logger struct {
	*logrus.Entry
	sink io.Closer
}

// New builds the game logger: text on console, JSON lines in the rotating log file when the
// platform has one. A nil console means stderr.
func New(cfg config.Log, console io.Writer) (*Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if console == nil {
		console = os.Stderr
	}

	base := logrus.New()
	base.SetOutput(console)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l := &Logger{}
	var path string
	if cfg.File != "" {
		var w io.WriteCloser
		if w, path = fileSink(cfg); w != nil {
			base.AddHook(&fileHook{
				w:         w,
				formatter: &logrus.JSONFormatter{},
			})
			l.sink = w
		}
	}

	l.Entry = base.WithField("session", uuid.NewString())
	if l.sink != nil {
		l.WithField("path", path).Debug("file logging enabled")
	}
	return l, nil
}

func (l *Logger) Close() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

// fileHook mirrors every entry into w with its own formatter.
type fileHook struct {
	w         io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.w.Write(b)
	return err
}
