package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log обертка над logrus с API, которым пользуется остальной код
type Log struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger создает логгер по настройкам из конфига.
// target: stdout, stderr или file (тогда нужен filename)
func NewLogger(target, level, filename string) (*Log, error) {
	var w io.Writer
	var file *os.File

	switch strings.ToLower(target) {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	case "file":
		if filename == "" {
			return nil, fmt.Errorf("logger target 'file' requires filename")
		}
		if err := os.MkdirAll(filepath.Dir(filename), 0o750); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		file = f
	default:
		return nil, fmt.Errorf("unknown logger target: %s", target)
	}

	l, err := New(w, level)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, err
	}
	l.file = file
	return l, nil
}

// New создает логгер поверх произвольного writer (используется в тестах)
func New(w io.Writer, level string) (*Log, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Log{entry: logrus.NewEntry(base)}, nil
}

// Discard логгер, который ничего не пишет
func Discard() *Log {
	l, _ := New(io.Discard, "panic")
	return l
}

func (l *Log) WithField(key string, value interface{}) *Log {
	return &Log{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Log) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Log) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Log) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Log) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Log) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Log) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Log) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Log) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Log) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *Log) Fatal(args ...interface{})                 { l.entry.Fatal(args...) }
func (l *Log) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }
