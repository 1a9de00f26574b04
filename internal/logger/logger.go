// Package logger writes structured logs to a rotating file under the config
// directory. Until Init succeeds every call is a no-op, so packages may log
// unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileName   = "triage.log"
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	Logger *log.Logger
	file   *lumberjack.Logger
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Console mirrors debug output to stderr. Must stay off while the TUI
	// owns the terminal.
	Console bool
}

// Path is where Init places the log file for dir.
func Path(dir string) string {
	return filepath.Join(dir, "logs", fileName)
}

// Init replaces the global logger. A logger from an earlier Init is closed.
// Only warnings and errors are kept unless Debug is set.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := Close(); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	var w io.Writer = file
	if cfg.Debug && cfg.Console {
		w = io.MultiWriter(os.Stderr, file)
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "triage",
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
		// the wrappers below add a frame
		CallerOffset: 1,
	})
	return nil
}

// Close flushes and releases the log file and resets to the no-op state.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }

func emit(level log.Level, msg string, keyvals []interface{}) {
	if l := Logger; l != nil {
		l.Log(level, msg, keyvals...)
	}
}
