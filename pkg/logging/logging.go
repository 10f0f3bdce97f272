// Package logging builds the process logger: console output plus an
// optional rotating log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/synrais/padkeys/pkg/config"
)

// Logger writes to Console and, when a file is configured, to a rotating
// log next to the executable.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// Console is where log lines are echoed.
var Console io.Writer = os.Stdout

func New(cfg *config.UserConfig) *Logger {
	l := &Logger{}
	out := Console
	if path := cfg.LogPath(); path != "" {
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
		}
		out = io.MultiWriter(Console, l.file)
	}
	l.Logger = log.New(out, "", log.LstdFlags)
	return l
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
