package wm

import (
	"fmt"
	"log"

	"github.com/natefinch/lumberjack"
)

type stdLogger struct {
	*lumberjack.Logger
}

var logger Logger = stdLogger{}

type LogConfig struct {
	Logfile string
	MaxSize int `toml:"max_log_size"`
	MaxAge  int `toml:"max_log_age"`
}

// SetLogger creates a logger that saves to a rotating log file.  If no log file is
// given, messages go to stderr through the standard log package.
func (c *LogConfig) SetLogger() {
	if c == nil || c.Logfile == "" {
		Debugf("Sending log messages to stderr since no log file specified.\n")
		return
	}
	fmt.Printf("Sending log messages to: %s\n", c.Logfile)
	l := &lumberjack.Logger{
		Filename: c.Logfile,
		MaxSize:  c.MaxSize, // megabytes
		MaxAge:   c.MaxAge,  //days
	}
	log.SetOutput(l)
	logger = stdLogger{l}
}

// --- Logger implementation ----

func (slog stdLogger) Debugf(format string, args ...interface{}) {
	log.Printf(" DEBUG "+format, args...)
}

func (slog stdLogger) Infof(format string, args ...interface{}) {
	log.Printf(" INFO "+format, args...)
}

func (slog stdLogger) Warningf(format string, args ...interface{}) {
	log.Printf(" WARNING "+format, args...)
}

func (slog stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf(" ERROR "+format, args...)
}

func (slog stdLogger) Criticalf(format string, args ...interface{}) {
	log.Printf(" CRITICAL "+format, args...)
}

func (slog stdLogger) Shutdown() {
	if slog.Logger != nil {
		log.Printf("Closing log file...\n")
		slog.Close()
	}
}
