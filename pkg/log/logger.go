// Package log configures the op/go-logging backend shared by the pathtracer
// commands and the web server.
//
// Every named logger writes through one sink and obeys one threshold. Results
// are logged at Notice, render progress at Info and per-tile detail at Debug,
// so the default threshold prints only results and warnings.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a verbosity threshold; messages below it are dropped
type Level int

// Thresholds from most to least verbose
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) backend() logging.Level {
	if l < Debug || int(l) >= len(backendLevels) {
		return logging.ERROR
	}
	return backendLevels[l]
}

// String returns the level name as it appears in log lines
func (l Level) String() string {
	return l.backend().String()
}

// ForVerbosity maps the -v and -vv command line switches to a threshold.
// -vv wins when both are given.
func ForVerbosity(verbose, veryVerbose bool) Level {
	switch {
	case veryVerbose:
		return Debug
	case verbose:
		return Info
	default:
		return Notice
	}
}

var lineFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// shared is the backend every logger writes through
var shared logging.LeveledBackend

// Logger covers the levels the commands use. Its Debugf, Infof and Warningf
// methods make it usable wherever the renderer expects a core.Logger.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module; the module name is printed on every line
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink sends every logger's output to sink, keeping the current threshold
func SetSink(sink io.Writer) {
	threshold := Notice.backend()
	if shared != nil {
		threshold = shared.GetLevel("")
	}

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), lineFormat)
	shared = logging.AddModuleLevel(formatted)
	shared.SetLevel(threshold, "")
	logging.SetBackend(shared)
}

// SetLevel sets the threshold for every logger
func SetLevel(level Level) {
	shared.SetLevel(level.backend(), "")
}

// GetLevel reports the current threshold
func GetLevel() Level {
	current := shared.GetLevel("")
	for level, backend := range backendLevels {
		if backend == current {
			return Level(level)
		}
	}
	return Error
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
