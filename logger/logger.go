// Package logger sets up the logrus logger the cmd/ scripts share.
// Library packages don't log through this; they either return errors or,
// for non-fatal heads-up messages deep in a read loop, use the stdlib
// log package directly.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to stderr and, if logfile is not empty,
// to a size-rotated copy of it. The level comes from the GOCRYS_LOG
// environment variable and defaults to info.
func New(logfile string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("GOCRYS_LOG")); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	if logfile != "" {
		rot := &lumberjack.Logger{
			Filename: logfile,
			MaxSize:  20, //MB
			MaxAge:   30, //days
			Compress: true,
		}
		l.SetOutput(io.MultiWriter(os.Stderr, rot))
	}
	return l
}
