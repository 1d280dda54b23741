package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// Init configures the package logger. format is "json" or "text".
func Init(level, format string) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// SetOutput redirects log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Logger exposes the underlying logrus instance.
func Logger() *logrus.Logger {
	return log
}

func Debug(msg string, args ...any) {
	log.WithFields(toFields(args)).Debug(msg)
}

func Info(msg string, args ...any) {
	log.WithFields(toFields(args)).Info(msg)
}

func Warn(msg string, args ...any) {
	log.WithFields(toFields(args)).Warn(msg)
}

func Error(msg string, args ...any) {
	log.WithFields(toFields(args)).Error(msg)
}

// toFields turns "key", value pairs into logrus fields. A bare error is
// logged under "error"; anything else without a key gets a positional name.
func toFields(args []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case string:
			if i+1 < len(args) {
				fields[v] = normalize(args[i+1])
				i++
			} else {
				fields[fmt.Sprintf("arg%d", i)] = v
			}
		case error:
			fields[logrus.ErrorKey] = v.Error()
		default:
			fields[fmt.Sprintf("arg%d", i)] = v
		}
	}
	return fields
}

func normalize(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}
