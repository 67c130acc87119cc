package loggers

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// LogFormatter tags every entry with the component that produced it.
type LogFormatter struct {
	Formatter *log.JSONFormatter
	Type      string
	Name      string
}

// Format allows this to be used as a logrus formatter
func (f LogFormatter) Format(entry *log.Entry) ([]byte, error) {
	// Underscores force these to be in the front in order type -> name
	entry.Data["__type"] = f.Type
	entry.Data["_name"] = f.Name
	return f.Formatter.Format(entry)
}

// MakeLogFormatter returns a JSON formatter for the named component.
func MakeLogFormatter(componentType string, name string) LogFormatter {
	return LogFormatter{
		Formatter: &log.JSONFormatter{
			DisableHTMLEscape: true,
		},
		Type: componentType,
		Name: name,
	}
}

// MakeLogger returns the root logger. Entries go to out unless logFile is set,
// in which case they are appended to that file; "-" selects standard out.
func MakeLogger(level string, logFile string, out io.Writer) (*log.Logger, error) {
	logger := log.New()
	logger.SetFormatter(MakeLogFormatter("utility-data", "main"))
	logger.SetOutput(out)

	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(lvl)
	}

	if logFile == "-" {
		logger.SetOutput(os.Stdout)
	} else if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return nil, fmt.Errorf("MakeLogger(): %w", err)
		}
		logger.SetOutput(f)
	}
	return logger, nil
}
