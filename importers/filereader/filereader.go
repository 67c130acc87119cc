package fileimporter

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/utilitycheck/utility-data/importers"
	"github.com/utilitycheck/utility-data/types"
)

// ErrInvalidUTF8 is wrapped in a ReadError when the file content cannot be
// decoded as UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

type fileReader struct {
	cfg    Config
	logger *logrus.Logger
}

// New initializes a file importer.
func New(cfg Config, logger *logrus.Logger) importers.Importer {
	return &fileReader{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *fileReader) Import(path string) (string, error) {
	text, err := ReadText(path, r.cfg)
	if err != nil {
		return "", err
	}
	r.logger.WithField("path", path).Debugf("read %d bytes", len(text))
	return text, nil
}

// ReadText reads the whole file at path and decodes it as UTF-8 text. The file
// handle is released on every return path.
func ReadText(path string, cfg Config) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", types.MakeReadError(path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", types.MakeReadError(path, err)
	}

	// The x/text decoders substitute U+FFFD for bad input instead of failing,
	// so validate before transforming.
	if !utf8.Valid(raw) {
		return "", types.MakeReadError(path, ErrInvalidUTF8)
	}

	if cfg.StripBOM {
		raw, _, err = transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
		if err != nil {
			return "", types.MakeReadError(path, err)
		}
	}

	text := string(raw)
	if cfg.NormalizeNewlines {
		text = normalizeNewlines(text)
	}
	return text, nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
