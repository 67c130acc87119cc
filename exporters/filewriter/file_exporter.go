package filewriter

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/utilitycheck/utility-data/exporters"
	"github.com/utilitycheck/utility-data/types"
)

const tempPattern = ".utility-data-*.tmp"

type fileExporter struct {
	cfg    Config
	logger *logrus.Logger
}

// New initializes a file exporter.
func New(cfg Config, logger *logrus.Logger) exporters.Exporter {
	if cfg.Perm == 0 {
		cfg.Perm = 0644
	}
	return &fileExporter{
		cfg:    cfg,
		logger: logger,
	}
}

func (exp *fileExporter) Export(path string, data []byte) error {
	var err error
	if exp.cfg.Atomic {
		err = WriteAtomic(path, data, exp.cfg.Perm)
	} else {
		err = WriteInPlace(path, data, exp.cfg.Perm)
	}
	if err != nil {
		return err
	}
	exp.logger.WithField("path", path).Infof("wrote %d bytes", len(data))
	return nil
}

// WriteInPlace truncates and overwrites path. A failure part way through can
// leave a partially written file behind.
func WriteInPlace(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return types.MakeWriteError(path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return types.MakeWriteError(path, err)
	}
	if err := f.Close(); err != nil {
		return types.MakeWriteError(path, err)
	}
	return nil
}

// WriteAtomic writes data to a temporary file next to path and renames it into
// place. Either the old content or the complete new content is visible at
// path; the temporary file is removed on failure.
//
// A symlink at path is followed and its target is replaced, and an existing
// file keeps its mode. perm only applies to new files.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if info, err := os.Stat(target); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return types.MakeWriteError(path, err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return types.MakeWriteError(path, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return types.MakeWriteError(path, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return types.MakeWriteError(path, err)
	}

	// Best effort: persist the rename itself.
	syncDir(dir)
	return nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
