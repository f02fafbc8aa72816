package slgr

import (
	"os"

	"github.com/spf13/afero"
)

// FileSink is an append-only log file output (like a file on an SD card).
// A *FileSink is comparable and can be registered in a Registry as is.
type FileSink struct {
	file afero.File
	sync bool
}

// Opens (or creates) the file for appending. If syncEach is true every
// write is followed by Sync, which keeps the file consistent if power is
// lost between lines at the cost of speed.
func OpenFileSink(fs afero.Fs, path string, syncEach bool) (*FileSink, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f, sync: syncEach}, nil
}

func (fs *FileSink) Write(p []byte) (int, error) {
	n, err := fs.file.Write(p)
	if err == nil && fs.sync {
		err = fs.file.Sync()
	}
	return n, err
}

func (fs *FileSink) Name() string {
	return fs.file.Name()
}

func (fs *FileSink) Sync() error {
	return fs.file.Sync()
}

// Close syncs and closes the file. Writes after Close fail and are reported
// by the registry to its fallback writer.
func (fs *FileSink) Close() error {
	if err := fs.file.Sync(); err != nil {
		fs.file.Close()
		return err
	}
	return fs.file.Close()
}
