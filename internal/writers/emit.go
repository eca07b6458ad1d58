package writers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Stdout is the path that selects the caller's stdout.
const Stdout = "-"

// Emit writes data to path, or to stdout when path is "" or "-".
func Emit(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == Stdout {
		if _, err := stdout.Write(data); err != nil && !IsBrokenPipe(err) {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	return WriteAtomic(path, data, 0o644)
}

// WriteAtomic replaces path with data. The parent directory is created when
// missing; on failure the previous content of path is left untouched.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// pipeGone lists the errors a write returns once the reading end of stdout
// has been closed, e.g. by `head`.
var pipeGone = []error{syscall.EPIPE, io.ErrClosedPipe, os.ErrClosed}

// IsBrokenPipe reports whether a write failed because nobody reads the
// stream any more. Wrapped errors are unwrapped.
func IsBrokenPipe(err error) bool {
	for _, target := range pipeGone {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// OutputPath joins dir and name+ext, or returns path when dir is empty.
func OutputPath(path, dir, name, ext string) string {
	if dir == "" {
		return path
	}
	return filepath.Join(dir, name+ext)
}
