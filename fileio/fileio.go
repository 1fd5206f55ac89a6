/*
Package fileio reads originals and modified files from disk. Every failure is an *IOError,
so that callers can tell a missing or unreadable file apart from a bad delta or configuration.
*/
package fileio

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/pkg/errors"
)

// IOError is a failure to open, read or write a file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		return fmt.Sprintf("%v %v: file not found", e.Op, e.Path)
	case errors.Is(e.Err, fs.ErrPermission):
		return fmt.Sprintf("%v %v: permission denied", e.Op, e.Path)
	default:
		return fmt.Sprintf("%v %v: %v", e.Op, e.Path, e.Err)
	}
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is, or wraps, an *IOError
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

func newIOError(op, path string, err error) error {
	// *fs.PathError repeats the path
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	return &IOError{Op: op, Path: path, Err: err}
}

// ReadAll reads the whole file at path
func ReadAll(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError("read", path, err)
	}
	return b, nil
}

// ReadChunks reads the file at path and splits it into chunks of chunkSize bytes
func ReadChunks(path string, chunkSize int) ([][]byte, error) {
	b, err := ReadAll(path)
	if err != nil {
		return nil, err
	}
	return chunks.Split(b, chunkSize), nil
}

// FileSize is the size in bytes of the file at path
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, newIOError("stat", path, err)
	}

	if info.IsDir() {
		return 0, &IOError{Op: "stat", Path: path, Err: errors.New("is a directory")}
	}

	return info.Size(), nil
}

// Open a file for reading, with its size
func Open(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, newIOError("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, newIOError("stat", path, err)
	}

	return f, info.Size(), nil
}

// WriteFile creates or truncates the file at path with the output of fn
func WriteFile(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return newIOError("create", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newIOError("close", path, cerr)
		}
	}()

	if err = fn(f); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return newIOError("write", path, err)
		}
		return err
	}

	return nil
}
