package rdiff

import (
	"os"
	"path/filepath"

	"github.com/Redundancy/go-rdiff/fileio"
)

// output is the file a patch is written to. When patching a file in place, the result goes
// to a temporary file next to it, which replaces the original on Close.
type output struct {
	*os.File
	path     string
	tempPath string
}

func openOutput(originalPath, outPath string) (*output, error) {
	same, err := IsSameFile(originalPath, outPath)
	if err != nil {
		return nil, err
	}

	if !same {
		f, err := os.Create(outPath)
		if err != nil {
			return nil, &fileio.IOError{Op: "create", Path: outPath, Err: err}
		}
		return &output{File: f, path: outPath}, nil
	}

	f, err := os.CreateTemp(filepath.Dir(outPath), ".rdiff_tmp_")
	if err != nil {
		return nil, &fileio.IOError{Op: "create", Path: outPath, Err: err}
	}

	return &output{File: f, path: outPath, tempPath: f.Name()}, nil
}

// Close the file, moving it into place if it was temporary
func (o *output) Close() error {
	if err := o.File.Close(); err != nil {
		return &fileio.IOError{Op: "close", Path: o.File.Name(), Err: err}
	}

	if o.tempPath == "" {
		return nil
	}

	if err := os.Rename(o.tempPath, o.path); err != nil {
		os.Remove(o.tempPath)
		return &fileio.IOError{Op: "rename", Path: o.path, Err: err}
	}

	return nil
}

// Abort closes and removes what was written
func (o *output) Abort() {
	o.File.Close()
	os.Remove(o.File.Name())
}

// IsSameFile checks if two file paths are the same file
func IsSameFile(path1, path2 string) (same bool, err error) {
	fi1, err := os.Stat(path1)

	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, &fileio.IOError{Op: "stat", Path: path1, Err: err}
	}

	fi2, err := os.Stat(path2)

	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, &fileio.IOError{Op: "stat", Path: path2, Err: err}
	}

	return os.SameFile(fi1, fi2), nil
}
