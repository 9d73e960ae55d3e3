package utils

import (
	"io"
	"os"
)

// ReadSource reads path, or stdin when path is "-".
func ReadSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// OpenSource is the streaming counterpart of ReadSource.
func OpenSource(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateSink opens path for writing, or stdout when path is empty.
// Closing the stdout sink is a no-op.
func CreateSink(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
