package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrEmpty = errors.New("capture file is empty")

// Buffer holds a capture file read whole into memory. It is never written.
type Buffer struct {
	path string
	data []byte
}

func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &Buffer{path: path, data: data}, nil
}

// FromBytes wraps data already in memory under a display name.
func FromBytes(name string, data []byte) *Buffer {
	return &Buffer{path: name, data: data}
}

func (b *Buffer) Path() string {
	return b.path
}

// Filename is the base name shown in the header.
func (b *Buffer) Filename() string {
	return filepath.Base(b.path)
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}

func (b *Buffer) Data() []byte {
	return b.data
}
