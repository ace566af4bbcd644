package wallet

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Slot is a durable location holding a single document.
//
// Read returns an error matching fs.ErrNotExist when nothing was ever written.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileSlot stores the document in a single file.
type FileSlot struct {
	Path string
}

// NewFileSlot returns a slot backed by the file at path.
func NewFileSlot(path string) *FileSlot { return &FileSlot{Path: path} }

func (s *FileSlot) Read() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// Write replaces the file atomically: the content is written to a temporary
// file in the same folder and renamed over the previous one.
func (s *FileSlot) Write(data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create folder %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", s.Path, err)
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, s.Path)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write %q: %w", s.Path, err)
	}
	return nil
}

func (s *FileSlot) String() string { return s.Path }

// MemorySlot keeps the document in memory. Its zero value is an empty slot.
type MemorySlot struct {
	data []byte
	set  bool
}

func (s *MemorySlot) Read() ([]byte, error) {
	if !s.set {
		return nil, fmt.Errorf("memory slot: %w", fs.ErrNotExist)
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}
