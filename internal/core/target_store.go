package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// TargetInfo is the subset of file metadata the pipeline needs.
type TargetInfo struct {
	Exists bool
	IsDir  bool
	Mode   fs.FileMode
	Size   int64
}

// ReadOnly reports whether no write bit is set.
func (i TargetInfo) ReadOnly() bool {
	return i.Mode.Perm()&0o222 == 0
}

// TargetStore abstracts file access for testability.
type TargetStore interface {
	// Stat returns Exists=false and a nil error for a missing file.
	Stat(path string) (TargetInfo, error)
	// ReadFile returns nil content for a missing file.
	ReadFile(path string) ([]byte, error)
	// LastByte returns the final byte of the file, ok=false when it is missing or empty.
	LastByte(path string) (b byte, ok bool, err error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// AppendFile writes data at the end of the file, creating it if needed.
	AppendFile(path string, data []byte) error
	Copy(src, dst string) error
}

// FileTargetStore implements TargetStore on the local filesystem.
type FileTargetStore struct{}

func NewFileTargetStore() *FileTargetStore {
	return &FileTargetStore{}
}

func (FileTargetStore) Stat(path string) (TargetInfo, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return TargetInfo{}, nil
	}
	if err != nil {
		return TargetInfo{}, err
	}
	return TargetInfo{Exists: true, IsDir: fi.IsDir(), Mode: fi.Mode(), Size: fi.Size()}, nil
}

func (FileTargetStore) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (FileTargetStore) LastByte(path string) (byte, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, false, err
	}
	if fi.Size() == 0 {
		return 0, false, nil
	}
	var b [1]byte
	if _, err := f.ReadAt(b[:], fi.Size()-1); err != nil {
		return 0, false, err
	}
	return b[0], true, nil
}

func (FileTargetStore) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (FileTargetStore) AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Copy copies src to dst, keeping the permission bits of src.
func (FileTargetStore) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// InMemoryTargetStore implements TargetStore for testing (no disk I/O).
type InMemoryTargetStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	modes    map[string]fs.FileMode
	dirs     map[string]bool
	statErrs map[string]error
	writeErr error
	copyErr  error
	writes   int
}

func NewInMemoryTargetStore() *InMemoryTargetStore {
	return &InMemoryTargetStore{
		files:    make(map[string][]byte),
		modes:    make(map[string]fs.FileMode),
		dirs:     make(map[string]bool),
		statErrs: make(map[string]error),
	}
}

// Put stores a file with the given content and mode.
func (ms *InMemoryTargetStore) Put(path, content string, mode fs.FileMode) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.files[path] = []byte(content)
	ms.modes[path] = mode
}

// Mkdir registers path as a directory.
func (ms *InMemoryTargetStore) Mkdir(path string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.dirs[path] = true
}

// FailStat makes Stat return err for path.
func (ms *InMemoryTargetStore) FailStat(path string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.statErrs[path] = err
}

// FailWrites makes every WriteFile and AppendFile call return err.
func (ms *InMemoryTargetStore) FailWrites(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.writeErr = err
}

// FailCopy makes every Copy call return err.
func (ms *InMemoryTargetStore) FailCopy(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.copyErr = err
}

// Content returns the stored content of path.
func (ms *InMemoryTargetStore) Content(path string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data, ok := ms.files[path]
	return string(data), ok
}

// Writes returns how many mutating calls succeeded.
func (ms *InMemoryTargetStore) Writes() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.writes
}

func (ms *InMemoryTargetStore) Stat(path string) (TargetInfo, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if err := ms.statErrs[path]; err != nil {
		return TargetInfo{}, err
	}
	if ms.dirs[path] {
		return TargetInfo{Exists: true, IsDir: true, Mode: fs.ModeDir | 0o755}, nil
	}
	data, ok := ms.files[path]
	if !ok {
		return TargetInfo{}, nil
	}
	return TargetInfo{Exists: true, Mode: ms.modes[path], Size: int64(len(data))}, nil
}

func (ms *InMemoryTargetStore) ReadFile(path string) ([]byte, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data, ok := ms.files[path]
	if !ok {
		return nil, nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy, nil
}

func (ms *InMemoryTargetStore) LastByte(path string) (byte, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data := ms.files[path]
	if len(data) == 0 {
		return 0, false, nil
	}
	return data[len(data)-1], true, nil
}

func (ms *InMemoryTargetStore) WriteFile(path string, data []byte, perm fs.FileMode) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.writeErr != nil {
		return ms.writeErr
	}
	ms.files[path] = append([]byte(nil), data...)
	if _, ok := ms.modes[path]; !ok {
		ms.modes[path] = perm
	}
	ms.writes++
	return nil
}

func (ms *InMemoryTargetStore) AppendFile(path string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.writeErr != nil {
		return ms.writeErr
	}
	if _, ok := ms.modes[path]; !ok {
		ms.modes[path] = 0o644
	}
	ms.files[path] = append(ms.files[path], data...)
	ms.writes++
	return nil
}

func (ms *InMemoryTargetStore) Copy(src, dst string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.copyErr != nil {
		return ms.copyErr
	}
	data, ok := ms.files[src]
	if !ok {
		return fmt.Errorf("open %s: %w", src, fs.ErrNotExist)
	}
	ms.files[dst] = append([]byte(nil), data...)
	ms.modes[dst] = ms.modes[src]
	ms.writes++
	return nil
}
