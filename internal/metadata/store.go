package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// fileLock is a flock-based advisory lock scoped to one metadata file,
// generalizing tsuku's single global-state-file FileLock to one lock per
// venv so unrelated packages never contend with each other.
type fileLock struct {
	f *os.File
}

func newFileLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) lockExclusive() error {
	return unix.Flock(int(l.f.Fd()), unix.LOCK_EX)
}

func (l *fileLock) lockShared() error {
	return unix.Flock(int(l.f.Fd()), unix.LOCK_SH)
}

func (l *fileLock) unlock() error {
	defer l.f.Close()
	return unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
}

// Load reads and decodes the metadata file at path, taking a shared lock
// for the duration of the read.
func Load(path string) (*Record, error) {
	lock, err := newFileLock(path)
	if err != nil {
		return nil, err
	}
	if err := lock.lockShared(); err != nil {
		lock.f.Close()
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return rec, nil
}

// Save atomically writes rec to path: encode to a buffer, write to a
// sibling temp file, then rename into place, guarded by an exclusive lock
// so a concurrent reader never observes a torn write.
func Save(path string, rec *Record) error {
	lock, err := newFileLock(path)
	if err != nil {
		return err
	}
	if err := lock.lockExclusive(); err != nil {
		lock.f.Close()
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.unlock()

	data, err := Encode(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp metadata file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp metadata file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp metadata file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename metadata into place: %w", err)
	}
	return nil
}

// Exists reports whether a metadata file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
