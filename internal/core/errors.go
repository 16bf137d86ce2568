package core

import (
	"errors"
	"fmt"
)

// Errors returned while validating or writing a target file.
var (
	// ErrInvalidPath indicates the target is a directory.
	ErrInvalidPath = errors.New("is a directory, not a file")

	// ErrPermissionDenied indicates the target exists but is read-only.
	ErrPermissionDenied = errors.New("no write permission")

	// ErrMetadataUnreadable indicates the target could not be stat'ed.
	ErrMetadataUnreadable = errors.New("cannot access file metadata")

	// ErrBackupFailed indicates the .bak copy could not be created.
	ErrBackupFailed = errors.New("failed to create backup")
)

// FileError ties an error to the target file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("'%s': %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func fileError(path string, err error) error {
	return &FileError{Path: path, Err: err}
}
