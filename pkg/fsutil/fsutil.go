// Package fsutil reads template inputs and writes patched templates back
// safely: atomic replacement, sidecar backups and detection of edits made
// by someone else between read and write.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Sentinel errors for errors.Is.
var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrModified         = errors.New("file changed since it was read")
	ErrStdin            = errors.New("standard input cannot be written back")
)

// FileInfo is the state of an input when it was read.
type FileInfo struct {
	// Path is the input path, or "-" for standard input.
	Path string

	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content.
	Hash [32]byte
}

// IsStdin reports whether the input came from standard input.
func (fi *FileInfo) IsStdin() bool {
	return fi.Path == StdinPath
}

// ReadInput reads path, or stdin when path is "-".
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, *FileInfo, error) {
	if path != StdinPath {
		return ReadFile(ctx, path)
	}

	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read stdin: %w", ctx.Err())
	default:
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, &FileInfo{
		Path: StdinPath,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}, nil
}

// ReadFile reads a file along with the metadata used by CheckModified.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// CheckModified reports whether the file changed since info was taken.
// Mod time and size are compared first; the content hash settles ties.
// A deleted file counts as modified.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}
