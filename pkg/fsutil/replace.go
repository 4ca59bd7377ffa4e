package fsutil

import (
	"context"
	"fmt"
)

// ReplaceResult describes what Replace did.
type ReplaceResult struct {
	// Written is false when the content was already up to date.
	Written bool

	// BackupPath is set when a backup was taken.
	BackupPath string
}

// Replace writes content over the file described by info. It refuses when
// the file changed since it was read, takes a backup per cfg and writes
// atomically with the original mode.
func Replace(ctx context.Context, info *FileInfo, content []byte, cfg BackupConfig) (ReplaceResult, error) {
	if info == nil {
		return ReplaceResult{}, ErrNilFileInfo
	}
	if info.IsStdin() {
		return ReplaceResult{}, ErrStdin
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return ReplaceResult{}, err
	}
	if modified {
		return ReplaceResult{}, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	var result ReplaceResult
	result.BackupPath, err = CreateBackup(ctx, info.Path, cfg)
	if err != nil {
		return result, err
	}

	result.Written, err = WriteIfChanged(ctx, info.Path, content, info.Mode)
	return result, err
}
