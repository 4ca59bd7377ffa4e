package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/tmplpatch/pkg/config"
)

// BackupSuffix is appended to a template path to name its sidecar backup.
const BackupSuffix = ".tmplpatch.bak"

// BackupConfig controls backups taken before a template is rewritten.
type BackupConfig struct {
	Enabled bool
	Mode    string // config.BackupModeSidecar or config.BackupModeNone
}

// BackupConfigFrom derives the backup settings from the loaded config.
func BackupConfigFrom(cfg *config.Config) BackupConfig {
	if cfg == nil {
		return BackupConfig{Enabled: true, Mode: config.BackupModeSidecar}
	}
	return BackupConfig{Enabled: cfg.BackupsEnabled(), Mode: cfg.Backups.Mode}
}

func (c BackupConfig) active() bool {
	return c.Enabled && c.Mode != config.BackupModeNone
}

// BackupPath returns the sidecar path for path, or "" when mode disables
// backups.
func BackupPath(path, mode string) string {
	if mode == config.BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar. An existing backup is kept, so
// repeated applies preserve the first original. It returns the backup path
// when a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (string, error) {
	if !cfg.active() {
		return "", nil
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path, cfg.Mode)
	if _, err := os.Stat(backupPath); err == nil {
		return "", nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// RestoreBackup writes the sidecar back over path and removes it. It
// reports false when there is no backup.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	backupPath := BackupPath(path, config.BackupModeSidecar)

	content, info, err := ReadFile(ctx, backupPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether path has a sidecar backup.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path, config.BackupModeSidecar))
	return err == nil
}
