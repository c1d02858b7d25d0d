package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/firmware"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteUnits writes every unit under root, creating root if needed. Units
// already written stay in place when a later one fails.
func WriteUnits(ctx context.Context, root string, units []*firmware.Unit) error {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := WriteDir(ctx, root, u.Dir, u.Files); err != nil {
			return fmt.Errorf("component '%s': %w", u.Component.ID, err)
		}
	}
	return nil
}

// WriteDir replaces root/name with a directory holding exactly files. The
// new contents are staged in a sibling temp directory; an existing
// directory is moved aside and restored if the swap fails.
func WriteDir(ctx context.Context, root, name string, files []firmware.File) error {
	logger := ctxlog.FromContext(ctx)
	target := filepath.Join(root, name)

	stage, err := os.MkdirTemp(root, ".psmgen-stage-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	for _, f := range files {
		if err := writeFile(filepath.Join(stage, f.Name), f.Content); err != nil {
			return err
		}
	}
	// MkdirTemp creates 0700 directories.
	if err := os.Chmod(stage, dirPerm); err != nil {
		return fmt.Errorf("chmod staging directory: %w", err)
	}

	backup := ""
	if _, err := os.Stat(target); err == nil {
		backup = stage + ".old"
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("move aside %s: %w", target, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	if err := os.Rename(stage, target); err != nil {
		if backup != "" {
			if rerr := os.Rename(backup, target); rerr != nil {
				logger.Error("Failed to restore previous output.", "dir", target, "backup", backup, "error", rerr)
			}
		}
		return fmt.Errorf("rename into %s: %w", target, err)
	}
	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			logger.Warn("Failed to remove previous output.", "dir", backup, "error", err)
		}
	}
	logger.Debug("Wrote component directory.", "dir", target, "files", len(files))
	return nil
}

func writeFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
