// Package backup archives prior export outputs before they are replaced.
package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"
)

// Rotator moves existing output files into the backups directory and prunes
// the oldest archives beyond the retention limit.
type Rotator struct {
	logger     ectologger.Logger
	backupsDir string
	maxBackups int
}

// New creates a rotator. maxBackups <= 0 disables pruning.
func New(logger ectologger.Logger, backupsDir string, maxBackups int) *Rotator {
	return &Rotator{
		logger:     logger,
		backupsDir: backupsDir,
		maxBackups: maxBackups,
	}
}

// RotateIfExists archives path into the backups directory with a timestamped
// name. A missing source file is not an error.
func (r *Rotator) RotateIfExists(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "checking %s", path)
	}

	if err := os.MkdirAll(r.backupsDir, 0o755); err != nil {
		return errors.Wrap(err, "creating backups directory")
	}

	base := filepath.Base(path)
	stamp := time.Now().UTC().Format("20060102T150405") + "Z"
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "." + stamp + ext
	dest := filepath.Join(r.backupsDir, name)

	if err := moveFile(path, dest); err != nil {
		return err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"source": path,
		"backup": dest,
	}).Info("Archived previous output")

	return r.prune(ctx, base, ext)
}

// prune keeps only the newest maxBackups archives for the given base name.
func (r *Rotator) prune(ctx context.Context, base, ext string) error {
	if r.maxBackups <= 0 {
		return nil
	}

	prefix := strings.TrimSuffix(base, ext) + "."
	entries, err := os.ReadDir(r.backupsDir)
	if err != nil {
		return errors.Wrap(err, "listing backups directory")
	}

	type backup struct {
		name    string
		modTime time.Time
	}
	var matches []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		matches = append(matches, backup{name: entry.Name(), modTime: info.ModTime()})
	}

	if len(matches) <= r.maxBackups {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].modTime.After(matches[j].modTime)
	})

	for _, stale := range matches[r.maxBackups:] {
		target := filepath.Join(r.backupsDir, stale.name)
		if err := os.Remove(target); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithField("backup", target).Warn("Failed to prune backup")
			continue
		}
		r.logger.WithContext(ctx).WithField("backup", target).Debug("Pruned backup")
	}
	return nil
}

// moveFile renames src to dest, falling back to copy+delete when the rename
// crosses filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return errors.Wrapf(err, "copying to %s", dest)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dest)
	}
	if err := os.Remove(src); err != nil {
		return errors.Wrapf(err, "removing %s", src)
	}
	return nil
}
