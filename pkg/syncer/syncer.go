// Package syncer keeps a local cache of the remote VPS files and refreshes
// it when the remote publish timestamp moves forward.
package syncer

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vps"
)

// Local cache file names under the data directory.
const (
	LastUpdatedFileName = "lastUpdated.json"
	LookupFileName      = "puplookup.csv"
	DatabaseFileName    = "vpsdb.json"
)

// Result is the outcome of a sync check.
type Result struct {
	Updated       bool
	RemoteEpochMS int64
	LocalEpochMS  int64
}

// Syncer compares the remote publish timestamp with the locally cached one
// and downloads fresh copies of both data files when the remote is newer.
type Syncer struct {
	logger  ectologger.Logger
	client  vps.Client
	dataDir string
}

// New creates a syncer caching into dataDir.
func New(logger ectologger.Logger, client vps.Client, dataDir string) *Syncer {
	return &Syncer{
		logger:  logger,
		client:  client,
		dataDir: dataDir,
	}
}

// LocalEpochMS reads the locally cached publish timestamp, or 0 when it is
// missing or unreadable.
func (s *Syncer) LocalEpochMS() int64 {
	raw, err := os.ReadFile(filepath.Join(s.dataDir, LastUpdatedFileName))
	if err != nil {
		return 0
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0
	}
	return epoch
}

// EnsureLocalCache pulls the remote files on first run, when any cached
// file is missing.
func (s *Syncer) EnsureLocalCache(ctx context.Context) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return errors.Wrap(err, "creating data directory")
	}

	missing := false
	for _, name := range []string{LookupFileName, DatabaseFileName, LastUpdatedFileName} {
		if _, err := os.Stat(filepath.Join(s.dataDir, name)); err != nil {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	s.logger.WithContext(ctx).Info("Local cache incomplete; downloading initial data set")
	remote, err := s.client.FetchLastUpdated(ctx)
	if err != nil {
		return err
	}
	return s.downloadAll(ctx, remote)
}

// CheckAndSync compares the remote publish timestamp with the local one and
// refreshes the cache when the remote is newer or the cache is incomplete.
func (s *Syncer) CheckAndSync(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	local := s.LocalEpochMS()
	remote, err := s.client.FetchLastUpdated(ctx)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"local_epoch_ms":  local,
		"remote_epoch_ms": remote,
	})
	log.Info("Sync check")

	missing := false
	for _, name := range []string{LookupFileName, DatabaseFileName} {
		if _, err := os.Stat(filepath.Join(s.dataDir, name)); err != nil {
			missing = true
			break
		}
	}
	if missing {
		log.Info("Local data missing; treating as update")
		if err := s.downloadAll(ctx, remote); err != nil {
			return nil, err
		}
		return &Result{Updated: true, RemoteEpochMS: remote, LocalEpochMS: local}, nil
	}

	if remote > local {
		if err := s.downloadAll(ctx, remote); err != nil {
			return nil, err
		}
		return &Result{Updated: true, RemoteEpochMS: remote, LocalEpochMS: local}, nil
	}

	return &Result{Updated: false, RemoteEpochMS: remote, LocalEpochMS: local}, nil
}

// downloadAll fetches both data files and persists the remote timestamp
// only after both writes succeed.
func (s *Syncer) downloadAll(ctx context.Context, remoteEpochMS int64) error {
	lookup, err := s.client.FetchLookupTable(ctx)
	if err != nil {
		return err
	}
	database, err := s.client.FetchDatabase(ctx)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(filepath.Join(s.dataDir, LookupFileName), lookup); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(s.dataDir, DatabaseFileName), database); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(s.dataDir, LastUpdatedFileName), []byte(strconv.FormatInt(remoteEpochMS, 10))); err != nil {
		return err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"remote_epoch_ms": remoteEpochMS,
	}).Info("Downloaded remote data set")
	return nil
}

// writeFileAtomic writes data to a temp file and renames it into place so
// readers never observe partial content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}
