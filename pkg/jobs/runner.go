// Package jobs coordinates a full export run: sync the remote data, archive
// the previous output, regenerate the lookup table, and record the outcome.
package jobs

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/backup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/export"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/models"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/syncer"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/tracing"
)

// ErrNoUpdate reports that the remote data has not changed, so no new
// lookup table was generated.
var ErrNoUpdate = errors.New("remote data unchanged")

// Result is the outcome of a successful run that produced a file.
type Result struct {
	Created    bool   `json:"created"`
	OutputPath string `json:"outputPath"`
	Message    string `json:"message"`
}

// HistoryRecorder persists run outcomes. Recording is best-effort and never
// fails a run.
type HistoryRecorder interface {
	Record(ctx context.Context, run *models.ExportRun) error
}

// Runner serializes export runs. Only one run executes at a time; callers
// block until the in-flight run finishes.
type Runner struct {
	mu         sync.Mutex
	logger     ectologger.Logger
	syncer     *syncer.Syncer
	rotator    *backup.Rotator
	engine     *export.Engine
	history    HistoryRecorder
	outputPath string
}

func NewRunner(
	logger ectologger.Logger,
	sync *syncer.Syncer,
	rotator *backup.Rotator,
	engine *export.Engine,
	history HistoryRecorder,
	outputPath string,
) *Runner {
	return &Runner{
		logger:     logger,
		syncer:     sync,
		rotator:    rotator,
		engine:     engine,
		history:    history,
		outputPath: outputPath,
	}
}

// Run checks the remote publish timestamp and regenerates the lookup table
// when the remote data is newer. It returns ErrNoUpdate when the local cache
// is already current.
func (r *Runner) Run(ctx context.Context, trigger string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracing.StartSpan(ctx, "jobs.Runner.Run")
	defer span.End()

	run := &models.ExportRun{
		TriggerKind: trigger,
		StartedAtMS: time.Now().UnixMilli(),
	}
	log := r.logger.WithContext(ctx).WithField("trigger", trigger)
	log.Info("Starting export run")

	res, err := r.syncer.CheckAndSync(ctx)
	if err != nil {
		run.Error = err.Error()
		r.record(ctx, run)
		return nil, err
	}
	run.RemoteEpochMS = res.RemoteEpochMS
	run.LocalEpochMS = res.LocalEpochMS

	if !res.Updated {
		log.Info("Remote data unchanged; skipping export")
		run.Message = "remote data unchanged"
		r.record(ctx, run)
		return nil, ErrNoUpdate
	}

	return r.generate(ctx, run)
}

// Bootstrap runs once at startup. It downloads the initial data set when the
// cache is empty and forces a generation when no output file exists yet,
// even if the remote data has not changed.
func (r *Runner) Bootstrap(ctx context.Context) (*Result, error) {
	if err := r.syncer.EnsureLocalCache(ctx); err != nil {
		return nil, err
	}

	result, err := r.Run(ctx, models.TriggerStartup)
	if !errors.Is(err, ErrNoUpdate) {
		return result, err
	}

	if _, statErr := os.Stat(r.outputPath); statErr == nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.WithContext(ctx).Info("Output file missing; forcing generation")
	run := &models.ExportRun{
		TriggerKind:  models.TriggerStartup,
		StartedAtMS:  time.Now().UnixMilli(),
		LocalEpochMS: r.syncer.LocalEpochMS(),
	}
	return r.generate(ctx, run)
}

// generate archives the previous output, regenerates the lookup table, and
// records the outcome. Caller holds the mutex.
func (r *Runner) generate(ctx context.Context, run *models.ExportRun) (*Result, error) {
	log := r.logger.WithContext(ctx).WithField("trigger", run.TriggerKind)

	if err := r.rotator.RotateIfExists(ctx, r.outputPath); err != nil {
		log.WithError(err).Warn("Failed to archive previous output; continuing")
	}

	outputPath, err := r.engine.Generate(ctx)
	if err != nil {
		log.WithError(err).Error("Export failed")
		run.Error = err.Error()
		r.record(ctx, run)
		return nil, err
	}

	run.Created = true
	run.OutputPath = outputPath
	run.Message = "generated"
	r.record(ctx, run)

	log.WithField("output", outputPath).Info("Export run complete")
	return &Result{Created: true, OutputPath: outputPath, Message: "generated"}, nil
}

func (r *Runner) record(ctx context.Context, run *models.ExportRun) {
	run.FinishedAtMS = time.Now().UnixMilli()
	if r.history == nil {
		return
	}
	if err := r.history.Record(ctx, run); err != nil {
		r.logger.WithContext(ctx).WithError(err).Warn("Failed to record export run")
	}
}
