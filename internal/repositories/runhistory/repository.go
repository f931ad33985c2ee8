// Package runhistory persists the outcome of export runs.
package runhistory

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/database"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/models"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/tracing"
)

const runsTable = "export_runs"

var runStruct = database.NewStruct(new(models.ExportRun))

// Repository handles database operations for export runs.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func New(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Record inserts a completed run. A nil ID is replaced with a new one.
func (r *Repository) Record(ctx context.Context, run *models.ExportRun) error {
	ctx, span := tracing.StartSpan(ctx, "runhistory.Repository.Record")
	defer span.End()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(runsTable).
		Cols("id", "trigger_kind", "created", "output_path", "message", "error",
			"remote_epoch_ms", "local_epoch_ms", "started_at_ms", "finished_at_ms").
		Values(run.ID, run.TriggerKind, run.Created, run.OutputPath, run.Message, run.Error,
			run.RemoteEpochMS, run.LocalEpochMS, run.StartedAtMS, run.FinishedAtMS)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"run_id": run.ID,
		}).Error("failed to record export run")
		return err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id": run.ID,
	}).Debugf("Recorded %s", runsTable)
	return nil
}

// Recent returns the newest runs, most recent first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.ExportRun, error) {
	ctx, span := tracing.StartSpan(ctx, "runhistory.Repository.Recent")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}

	sb := runStruct.SelectFrom(runsTable)
	sb.OrderBy("started_at_ms").Desc()
	sb.Limit(limit)

	query, args := sb.Build()
	var runs []models.ExportRun
	if err := r.db.SelectContext(ctx, &runs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list export runs")
		return nil, err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"run_count": len(runs),
	}).Debugf("Listed %s", runsTable)
	return runs, nil
}
