// Package models holds the persisted record types.
package models

import "github.com/google/uuid"

// Trigger kinds recorded with each export run.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// ExportRun is one attempt to regenerate the lookup table. Timestamps are
// epoch milliseconds to match the upstream publish timestamp.
type ExportRun struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TriggerKind   string    `db:"trigger_kind" json:"trigger"`
	Created       bool      `db:"created" json:"created"`
	OutputPath    string    `db:"output_path" json:"outputPath"`
	Message       string    `db:"message" json:"message"`
	Error         string    `db:"error" json:"error,omitempty"`
	RemoteEpochMS int64     `db:"remote_epoch_ms" json:"remoteEpochMs"`
	LocalEpochMS  int64     `db:"local_epoch_ms" json:"localEpochMs"`
	StartedAtMS   int64     `db:"started_at_ms" json:"startedAtMs"`
	FinishedAtMS  int64     `db:"finished_at_ms" json:"finishedAtMs"`
}
