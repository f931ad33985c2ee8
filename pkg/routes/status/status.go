// Package status reports the sync and export state of the service.
package status

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/models"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/syncer"
)

// RecentLister lists the most recent export runs.
type RecentLister interface {
	Recent(ctx context.Context, limit int) ([]models.ExportRun, error)
}

// Settings is the static configuration echoed in the status payload.
type Settings struct {
	DataDir             string `json:"dataDir"`
	OutputDir           string `json:"outputDir"`
	BackupsDir          string `json:"backupsDir"`
	SyncIntervalSeconds int    `json:"syncIntervalSeconds"`
	MaxBackups          int    `json:"maxBackups"`
}

// Handler handles status requests.
type Handler struct {
	logger     ectologger.Logger
	syncer     *syncer.Syncer
	history    RecentLister
	outputPath string
	settings   Settings
}

func NewHandler(logger ectologger.Logger, sync *syncer.Syncer, history RecentLister, outputPath string, settings Settings) *Handler {
	return &Handler{
		logger:     logger,
		syncer:     sync,
		history:    history,
		outputPath: outputPath,
		settings:   settings,
	}
}

// RegisterRoutes registers status endpoints
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/status", h.Status)
}

// OutputStatus describes the generated lookup table file.
type OutputStatus struct {
	Path       string `json:"path"`
	Exists     bool   `json:"exists"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
	SizeBytes  int64  `json:"sizeBytes,omitempty"`
}

// Response is the status payload.
type Response struct {
	LocalEpochMS   int64              `json:"localEpochMs"`
	LocalUpdatedAt string             `json:"localUpdatedAt,omitempty"`
	Output         OutputStatus       `json:"output"`
	Settings       Settings           `json:"settings"`
	RecentRuns     []models.ExportRun `json:"recentRuns"`
}

// Status reports the cached publish timestamp, the output file state, and
// the most recent export runs.
func (h *Handler) Status(c echo.Context) error {
	ctx := c.Request().Context()

	resp := Response{
		LocalEpochMS: h.syncer.LocalEpochMS(),
		Output:       OutputStatus{Path: h.outputPath},
		Settings:     h.settings,
		RecentRuns:   []models.ExportRun{},
	}
	if resp.LocalEpochMS > 0 {
		resp.LocalUpdatedAt = time.UnixMilli(resp.LocalEpochMS).UTC().Format(time.RFC3339)
	}

	if info, err := os.Stat(h.outputPath); err == nil {
		resp.Output.Exists = true
		resp.Output.ModifiedAt = info.ModTime().UTC().Format(time.RFC3339)
		resp.Output.SizeBytes = info.Size()
	}

	if h.history != nil {
		runs, err := h.history.Recent(ctx, 10)
		if err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("Failed to load run history")
		} else if runs != nil {
			resp.RecentRuns = runs
		}
	}

	return c.JSON(http.StatusOK, resp)
}
