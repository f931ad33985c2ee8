// Package export exposes the export trigger and download endpoints.
package export

import (
	"net/http"
	"os"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/export"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/jobs"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/models"
)

// HeaderExportStatus reports why a trigger produced no file.
const HeaderExportStatus = "X-Export-Status"

// Handler handles export trigger and download requests.
type Handler struct {
	logger     ectologger.Logger
	runner     *jobs.Runner
	outputPath string
}

func NewHandler(logger ectologger.Logger, runner *jobs.Runner, outputPath string) *Handler {
	return &Handler{
		logger:     logger,
		runner:     runner,
		outputPath: outputPath,
	}
}

// RegisterRoutes registers export endpoints
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/export", h.Run)
	e.GET("/api/v1/export/download", h.Download)
}

// Run triggers an export run. Responds 204 when the remote data has not
// changed since the last run.
func (h *Handler) Run(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.runner.Run(ctx, models.TriggerManual)
	if errors.Is(err, jobs.ErrNoUpdate) {
		c.Response().Header().Set(HeaderExportStatus, "not-modified")
		return c.NoContent(http.StatusNoContent)
	}
	if export.IsDataValidation(err) {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "export failed: %s", err.Error())
	}
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	return c.JSON(http.StatusOK, result)
}

// Download streams the most recent lookup table.
func (h *Handler) Download(c echo.Context) error {
	if _, err := os.Stat(h.outputPath); err != nil {
		return httperror.NewHTTPError(http.StatusNotFound, "no lookup table has been generated yet")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	return c.Attachment(h.outputPath, "puplookup.csv")
}
