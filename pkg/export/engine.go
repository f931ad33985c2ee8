// Package export implements the merge engine: it repairs the cached lookup
// table, joins it against the vpsdb metadata, enriches and re-sorts the
// rows and writes the resulting 20-column CSV.
package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Gobusters/ectologger"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/enrich"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/puplookup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/tracing"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

// Local cache file names the sync layer maintains.
const (
	templateFileName = "puplookup.csv"
	databaseFileName = "vpsdb.json"
)

// Engine regenerates the enriched lookup export from the cached inputs.
// It holds no state across runs; every Generate call reads fresh files.
type Engine struct {
	logger         ectologger.Logger
	dataDir        string
	outputDir      string
	outputFilename string
}

// NewEngine creates a merge engine reading from dataDir and writing to
// outputDir/outputFilename.
func NewEngine(logger ectologger.Logger, dataDir, outputDir, outputFilename string) *Engine {
	return &Engine{
		logger:         logger,
		dataDir:        dataDir,
		outputDir:      outputDir,
		outputFilename: outputFilename,
	}
}

// Generate runs one merge: repair, index, enrich, sort, serialize. It
// returns the path of the written file. Missing or malformed inputs yield
// a DataValidationError and leave any previous output untouched.
func (e *Engine) Generate(ctx context.Context) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "export.Engine.Generate")
	defer span.End()

	log := e.logger.WithContext(ctx)

	rows, err := e.readTemplateRows(filepath.Join(e.dataDir, templateFileName))
	if err != nil {
		return "", err
	}

	games, err := e.readDatabase(filepath.Join(e.dataDir, databaseFileName))
	if err != nil {
		return "", err
	}

	contexts := vpsdb.BuildContexts(games)
	master := vpsdb.BuildMasterMap(games)
	enricher := enrich.New(contexts, master)

	outRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		outRows = append(outRows, enricher.EnrichRow(row))
	}
	sortRows(outRows, contexts)

	all := make([][]string, 0, len(outRows)+1)
	all = append(all, puplookup.OutColumns)
	all = append(all, outRows...)

	outPath := filepath.Join(e.outputDir, e.outputFilename)
	if err := writeCSV(outPath, all); err != nil {
		return "", err
	}

	log.WithFields(map[string]any{
		"rows":   len(outRows),
		"games":  len(games),
		"output": outPath,
	}).Info("Wrote lookup export")
	return outPath, nil
}

// readTemplateRows reads the cached lookup table and repairs every data
// row, silently dropping the unrecoverable ones.
func (e *Engine) readTemplateRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataValidationError{Reason: "missing template CSV " + path, Err: err}
	}
	defer f.Close()

	raw, err := readCSV(f)
	if err != nil {
		return nil, &DataValidationError{Reason: "unreadable template CSV " + path, Err: err}
	}
	if len(raw) == 0 || len(raw[0]) == 0 {
		return nil, &DataValidationError{Reason: "template CSV has no header row"}
	}

	repaired := make([][]string, 0, len(raw)-1)
	dropped := 0
	for _, row := range raw[1:] {
		fixed, ok := puplookup.RepairRow(row)
		if !ok {
			dropped++
			continue
		}
		repaired = append(repaired, fixed)
	}
	if dropped > 0 {
		e.logger.WithFields(map[string]any{"dropped": dropped}).Debug("Dropped unrecoverable template rows")
	}
	return repaired, nil
}

// readDatabase reads and decodes the cached vpsdb document.
func (e *Engine) readDatabase(path string) ([]vpsdb.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataValidationError{Reason: "missing vpsdb document " + path, Err: err}
	}
	games, err := vpsdb.ParseDatabase(data)
	if err != nil {
		return nil, &DataValidationError{Reason: "malformed vpsdb document", Err: err}
	}
	return games, nil
}
