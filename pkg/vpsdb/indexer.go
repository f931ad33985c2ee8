package vpsdb

import (
	"fmt"
	"strings"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/normalizers"
)

// TableContext carries the precomputed enrichment fields for one table
// file, keyed by its VPS identifier.
type TableContext struct {
	GameID       string
	GameName     string
	Manufacturer string
	Year         string
	Players      string
	GameType     string
	Theme        string
	Designers    string
	IPDBUrl      string
	IPDBNum      string
	Authors      []string
	Version      string
	Tags         []string
	Edition      string
	CreatedAt    int64
	Position     int
	GameFileName string
}

// BuildContexts maps tableFiles[].id to its enrichment context. Games are
// walked in input order; a colliding identifier in a later game overwrites
// the earlier context (last write wins), which keeps repeated runs on the
// same document reproducible.
func BuildContexts(games []Game) map[string]TableContext {
	out := make(map[string]TableContext)
	for _, g := range games {
		year := string(g.Year)
		theme := strings.Join(g.Theme, ", ")
		designers := strings.Join(g.Designers, ", ")
		ipdbURL := normalizers.NormalizeIPDBLink(g.IPDBUrl)
		ipdbNum := normalizers.IPDBNum(ipdbURL)

		for idx, tf := range g.TableFiles {
			if tf.ID == "" {
				continue
			}

			name := composeName(g.Name, tf.Edition, g.Manufacturer, year)

			tags := make([]string, 0, len(tf.Features))
			for _, f := range tf.Features {
				if strings.TrimSpace(f) == "" || normalizers.IsExcludedFeature(f) {
					continue
				}
				tags = append(tags, f)
			}

			gameID := tf.Game.ID
			if gameID == "" {
				gameID = g.ID
			}

			out[tf.ID] = TableContext{
				GameID:       gameID,
				GameName:     name,
				Manufacturer: g.Manufacturer,
				Year:         year,
				Players:      string(g.Players),
				GameType:     g.Type,
				Theme:        theme,
				Designers:    designers,
				IPDBUrl:      ipdbURL,
				IPDBNum:      ipdbNum,
				Authors:      tf.Authors,
				Version:      tf.Version,
				Tags:         tags,
				Edition:      tf.Edition,
				CreatedAt:    int64(tf.CreatedAt),
				Position:     idx,
				GameFileName: tf.GameFileName,
			}
		}
	}
	return out
}

// BuildMasterMap maps tableFiles[].id to the owning game-group id: the
// table file's own game reference when present, else the entry's id.
func BuildMasterMap(games []Game) map[string]string {
	out := make(map[string]string)
	for _, g := range games {
		for _, tf := range g.TableFiles {
			if tf.ID == "" {
				continue
			}
			master := tf.Game.ID
			if master == "" {
				master = g.ID
			}
			out[tf.ID] = master
		}
	}
	return out
}

// composeName builds the display name: the edition is appended unless it
// already appears in the base name, then "(manufacturer year)" is appended
// when both parts are known.
func composeName(base, edition, manufacturer, year string) string {
	name := base
	if edition != "" && !strings.Contains(strings.ToLower(base), strings.ToLower(edition)) {
		name = base + " - " + edition
	}
	if manufacturer != "" && year != "" {
		name = fmt.Sprintf("%s (%s %s)", name, manufacturer, year)
	}
	return name
}
