// Package enrich turns repaired template rows into the 20-column output
// rows by joining them against the vpsdb enrichment contexts.
package enrich

import (
	"fmt"
	"strings"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/puplookup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

// WebLink2Base is the site the second web link column points at.
const WebLink2Base = "https://virtualpinballspreadsheet.github.io/tables"

// Enricher computes output rows from repaired template rows.
type Enricher struct {
	contexts map[string]vpsdb.TableContext
	master   map[string]string
}

// New creates an enricher over the prebuilt vpsdb indexes.
func New(contexts map[string]vpsdb.TableContext, master map[string]string) *Enricher {
	return &Enricher{
		contexts: contexts,
		master:   master,
	}
}

// EnrichRow produces one output row for a repaired 17-column template row.
// Rows without a matching context pass through unchanged, with empty
// WebLink2URL and MasterID columns.
func (e *Enricher) EnrichRow(row []string) []string {
	vpsID := row[puplookup.ColVPSID]

	ctx, ok := e.contexts[vpsID]
	if !ok {
		return assemble(row, "", vpsID, "")
	}

	master, found := e.master[vpsID]
	if !found {
		master = ctx.GameID
	}
	webLink2 := ""
	if master != "" {
		webLink2 = WebLink2URL(master, vpsID)
	}

	out := make([]string, len(row))
	copy(out, row)

	// vpsdb-derived truth overwrites the template values
	out[puplookup.ColGameName] = ctx.GameName
	out[puplookup.ColManufact] = ctx.Manufacturer
	out[puplookup.ColGameYear] = ctx.Year
	out[puplookup.ColNumPlayers] = ctx.Players
	out[puplookup.ColGameType] = ctx.GameType
	out[puplookup.ColGameTheme] = ctx.Theme
	out[puplookup.ColWebLinkURL] = ctx.IPDBUrl
	out[puplookup.ColIPDBNum] = ctx.IPDBNum
	out[puplookup.ColDesignedBy] = ctx.Designers
	out[puplookup.ColAuthor] = strings.Join(ctx.Authors, ", ")
	out[puplookup.ColGameVer] = ctx.Version
	out[puplookup.ColTags] = strings.Join(ctx.Tags, ", ")
	out[puplookup.ColGameFileName] = GameFileName(ctx)

	return assemble(out, webLink2, vpsID, master)
}

// WebLink2URL builds the site deep link for a table file; empty when
// either id is missing.
func WebLink2URL(masterID, vpsID string) string {
	if masterID == "" || vpsID == "" {
		return ""
	}
	return fmt.Sprintf("%s?game=%s&fileType=tables&fileId=%s", WebLink2Base, masterID, vpsID)
}

// assemble inserts WebLink2URL after WebLinkURL and appends the WebGameID
// and MasterID columns.
func assemble(base []string, webLink2, vpsID, master string) []string {
	out := make([]string, 0, len(puplookup.OutColumns))
	out = append(out, base[:puplookup.ColWebLinkURL+1]...)
	out = append(out, webLink2)
	out = append(out, base[puplookup.ColWebLinkURL+1:]...)
	out = append(out, vpsID, master)
	return out
}
