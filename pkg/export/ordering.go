package export

import (
	"sort"
	"strings"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/puplookup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

// sortKey mirrors the website's display order: name prefix, newest
// createdAt first, edition-less files first, then within-game file order.
// Rows without an enrichment context sort last, keeping their template
// order among themselves.
type sortKey struct {
	missing     bool
	prefix      string
	createdAt   int64
	editionRank int
	position    int
}

func keyFor(vpsID string, contexts map[string]vpsdb.TableContext) sortKey {
	ctx, ok := contexts[vpsID]
	if !ok {
		return sortKey{missing: true, position: 9999}
	}
	prefix, _, _ := strings.Cut(ctx.GameName, " (")
	rank := 0
	if ctx.Edition != "" {
		rank = 1
	}
	return sortKey{
		prefix:      prefix,
		createdAt:   ctx.CreatedAt,
		editionRank: rank,
		position:    ctx.Position,
	}
}

func (k sortKey) less(o sortKey) bool {
	if k.missing != o.missing {
		return !k.missing
	}
	if k.prefix != o.prefix {
		return k.prefix < o.prefix
	}
	if k.createdAt != o.createdAt {
		return k.createdAt > o.createdAt
	}
	if k.editionRank != o.editionRank {
		return k.editionRank < o.editionRank
	}
	return k.position < o.position
}

// sortRows orders output rows in place. The header row is never part of
// the input here; callers prepend it afterwards.
func sortRows(rows [][]string, contexts map[string]vpsdb.TableContext) {
	vpsIDCol := len(puplookup.BaseColumns) // VPS-ID sits right after the 17 shifted columns

	type keyedRow struct {
		key sortKey
		row []string
	}
	keyed := make([]keyedRow, len(rows))
	for i, row := range rows {
		keyed[i] = keyedRow{key: keyFor(row[vpsIDCol], contexts), row: row}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].key.less(keyed[j].key)
	})
	for i := range keyed {
		rows[i] = keyed[i].row
	}
}
