package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

// outRow builds a minimal 20-column output row carrying just the VPS-ID.
func outRow(vpsID string) []string {
	row := make([]string, 20)
	row[17] = vpsID
	return row
}

func ids(rows [][]string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r[17]
	}
	return out
}

func TestSortRows(t *testing.T) {
	contexts := map[string]vpsdb.TableContext{
		"newer111": {GameName: "Game (Mfg 2020)", CreatedAt: 200, Edition: "A", Position: 1},
		"older111": {GameName: "Game (Mfg 2020)", CreatedAt: 100, Position: 0},
		"alpha111": {GameName: "Alpha (Mfg 2020)", CreatedAt: 1, Position: 0},
	}

	t.Run("prefix then descending createdAt", func(t *testing.T) {
		rows := [][]string{outRow("older111"), outRow("newer111"), outRow("alpha111")}
		sortRows(rows, contexts)
		assert.Equal(t, []string{"alpha111", "newer111", "older111"}, ids(rows))
	})

	t.Run("edition-less row wins a createdAt tie", func(t *testing.T) {
		tied := map[string]vpsdb.TableContext{
			"edition1": {GameName: "Game", CreatedAt: 100, Edition: "A", Position: 0},
			"plain111": {GameName: "Game", CreatedAt: 100, Position: 1},
		}
		rows := [][]string{outRow("edition1"), outRow("plain111")}
		sortRows(rows, tied)
		assert.Equal(t, []string{"plain111", "edition1"}, ids(rows))
	})

	t.Run("position breaks remaining ties", func(t *testing.T) {
		tied := map[string]vpsdb.TableContext{
			"first111": {GameName: "Game", CreatedAt: 100, Position: 0},
			"second11": {GameName: "Game", CreatedAt: 100, Position: 1},
		}
		rows := [][]string{outRow("second11"), outRow("first111")}
		sortRows(rows, tied)
		assert.Equal(t, []string{"first111", "second11"}, ids(rows))
	})

	t.Run("rows without context sort last in template order", func(t *testing.T) {
		rows := [][]string{outRow("ghost111"), outRow("alpha111"), outRow("ghost222")}
		sortRows(rows, contexts)
		assert.Equal(t, []string{"alpha111", "ghost111", "ghost222"}, ids(rows))
	})

	t.Run("name prefix stops before the first parenthetical", func(t *testing.T) {
		k := keyFor("newer111", contexts)
		assert.Equal(t, "Game", k.prefix)
	})
}
