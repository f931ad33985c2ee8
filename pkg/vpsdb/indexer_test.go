package vpsdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDB = `[
	{
		"id": "g1",
		"name": "Pinball Wizard",
		"manufacturer": "Bally",
		"year": 1978,
		"players": "4",
		"type": "SS",
		"theme": ["Music", "Fantasy"],
		"designers": ["Greg Kmiec"],
		"ipdbUrl": "https://www.ipdb.org/machine.cgi?id=1234",
		"tableFiles": [
			{
				"id": "abc12345",
				"edition": "Blue",
				"authors": "Solo Author",
				"version": "1.2",
				"features": ["VR", "incl. B2S", "no ROM", "  ", "MOD"],
				"createdAt": 200
			},
			{
				"id": "def67890",
				"game": {"id": "override"},
				"authors": ["First", "Second"],
				"version": "0.9",
				"createdAt": 100
			}
		]
	},
	"not a game",
	{
		"id": "g2",
		"name": "Solo",
		"theme": "Sports",
		"designers": "not a list",
		"tableFiles": [
			{"no-id": true},
			{"id": "ghi13579", "gameFileName": "Explicit Name"}
		]
	}
]`

func TestParseDatabase(t *testing.T) {
	t.Run("skips non object entries", func(t *testing.T) {
		games, err := ParseDatabase([]byte(sampleDB))
		require.NoError(t, err)
		assert.Len(t, games, 2)
	})

	t.Run("rejects non array documents", func(t *testing.T) {
		_, err := ParseDatabase([]byte(`{"id": "g1"}`))
		assert.Error(t, err)
	})
}

func TestBuildContexts(t *testing.T) {
	games, err := ParseDatabase([]byte(sampleDB))
	require.NoError(t, err)

	contexts := BuildContexts(games)
	require.Len(t, contexts, 3)

	t.Run("edition and manufacturer suffixes", func(t *testing.T) {
		ctx := contexts["abc12345"]
		assert.Equal(t, "Pinball Wizard - Blue (Bally 1978)", ctx.GameName)
		assert.Equal(t, "1978", ctx.Year)
		assert.Equal(t, "4", ctx.Players)
		assert.Equal(t, "Music, Fantasy", ctx.Theme)
		assert.Equal(t, "Greg Kmiec", ctx.Designers)
		assert.Equal(t, "https://www.ipdb.org/machine.cgi?id=1234", ctx.IPDBUrl)
		assert.Equal(t, "1234", ctx.IPDBNum)
	})

	t.Run("single author string becomes a list", func(t *testing.T) {
		assert.Equal(t, []string{"Solo Author"}, contexts["abc12345"].Authors)
	})

	t.Run("noisy features are filtered", func(t *testing.T) {
		assert.Equal(t, []string{"VR", "MOD"}, contexts["abc12345"].Tags)
	})

	t.Run("game id falls back to the entry id", func(t *testing.T) {
		assert.Equal(t, "g1", contexts["abc12345"].GameID)
		assert.Equal(t, "override", contexts["def67890"].GameID)
	})

	t.Run("created at defaults to zero", func(t *testing.T) {
		assert.Equal(t, int64(200), contexts["abc12345"].CreatedAt)
		assert.Equal(t, int64(0), contexts["ghi13579"].CreatedAt)
	})

	t.Run("positions count skipped sibling entries", func(t *testing.T) {
		assert.Equal(t, 0, contexts["abc12345"].Position)
		assert.Equal(t, 1, contexts["def67890"].Position)
		// ghi13579 sits after an id-less sibling and keeps slot 1
		assert.Equal(t, 1, contexts["ghi13579"].Position)
	})

	t.Run("scalar theme is kept, scalar designers are not", func(t *testing.T) {
		ctx := contexts["ghi13579"]
		assert.Equal(t, "Sports", ctx.Theme)
		assert.Equal(t, "", ctx.Designers)
	})

	t.Run("explicit gameFileName is carried", func(t *testing.T) {
		assert.Equal(t, "Explicit Name", contexts["ghi13579"].GameFileName)
	})
}

func TestBuildContexts_EditionAlreadyInName(t *testing.T) {
	games := []Game{{
		ID:   "g1",
		Name: "Game blue Label",
		TableFiles: TableFileList{
			{ID: "abcd1234", Edition: "Blue"},
		},
	}}
	contexts := BuildContexts(games)
	assert.Equal(t, "Game blue Label", contexts["abcd1234"].GameName)
}

func TestBuildContexts_LastWriteWinsOnCollision(t *testing.T) {
	games := []Game{
		{ID: "g1", Name: "First", TableFiles: TableFileList{{ID: "abcd1234"}}},
		{ID: "g2", Name: "Second", TableFiles: TableFileList{{ID: "abcd1234"}}},
	}
	contexts := BuildContexts(games)
	require.Len(t, contexts, 1)
	assert.Equal(t, "g2", contexts["abcd1234"].GameID)
	assert.Equal(t, "Second", contexts["abcd1234"].GameName)
}

func TestBuildMasterMap(t *testing.T) {
	games, err := ParseDatabase([]byte(sampleDB))
	require.NoError(t, err)

	master := BuildMasterMap(games)
	assert.Equal(t, "g1", master["abc12345"])
	assert.Equal(t, "override", master["def67890"])
	assert.Equal(t, "g2", master["ghi13579"])
	_, ok := master[""]
	assert.False(t, ok)
}
