package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/puplookup"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

func templateRow() []string {
	return []string{
		"file.vpx", "Game", "Mfg", "2020", "4", "EM", "Cat", "Theme",
		"ipdb.org?id=5", "", "", "Designer", "Author", "1.0", "rom", "tag1", "abc12345",
	}
}

func TestEnrichRow_NoContextPassesThrough(t *testing.T) {
	e := New(map[string]vpsdb.TableContext{}, map[string]string{})

	out := e.EnrichRow(templateRow())
	require.Len(t, out, len(puplookup.OutColumns))

	in := templateRow()
	// 0..8 unchanged, empty WebLink2URL at 9, 10..17 shifted, then ids
	assert.Equal(t, in[:9], out[:9])
	assert.Equal(t, "", out[9])
	assert.Equal(t, in[9:], out[10:18])
	assert.Equal(t, "abc12345", out[18]) // WebGameID
	assert.Equal(t, "", out[19])         // MasterID
}

func TestEnrichRow_ContextOverwritesTemplateValues(t *testing.T) {
	contexts := map[string]vpsdb.TableContext{
		"abc12345": {
			GameID:       "g1",
			GameName:     "Game (Bally 1978)",
			Manufacturer: "Bally",
			Year:         "1978",
			Players:      "4",
			GameType:     "SS",
			Theme:        "Music, Fantasy",
			Designers:    "Greg Kmiec",
			IPDBUrl:      "https://www.ipdb.org/machine.cgi?id=1234",
			IPDBNum:      "1234",
			Authors:      []string{"Smith", "Jones"},
			Version:      "2.0",
			Tags:         []string{"4K"},
		},
	}
	e := New(contexts, map[string]string{"abc12345": "g1"})

	out := e.EnrichRow(templateRow())
	require.Len(t, out, len(puplookup.OutColumns))

	assert.Equal(t, "Game (Bally 1978) Smith 2.0", out[0])
	assert.Equal(t, "Game (Bally 1978)", out[1])
	assert.Equal(t, "Bally", out[2])
	assert.Equal(t, "1978", out[3])
	assert.Equal(t, "4", out[4])
	assert.Equal(t, "SS", out[5])
	assert.Equal(t, "Cat", out[6]) // Category is never overwritten
	assert.Equal(t, "Music, Fantasy", out[7])
	assert.Equal(t, "https://www.ipdb.org/machine.cgi?id=1234", out[8])
	assert.Equal(t, "https://virtualpinballspreadsheet.github.io/tables?game=g1&fileType=tables&fileId=abc12345", out[9])
	assert.Equal(t, "1234", out[10])
	assert.Equal(t, "Greg Kmiec", out[12])
	assert.Equal(t, "Smith, Jones", out[13])
	assert.Equal(t, "2.0", out[14])
	assert.Equal(t, "rom", out[15]) // Rom is never overwritten
	assert.Equal(t, "4K", out[16])
	assert.Equal(t, "abc12345", out[17])
	assert.Equal(t, "abc12345", out[18])
	assert.Equal(t, "g1", out[19])
}

func TestEnrichRow_MasterFallsBackToContextGameID(t *testing.T) {
	contexts := map[string]vpsdb.TableContext{
		"abc12345": {GameID: "g1"},
	}
	e := New(contexts, map[string]string{})

	out := e.EnrichRow(templateRow())
	assert.Equal(t, "g1", out[19])
	assert.Equal(t, "https://virtualpinballspreadsheet.github.io/tables?game=g1&fileType=tables&fileId=abc12345", out[9])
}

func TestEnrichRow_EmptyMasterLeavesLinkEmpty(t *testing.T) {
	contexts := map[string]vpsdb.TableContext{
		"abc12345": {},
	}
	e := New(contexts, map[string]string{})

	out := e.EnrichRow(templateRow())
	assert.Equal(t, "", out[9])
	assert.Equal(t, "", out[19])
}

func TestWebLink2URL(t *testing.T) {
	assert.Equal(t, "", WebLink2URL("", "abc12345"))
	assert.Equal(t, "", WebLink2URL("g1", ""))
	assert.Equal(t,
		"https://virtualpinballspreadsheet.github.io/tables?game=g1&fileType=tables&fileId=abc12345",
		WebLink2URL("g1", "abc12345"))
}

func TestGameFileName(t *testing.T) {
	tests := []struct {
		name string
		ctx  vpsdb.TableContext
		want string
	}{
		{
			name: "explicit override wins",
			ctx:  vpsdb.TableContext{GameFileName: "Exact Name", GameName: "ignored"},
			want: "Exact Name",
		},
		{
			name: "author, version and VR tag",
			ctx: vpsdb.TableContext{
				GameName: "Game (X 2020)",
				Authors:  []string{"Smith"},
				Version:  "1.2",
				Tags:     []string{"VR"},
			},
			want: "Game (X 2020) Smith 1.2 VR",
		},
		{
			name: "author with empty version keeps trailing space",
			ctx: vpsdb.TableContext{
				GameName: "Game",
				Authors:  []string{"Smith"},
			},
			want: "Game Smith ",
		},
		{
			name: "version only",
			ctx:  vpsdb.TableContext{GameName: "Game", Version: "2.1"},
			want: "Game 2.1",
		},
		{
			name: "no author no version",
			ctx:  vpsdb.TableContext{GameName: "Game"},
			want: "Game",
		},
		{
			name: "slashes are replaced",
			ctx:  vpsdb.TableContext{GameName: "50/50 (Mfg 1970)"},
			want: "50_50 (Mfg 1970)",
		},
		{
			name: "MOD then VR suffix order",
			ctx: vpsdb.TableContext{
				GameName: "Game",
				Version:  "1.0",
				Tags:     []string{"VR", "MOD"},
			},
			want: "Game 1.0 MOD VR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GameFileName(tt.ctx))
		})
	}
}
