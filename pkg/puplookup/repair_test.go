package puplookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedRow() []string {
	return []string{
		"file.vpx", "Game", "Mfg", "2020", "4", "EM", "Cat", "Theme",
		"ipdb.org?id=5", "", "", "Designer", "Author", "1.0", "rom", "tag1", "abc12345",
	}
}

func TestRepairRow_WellFormedRowIsUnchanged(t *testing.T) {
	in := wellFormedRow()
	got, ok := RepairRow(in)
	require.True(t, ok)
	assert.Equal(t, in, got)

	// idempotent on its own output
	again, ok := RepairRow(got)
	require.True(t, ok)
	assert.Equal(t, got, again)
}

func TestRepairRow_ManufacturerSplitAtComma(t *testing.T) {
	// "Williams, Inc." was split into two columns, shifting GameYear right.
	in := []string{
		"file.vpx", "Game", "Williams", " Inc.", "1978", "4", "SS", "Cat", "Theme",
		"", "", "", "Designer", "Author", "1.0", "rom", "tag1", "abc12345",
	}
	got, ok := RepairRow(in)
	require.True(t, ok)
	require.Len(t, got, len(BaseColumns))
	assert.Equal(t, "Williams, Inc.", got[ColManufact])
	assert.Equal(t, "1978", got[ColGameYear])
	assert.Equal(t, "abc12345", got[ColVPSID])
}

func TestRepairRow_FoldsExtrasIntoTags(t *testing.T) {
	in := append(wellFormedRow(), "extra tag", "zz99yy88")
	// VPS-ID slot holds spillover text, real id arrives as the last extra.
	in[ColVPSID] = "spill"
	got, ok := RepairRow(in)
	require.True(t, ok)
	require.Len(t, got, len(BaseColumns))
	assert.Equal(t, "tag1 spill extra tag", got[ColTags])
	assert.Equal(t, "zz99yy88", got[ColVPSID])
}

func TestRepairRow_KeepsValidIDOutOfTagsWhenFolding(t *testing.T) {
	in := append(wellFormedRow(), "zz99yy88")
	got, ok := RepairRow(in)
	require.True(t, ok)
	// existing VPS-ID is itself valid, so it is not folded into Tags
	assert.Equal(t, "tag1", got[ColTags])
	assert.Equal(t, "zz99yy88", got[ColVPSID])
}

func TestRepairRow_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   []string
	}{
		{"too short", wellFormedRow()[:10]},
		{"last extra is not an identifier", append(wellFormedRow(), "still not an id")},
		{"invalid id in well formed row", func() []string {
			r := wellFormedRow()
			r[ColVPSID] = "short"
			return r
		}()},
		{"eighteen columns with no applicable repair", func() []string {
			// year already where it belongs, so the manufacturer rejoin
			// does not fire, and the trailing extra is no identifier
			r := wellFormedRow()
			return append(r, "junk")
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RepairRow(tt.in)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}
