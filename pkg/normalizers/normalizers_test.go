package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Run("passes strings through", func(t *testing.T) {
		assert.Equal(t, "1978", String("1978"))
	})

	t.Run("renders JSON numbers without fraction", func(t *testing.T) {
		assert.Equal(t, "1978", String(float64(1978)))
		assert.Equal(t, "4", String(4.0))
	})

	t.Run("nil and non-scalars become empty", func(t *testing.T) {
		assert.Equal(t, "", String(nil))
		assert.Equal(t, "", String([]any{"x"}))
	})
}

func TestStrings(t *testing.T) {
	t.Run("keeps only string elements", func(t *testing.T) {
		got := Strings([]any{"a", 1, "b", nil})
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("non-array yields nil", func(t *testing.T) {
		assert.Nil(t, Strings("solo"))
		assert.Nil(t, Strings(nil))
	})
}

func TestStringsOrOne(t *testing.T) {
	assert.Equal(t, []string{"solo"}, StringsOrOne("solo"))
	assert.Equal(t, []string{"a"}, StringsOrOne([]any{"a", 2}))
	assert.Nil(t, StringsOrOne(nil))
}

func TestEpochMillis(t *testing.T) {
	assert.Equal(t, int64(1700000000000), EpochMillis(float64(1700000000000)))
	assert.Equal(t, int64(0), EpochMillis("soon"))
	assert.Equal(t, int64(0), EpochMillis(nil))
}

func TestNormalizeIPDBLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"placeholder", "Not Available", ""},
		{"placeholder n/a", "n/a", ""},
		{"non ipdb source", "https://example.com/machine?id=5", ""},
		{"ipdb link kept", "https://www.ipdb.org/machine.cgi?id=1234", "https://www.ipdb.org/machine.cgi?id=1234"},
		{"ipdb link trimmed", "  https://ipdb.org/machine.cgi?id=7 ", "https://ipdb.org/machine.cgi?id=7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIPDBLink(tt.in))
		})
	}
}

func TestIPDBNum(t *testing.T) {
	assert.Equal(t, "1234", IPDBNum("https://www.ipdb.org/machine.cgi?id=1234"))
	assert.Equal(t, "5", IPDBNum("ipdb.org?id=5"))
	assert.Equal(t, "", IPDBNum("https://www.ipdb.org/search"))
	assert.Equal(t, "", IPDBNum(""))
}

func TestIsExcludedFeature(t *testing.T) {
	assert.True(t, IsExcludedFeature("incl. B2S"))
	assert.True(t, IsExcludedFeature("Incl. Video"))
	assert.True(t, IsExcludedFeature("no ROM"))
	assert.False(t, IsExcludedFeature("No Rom")) // literal match only
	assert.False(t, IsExcludedFeature("VR"))
	assert.False(t, IsExcludedFeature("MOD"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "50_50", SanitizeFileName("50/50"))
	assert.Equal(t, "plain", SanitizeFileName("plain"))
}
