// Package puplookup defines the PUP lookup table schema and the repair
// logic for malformed rows in the upstream puplookup.csv.
package puplookup

import "regexp"

// BaseColumns is the 17-column template schema of the upstream CSV.
var BaseColumns = []string{
	"GameFileName", "GameName", "Manufact", "GameYear", "NumPlayers", "GameType", "Category",
	"GameTheme", "WebLinkURL", "IPDBNum", "AltRunMode", "DesignedBy", "Author", "GAMEVER", "Rom", "Tags", "VPS-ID",
}

// OutColumns is the 20-column schema of the generated export. It is the
// template schema with WebLink2URL inserted after WebLinkURL plus the
// trailing WebGameID and MasterID columns.
var OutColumns = []string{
	"GameFileName", "GameName", "Manufact", "GameYear", "NumPlayers", "GameType", "Category",
	"GameTheme", "WebLinkURL", "WebLink2URL", "IPDBNum", "AltRunMode", "DesignedBy", "Author", "GAMEVER", "Rom", "Tags",
	"VPS-ID", "WebGameID", "MasterID",
}

// Template column indexes.
const (
	ColGameFileName = 0
	ColGameName     = 1
	ColManufact     = 2
	ColGameYear     = 3
	ColNumPlayers   = 4
	ColGameType     = 5
	ColCategory     = 6
	ColGameTheme    = 7
	ColWebLinkURL   = 8
	ColIPDBNum      = 9
	ColAltRunMode   = 10
	ColDesignedBy   = 11
	ColAuthor       = 12
	ColGameVer      = 13
	ColRom          = 14
	ColTags         = 15
	ColVPSID        = 16
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,}$`)

// ValidID reports whether s is a syntactically valid VPS identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
