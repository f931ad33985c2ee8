package puplookup

import (
	"regexp"
	"strings"
	"unicode"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// RepairRow coerces a raw CSV row into the 17-column template shape.
// Two known upstream malformations are handled:
//
//   - 18 columns because Manufact was split at an embedded comma, shifting
//     GameYear one position to the right: rejoin Manufact and drop the
//     redundant column.
//   - more columns than expected with a valid VPS-ID as the last extra:
//     fold everything between Tags and the identifier into Tags.
//
// Rows that cannot be recovered, or whose identifier is invalid after
// repair, yield ok=false and are meant to be skipped silently.
func RepairRow(row []string) (repaired []string, ok bool) {
	fixed := make([]string, len(row))
	copy(fixed, row)

	if len(fixed) < len(BaseColumns) {
		return nil, false
	}

	// Case A: Manufact absorbed a comma-split continuation.
	if len(fixed) == len(BaseColumns)+1 {
		if !yearPattern.MatchString(strings.TrimSpace(fixed[ColGameYear])) &&
			yearPattern.MatchString(strings.TrimSpace(fixed[ColNumPlayers])) {
			fixed[ColManufact] = strings.TrimRightFunc(fixed[ColManufact], unicode.IsSpace) +
				", " + strings.TrimLeftFunc(fixed[ColGameYear], unicode.IsSpace)
			fixed = append(fixed[:ColGameYear], fixed[ColGameYear+1:]...)
		}
	}

	// Case B: fold extras into Tags, keep the last extra as VPS-ID.
	if len(fixed) > len(BaseColumns) {
		extras := fixed[len(BaseColumns):]
		fixed = fixed[:len(BaseColumns)]

		cand := strings.TrimSpace(extras[len(extras)-1])
		if !ValidID(cand) {
			return nil, false
		}

		shifted := strings.TrimSpace(fixed[ColTags])
		if leftover := strings.TrimSpace(fixed[ColVPSID]); leftover != "" && !ValidID(leftover) {
			shifted = spaceJoin(shifted, leftover)
		}
		for _, tok := range extras[:len(extras)-1] {
			shifted = spaceJoin(shifted, strings.TrimSpace(tok))
		}
		fixed[ColTags] = shifted
		fixed[ColVPSID] = cand
	}

	if len(fixed) != len(BaseColumns) {
		return nil, false
	}
	if !ValidID(strings.TrimSpace(fixed[ColVPSID])) {
		return nil, false
	}
	return fixed, true
}

func spaceJoin(base, tok string) string {
	if tok == "" {
		return base
	}
	if base == "" {
		return tok
	}
	return base + " " + tok
}
