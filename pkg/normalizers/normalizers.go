// Package normalizers provides the small, named coercion and cleanup
// functions applied at the vpsdb indexing boundary.
package normalizers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ipdbNumPattern = regexp.MustCompile(`(?:id=|machine\.cgi\?id=)(\d+)`)

// placeholders the upstream data uses instead of leaving WebLinkURL empty
var linkPlaceholders = map[string]struct{}{
	"not available": {},
	"n/a":           {},
	"na":            {},
	"none":          {},
}

// String coerces a decoded JSON value to a string. Numbers are rendered
// without a fractional part, nil and non-scalar values become "".
func String(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(math.Trunc(t)), 10)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// Strings keeps only the string elements of a decoded JSON array.
// Anything that is not an array yields nil.
func Strings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringsOrOne is like Strings but promotes a lone string to a
// one-element list.
func StringsOrOne(v any) []string {
	if s, ok := v.(string); ok {
		return []string{s}
	}
	return Strings(v)
}

// EpochMillis coerces a decoded JSON value to epoch milliseconds,
// defaulting to 0.
func EpochMillis(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	default:
		return 0
	}
}

// NormalizeIPDBLink keeps only real IPDB links; placeholders and
// non-IPDB sources become "".
func NormalizeIPDBLink(u string) string {
	if u == "" {
		return ""
	}
	u = strings.TrimSpace(u)
	if _, ok := linkPlaceholders[strings.ToLower(u)]; ok {
		return ""
	}
	if !strings.Contains(strings.ToLower(u), "ipdb.org") {
		return ""
	}
	return u
}

// IPDBNum extracts the numeric machine id from an IPDB URL, if present.
func IPDBNum(u string) string {
	if u == "" {
		return ""
	}
	m := ipdbNumPattern.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsExcludedFeature reports whether a tableFiles feature tag is noise
// that must not reach the Tags column.
func IsExcludedFeature(feature string) bool {
	f := strings.TrimSpace(feature)
	return strings.HasPrefix(strings.ToLower(f), "incl.") || f == "no ROM"
}

// SanitizeFileName mimics the website's file naming (e.g. 50/50 -> 50_50).
func SanitizeFileName(s string) string {
	return strings.ReplaceAll(s, "/", "_")
}
