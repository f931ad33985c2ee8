package enrich

import (
	"slices"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/normalizers"
	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/vpsdb"
)

// GameFileName reproduces the website's GameFileName convention. An
// explicit tableFiles[].gameFileName wins; otherwise the name is derived
// from the display name, first author and version.
//
// When an author exists and the version is empty the result keeps a
// trailing space. That matches the site export byte for byte and must not
// be "fixed".
func GameFileName(ctx vpsdb.TableContext) string {
	if ctx.GameFileName != "" {
		return ctx.GameFileName
	}

	s := normalizers.SanitizeFileName(ctx.GameName)

	author := ""
	if len(ctx.Authors) > 0 {
		author = ctx.Authors[0]
	}

	if author != "" {
		s = s + " " + author + " " + ctx.Version
	} else if ctx.Version != "" {
		s = s + " " + ctx.Version
	}

	if slices.Contains(ctx.Tags, "MOD") {
		s += " MOD"
	}
	if slices.Contains(ctx.Tags, "VR") {
		s += " VR"
	}
	return s
}
