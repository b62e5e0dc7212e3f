package export

import (
	"strings"

	"github.com/riskibarqy/fcdata/internal/usecase"
)

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// FileName builds {source}_{country}_{tournament}[_{season}[_{week}]]_{kind}.{ext}.
// Spaces and path separators in country and tournament become underscores.
// Week is only used together with season.
func FileName(name usecase.ExportName, ext string) string {
	parts := []string{
		string(name.Source),
		nameReplacer.Replace(strings.ToLower(strings.TrimSpace(name.Country))),
		nameReplacer.Replace(strings.ToLower(strings.TrimSpace(name.Tournament))),
	}

	season := strings.ReplaceAll(strings.TrimSpace(name.Season), "/", "")
	if season != "" {
		parts = append(parts, season)
		if week := strings.TrimSpace(name.Week); week != "" {
			parts = append(parts, week)
		}
	}
	parts = append(parts, string(name.Kind))

	return strings.Join(parts, "_") + "." + strings.TrimPrefix(ext, ".")
}
