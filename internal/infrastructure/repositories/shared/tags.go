package shared

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// SortTagsDescending orders tags newest version first. Tags that are not semantic
// versions sort after the valid ones, by name.
func SortTagsDescending(tags []entities.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		v1 := normalizeVersion(tags[i].Name)
		v2 := normalizeVersion(tags[j].Name)
		valid1, valid2 := semver.IsValid(v1), semver.IsValid(v2)
		switch {
		case valid1 && valid2:
			return semver.Compare(v1, v2) > 0
		case valid1 != valid2:
			return valid1
		default:
			return tags[i].Name > tags[j].Name
		}
	})
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
