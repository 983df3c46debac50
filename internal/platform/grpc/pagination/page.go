// Package pagination normalizes list request sizes.
package pagination

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// Battles bounds battle history pages.
var Battles = PageSizeConfig{Default: 20, Max: 100}

// Leaderboard bounds leaderboard pages.
var Leaderboard = PageSizeConfig{Default: 10, Max: 50}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}
